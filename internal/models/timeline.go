package models

import "time"

// Timeline is a named chart stored per user in Firestore.
type Timeline struct {
	TimelineID   string    `firestore:"timelineId" json:"timelineId"`
	Title        string    `firestore:"title" json:"title"`
	Start        time.Time `firestore:"start" json:"start"`
	End          time.Time `firestore:"end" json:"end"`
	AxisPosition string    `firestore:"axisPosition" json:"axisPosition"` // "top","bottom","left","right"
	Ranges       []Range   `firestore:"ranges" json:"ranges"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Range is one labelled, coloured span drawn over the timeline track.
// Start is always before End once it has passed validation.
type Range struct {
	Start time.Time `firestore:"start" json:"start"`
	End   time.Time `firestore:"end" json:"end"`
	Color string    `firestore:"color" json:"color"`
	Label string    `firestore:"label" json:"label"`
}
