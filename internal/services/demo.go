package services

import (
	"time"

	"github.com/GregMSThompson/timeline-chart/internal/chart"
	"github.com/GregMSThompson/timeline-chart/internal/models"
)

// DemoTimeline is the sample chart served on the landing page.
func DemoTimeline() *models.Timeline {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return &models.Timeline{
		TimelineID:   "demo",
		Title:        "Career timeline",
		Start:        day(2020, time.May, 1),
		End:          day(2020, time.December, 1),
		AxisPosition: string(chart.PositionBottom),
		Ranges: []models.Range{
			{Start: day(2020, time.June, 1), End: day(2020, time.September, 1), Color: "#fcb0ab", Label: "Career Exploration"},
			{Start: day(2020, time.September, 1), End: day(2020, time.November, 1), Color: "#123bbd", Label: "Job Search"},
		},
	}
}
