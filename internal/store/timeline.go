package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/timeline-chart/internal/errs"
	"github.com/GregMSThompson/timeline-chart/internal/models"
)

type timelineStore struct {
	client *firestore.Client
}

func NewTimelineStore(client *firestore.Client) *timelineStore {
	return &timelineStore{client: client}
}

func (s *timelineStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("timelines")
}

func (s *timelineStore) Create(ctx context.Context, uid string, tl *models.Timeline) error {
	now := time.Now()
	if tl.CreatedAt.IsZero() {
		tl.CreatedAt = now
	}
	tl.UpdatedAt = now
	_, err := s.collection(uid).Doc(tl.TimelineID).Create(ctx, tl)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create timeline", err)
	}
	return nil
}

func (s *timelineStore) Get(ctx context.Context, uid, timelineID string) (*models.Timeline, error) {
	doc, err := s.collection(uid).Doc(timelineID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("timeline not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get timeline", err)
	}
	var tl models.Timeline
	if err := doc.DataTo(&tl); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse timeline data", err)
	}
	return &tl, nil
}

func (s *timelineStore) List(ctx context.Context, uid string) ([]*models.Timeline, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list timelines", err)
	}
	timelines := make([]*models.Timeline, 0, len(docs))
	for _, d := range docs {
		var tl models.Timeline
		if err := d.DataTo(&tl); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse timeline data", err)
		}
		timelines = append(timelines, &tl)
	}
	return timelines, nil
}

// Update overwrites the stored document; the caller keeps CreatedAt intact.
func (s *timelineStore) Update(ctx context.Context, uid string, tl *models.Timeline) error {
	tl.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(tl.TimelineID).Set(ctx, tl)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update timeline", err)
	}
	return nil
}

func (s *timelineStore) Delete(ctx context.Context, uid, timelineID string) error {
	_, err := s.collection(uid).Doc(timelineID).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("timeline not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete timeline", err)
	}
	return nil
}
