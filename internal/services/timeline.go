package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/models"
	"github.com/GregMSThompson/timeline-chart/pkg/logger"
)

// timelineStore is the Firestore storage interface for timelines.
type timelineStore interface {
	Create(ctx context.Context, uid string, tl *models.Timeline) error
	Get(ctx context.Context, uid, timelineID string) (*models.Timeline, error)
	List(ctx context.Context, uid string) ([]*models.Timeline, error)
	Update(ctx context.Context, uid string, tl *models.Timeline) error
	Delete(ctx context.Context, uid, timelineID string) error
}

type timelineRenderer interface {
	RenderTimeline(ctx context.Context, tl *models.Timeline) ([]byte, error)
}

type timelineService struct {
	store    timelineStore
	renderer timelineRenderer
}

func NewTimelineService(store timelineStore, renderer timelineRenderer) *timelineService {
	return &timelineService{store: store, renderer: renderer}
}

func (s *timelineService) CreateTimeline(ctx context.Context, uid string, req dto.TimelineRequest) (*models.Timeline, error) {
	tl, err := timelineFromRequest(req)
	if err != nil {
		return nil, err
	}
	tl.TimelineID = uuid.New().String()

	log, ctx := logger.With(ctx, "timeline_id", tl.TimelineID)
	if err := s.store.Create(ctx, uid, tl); err != nil {
		log.Error("failed to create timeline in store", "error", err)
		return nil, err
	}

	log.Info("timeline created", "ranges", len(tl.Ranges))
	return tl, nil
}

func (s *timelineService) GetTimeline(ctx context.Context, uid, timelineID string) (*models.Timeline, error) {
	return s.store.Get(ctx, uid, timelineID)
}

func (s *timelineService) ListTimelines(ctx context.Context, uid string) ([]*models.Timeline, error) {
	return s.store.List(ctx, uid)
}

func (s *timelineService) UpdateTimeline(ctx context.Context, uid, timelineID string, req dto.TimelineRequest) (*models.Timeline, error) {
	existing, err := s.store.Get(ctx, uid, timelineID)
	if err != nil {
		return nil, err
	}
	tl, err := timelineFromRequest(req)
	if err != nil {
		return nil, err
	}
	tl.TimelineID = existing.TimelineID
	tl.CreatedAt = existing.CreatedAt

	if err := s.store.Update(ctx, uid, tl); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("timeline updated", "timeline_id", timelineID, "ranges", len(tl.Ranges))
	return tl, nil
}

func (s *timelineService) DeleteTimeline(ctx context.Context, uid, timelineID string) error {
	if err := s.store.Delete(ctx, uid, timelineID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("timeline deleted", "timeline_id", timelineID)
	return nil
}

// RenderTimeline loads a stored timeline and renders it as SVG.
func (s *timelineService) RenderTimeline(ctx context.Context, uid, timelineID string) ([]byte, error) {
	tl, err := s.store.Get(ctx, uid, timelineID)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderTimeline(ctx, tl)
}
