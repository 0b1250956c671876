package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/models"
	"github.com/GregMSThompson/timeline-chart/pkg/logger"
)

var tracer = otel.Tracer("github.com/GregMSThompson/timeline-chart/internal/services")

type renderService struct{}

func NewRenderService() *renderService {
	return &renderService{}
}

// Render validates an ad-hoc request and returns the chart as SVG.
func (s *renderService) Render(ctx context.Context, req dto.TimelineRequest) ([]byte, error) {
	tl, err := timelineFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.RenderTimeline(ctx, tl)
}

func (s *renderService) RenderTimeline(ctx context.Context, tl *models.Timeline) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "timeline.render")
	defer span.End()
	span.SetAttributes(
		attribute.String("timeline.id", tl.TimelineID),
		attribute.Int("timeline.ranges", len(tl.Ranges)),
		attribute.String("timeline.axis", tl.AxisPosition),
	)
	log := logger.FromContext(ctx)

	view, err := chartFor(tl)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c, err := view.Render()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Error("failed to render timeline", "timeline_id", tl.TimelineID, "error", err)
		return nil, err
	}

	svg := c.SVG()
	log.Debug("timeline rendered", "timeline_id", tl.TimelineID, "ranges", len(tl.Ranges), "bytes", len(svg))
	return svg, nil
}

func (s *renderService) Demo(ctx context.Context) ([]byte, error) {
	return s.RenderTimeline(ctx, DemoTimeline())
}
