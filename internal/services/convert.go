package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/timeline-chart/internal/chart"
	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/errs"
	"github.com/GregMSThompson/timeline-chart/internal/models"
	"github.com/GregMSThompson/timeline-chart/pkg/helpers"
)

// Upper bounds on what a single request may ask to draw. The axis emits one
// tick per month, so the span bounds the markup size.
const (
	MaxRanges     = 500
	MaxSpanMonths = 240
)

// timelineFromRequest parses and validates a request into a timeline model.
// The result has been through chart construction, so it is always renderable.
func timelineFromRequest(req dto.TimelineRequest) (*models.Timeline, error) {
	position, err := chart.ParsePosition(helpers.ValueOr(req.AxisPosition, string(chart.PositionBottom)))
	if err != nil {
		return nil, err
	}

	if len(req.Ranges) > MaxRanges {
		return nil, errs.NewValidationError(fmt.Sprintf("a timeline may have at most %d ranges, got %d", MaxRanges, len(req.Ranges)))
	}

	ranges := make([]models.Range, 0, len(req.Ranges))
	for i, rr := range req.Ranges {
		start, err := dto.ParseDate(fmt.Sprintf("ranges[%d].start", i), rr.Start)
		if err != nil {
			return nil, err
		}
		end, err := dto.ParseDate(fmt.Sprintf("ranges[%d].end", i), rr.End)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, models.Range{
			Start: start,
			End:   end,
			Color: strings.TrimSpace(rr.Color),
			Label: rr.Label,
		})
	}

	start, end, err := bounds(req, ranges)
	if err != nil {
		return nil, err
	}
	if n := spanMonths(start, end); n > MaxSpanMonths {
		return nil, errs.NewValidationError(fmt.Sprintf("a timeline may span at most %d months, got %d", MaxSpanMonths, n))
	}

	tl := &models.Timeline{
		Title:        strings.TrimSpace(req.Title),
		Start:        start,
		End:          end,
		AxisPosition: string(position),
		Ranges:       ranges,
	}
	if _, err := chartFor(tl); err != nil {
		return nil, err
	}
	return tl, nil
}

// bounds returns the explicit chart bounds or, when both are omitted, the
// month-aligned span covering every range.
func bounds(req dto.TimelineRequest, ranges []models.Range) (time.Time, time.Time, error) {
	hasStart := strings.TrimSpace(req.Start) != ""
	hasEnd := strings.TrimSpace(req.End) != ""

	if hasStart || hasEnd {
		start, err := dto.ParseDate("start", req.Start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := dto.ParseDate("end", req.End)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}

	if len(ranges) == 0 {
		return time.Time{}, time.Time{}, errs.NewValidationError("start and end are required when there are no ranges")
	}

	lo, hi := ranges[0].Start, ranges[0].End
	for _, r := range ranges[1:] {
		if r.Start.Before(lo) {
			lo = r.Start
		}
		if r.End.After(hi) {
			hi = r.End
		}
	}

	start := time.Date(lo.Year(), lo.Month(), 1, 0, 0, 0, 0, lo.Location())
	end := time.Date(hi.Year(), hi.Month(), 1, 0, 0, 0, 0, hi.Location())
	if end.Before(hi) {
		end = end.AddDate(0, 1, 0)
	}
	return start, end, nil
}

// spanMonths counts the calendar months touched by [start, end].
func spanMonths(start, end time.Time) int {
	end = end.In(start.Location())
	return (end.Year()-start.Year())*12 + int(end.Month()-start.Month()) + 1
}

func chartFor(tl *models.Timeline) (*chart.Timeline, error) {
	position, err := chart.ParsePosition(tl.AxisPosition)
	if err != nil {
		return nil, err
	}
	return chart.NewTimeline(tl.Start, tl.End, tl.Ranges, chart.WithAxisPosition(position))
}
