package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/timeline-chart/internal/errs"
)

// DateLayout is the wire format for every date in a timeline request.
const DateLayout = "2006-01-02"

// RangeRequest is one range as it arrives over HTTP or from an import file.
type RangeRequest struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Color string `json:"color" yaml:"color"`
	Label string `json:"label" yaml:"label"`
}

// TimelineRequest describes a chart to create, update or render.
// Start and End may both be left empty, in which case the bounds are
// derived from the ranges.
type TimelineRequest struct {
	Title        string         `json:"title" yaml:"title"`
	Start        string         `json:"start,omitempty" yaml:"start,omitempty"`
	End          string         `json:"end,omitempty" yaml:"end,omitempty"`
	AxisPosition *string        `json:"axisPosition,omitempty" yaml:"axisPosition,omitempty"`
	Ranges       []RangeRequest `json:"ranges" yaml:"ranges"`
}

// ParseDate parses a YYYY-MM-DD date in UTC. The field name is only used
// to build the validation message.
func ParseDate(field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, errs.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, errs.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return t, nil
}
