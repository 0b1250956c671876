package chart

import (
	"time"

	"github.com/GregMSThompson/timeline-chart/internal/errs"
)

// TimeScale maps instants in a date domain onto a pixel extent by linear
// interpolation at millisecond resolution. It is a value: changing inputs
// means building a new one.
type TimeScale struct {
	domain [2]time.Time
	extent [2]float64
}

func NewTimeScale(domain [2]time.Time, extent [2]float64) (*TimeScale, error) {
	if !domain[0].Before(domain[1]) {
		return nil, errs.NewValidationError("scale domain start must be before its end")
	}
	return &TimeScale{domain: domain, extent: extent}, nil
}

// Map returns the pixel offset of t. Instants outside the domain
// extrapolate linearly.
func (s *TimeScale) Map(t time.Time) float64 {
	u := s.fraction(t)
	return s.extent[0]*(1-u) + s.extent[1]*u
}

func (s *TimeScale) Domain() [2]time.Time { return s.domain }

func (s *TimeScale) Extent() [2]float64 { return s.extent }

// Equal reports whether both scales map every instant identically.
func (s *TimeScale) Equal(other *TimeScale) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.domain[0].Equal(other.domain[0]) &&
		s.domain[1].Equal(other.domain[1]) &&
		s.extent == other.extent
}

func (s *TimeScale) fraction(t time.Time) float64 {
	d0 := s.domain[0].UnixMilli()
	return float64(t.UnixMilli()-d0) / float64(s.domain[1].UnixMilli()-d0)
}
