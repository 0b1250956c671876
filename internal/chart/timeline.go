package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/timeline-chart/internal/errs"
	"github.com/GregMSThompson/timeline-chart/internal/models"
)

// Layout fixes the geometry and colours of a rendered timeline.
type Layout struct {
	Width       int
	Height      int
	PlotWidth   float64
	MarginLeft  float64
	MarginTop   float64
	TrackOffset float64
	BarHeight   float64
	TrackFill   string
	LabelOffset float64
	LabelFont   string
	AxisOffset  float64
	DomainStyle Style
	TickStyle   Style
}

// DefaultLayout is a 480px wide canvas with a 400px plot inset by (40, 40).
// Height 150 is what a browser gives an <svg> without one.
func DefaultLayout() Layout {
	return Layout{
		Width:       480,
		Height:      150,
		PlotWidth:   400,
		MarginLeft:  40,
		MarginTop:   40,
		TrackOffset: 10,
		BarHeight:   8,
		TrackFill:   "#eeeeee",
		LabelOffset: -10,
		LabelFont:   "bold 12px sans-serif",
		AxisOffset:  20,
		DomainStyle: Style{"stroke": "none"},
		TickStyle:   Style{"stroke": "#eee"},
	}
}

// Timeline is a validated chart definition. Rendering it is a pure function
// of its fields.
type Timeline struct {
	start    time.Time
	end      time.Time
	ranges   []models.Range
	position Position
	layout   Layout
}

type Option func(*Timeline)

func WithAxisPosition(p Position) Option {
	return func(t *Timeline) { t.position = p }
}

func WithLayout(l Layout) Option {
	return func(t *Timeline) { t.layout = l }
}

func NewTimeline(start, end time.Time, ranges []models.Range, opts ...Option) (*Timeline, error) {
	if !start.Before(end) {
		return nil, errs.NewValidationError("timeline start must be before its end")
	}
	for i, r := range ranges {
		if !r.Start.Before(r.End) {
			return nil, errs.NewValidationError(fmt.Sprintf("ranges[%d] start must be before its end", i))
		}
		if strings.TrimSpace(r.Color) == "" {
			return nil, errs.NewValidationError(fmt.Sprintf("ranges[%d] color is required", i))
		}
	}

	t := &Timeline{
		start:    start,
		end:      end,
		ranges:   append([]models.Range(nil), ranges...),
		position: PositionBottom,
		layout:   DefaultLayout(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if !t.position.Valid() {
		return nil, errs.NewValidationError(fmt.Sprintf("axis position %q must be one of top, bottom, left, right", t.position))
	}
	if t.layout.PlotWidth <= 0 {
		return nil, errs.NewValidationError("plot width must be positive")
	}
	return t, nil
}

// Chart is a rendered timeline: the declared shape tree plus the axis mount
// that was attached once the tree was complete.
type Chart struct {
	Root  *Node
	Axis  *AxisMount
	Scale *TimeScale
}

// Render declares the shape tree, then attaches the axis into its mount.
func (t *Timeline) Render() (*Chart, error) {
	l := t.layout
	scale, err := NewTimeScale([2]time.Time{t.start, t.end}, [2]float64{0, l.PlotWidth})
	if err != nil {
		return nil, err
	}

	track := El("g", A("id", "timeline"), A("transform", translate(0, l.TrackOffset)))
	track.Append(bar(scale, t.start, t.end, l.BarHeight, l.TrackFill))
	for _, r := range t.ranges {
		x0, x1 := scale.Map(r.Start), scale.Map(r.End)
		label := El("text",
			A("x", x0+(x1-x0)/2),
			A("transform", translate(0, l.LabelOffset)),
			A("style", "font: "+l.LabelFont),
			A("text-anchor", "middle"),
		).WithText(r.Label)
		track.Append(El("g").Append(label, bar(scale, r.Start, r.End, l.BarHeight, r.Color)))
	}

	mountID := "axis-" + string(t.position)
	frame := El("g", A("transform", translate(l.MarginLeft, l.MarginTop))).Append(
		track,
		El("g", A("id", mountID), A("transform", translate(0, l.AxisOffset))),
	)
	root := El("svg",
		A("xmlns", svgNamespace),
		A("width", l.Width),
		A("height", l.Height),
	).Append(frame)

	// The tree is committed; the axis finds its mount by id.
	mount, err := NewAxisMount(root.FindByID(mountID))
	if err != nil {
		return nil, err
	}
	if _, err := mount.Attach(scale, t.axisConfig()); err != nil {
		return nil, err
	}

	return &Chart{Root: root, Axis: mount, Scale: scale}, nil
}

func (t *Timeline) axisConfig() AxisConfig {
	return AxisConfig{
		Position:    t.position,
		DomainStyle: t.layout.DomainStyle,
		TickStyle:   t.layout.TickStyle,
	}
}

// SVG serialises the chart as a standalone document.
func (c *Chart) SVG() []byte {
	return c.Root.Bytes()
}

// Restyle re-attaches the axis with new styles or position. It is a no-op,
// reported as false, when nothing changed.
func (c *Chart) Restyle(cfg AxisConfig) (bool, error) {
	return c.Axis.Attach(c.Scale, cfg)
}

func bar(scale *TimeScale, from, to time.Time, height float64, fill string) *Node {
	x0, x1 := scale.Map(from), scale.Map(to)
	return El("rect",
		A("x", x0),
		A("width", x1-x0),
		A("height", height),
		A("fill", fill),
	)
}

func translate(x, y float64) string {
	return "translate(" + formatNumber(x) + ", " + formatNumber(y) + ")"
}
