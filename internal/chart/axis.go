package chart

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/GregMSThompson/timeline-chart/internal/errs"
)

// Position is the screen edge an axis is drawn along.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// Axis geometry, matching the defaults of the usual browser charting axis.
const (
	tickSizeInner = 6
	tickSizeOuter = 6
	tickPadding   = 3
	crispOffset   = 0.5
)

func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errs.NewValidationError(fmt.Sprintf("axis position %q must be one of top, bottom, left, right", s))
	}
	return p, nil
}

func (p Position) Valid() bool {
	switch p {
	case PositionTop, PositionBottom, PositionLeft, PositionRight:
		return true
	}
	return false
}

// vertical reports whether the axis runs along a vertical line.
func (p Position) vertical() bool {
	return p == PositionLeft || p == PositionRight
}

// sign is -1 when ticks point up or left, away from the plot.
func (p Position) sign() float64 {
	if p == PositionTop || p == PositionLeft {
		return -1
	}
	return 1
}

// Style maps CSS property names to values.
type Style map[string]string

// String renders the style as an inline declaration list with properties
// sorted, so equal styles always produce equal markup.
func (s Style) String() string {
	keys := slices.Sorted(maps.Keys(s))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

// AxisConfig holds the inputs, other than the scale, that shape an axis.
type AxisConfig struct {
	Position    Position
	TickStyle   Style
	DomainStyle Style
}

func (c AxisConfig) Equal(other AxisConfig) bool {
	return c.Position == other.Position &&
		maps.Equal(c.TickStyle, other.TickStyle) &&
		maps.Equal(c.DomainStyle, other.DomainStyle)
}

func (c AxisConfig) clone() AxisConfig {
	return AxisConfig{
		Position:    c.Position,
		TickStyle:   maps.Clone(c.TickStyle),
		DomainStyle: maps.Clone(c.DomainStyle),
	}
}

// RenderAxis builds the baseline and one labelled tick per month boundary in
// the scale's domain.
func RenderAxis(scale *TimeScale, cfg AxisConfig) []*Node {
	p := cfg.Position
	k := p.sign()
	spacing := float64(tickSizeInner + tickPadding)

	extent := scale.Extent()
	r0 := extent[0] + crispOffset
	r1 := extent[1] + crispOffset
	outer := formatNumber(k * tickSizeOuter)

	var d string
	if p.vertical() {
		d = "M" + outer + "," + formatNumber(r0) + "H" + formatNumber(crispOffset) + "V" + formatNumber(r1) + "H" + outer
	} else {
		d = "M" + formatNumber(r0) + "," + outer + "V" + formatNumber(crispOffset) + "H" + formatNumber(r1) + "V" + outer
	}
	domain := El("path", A("class", "domain"), A("stroke", "currentColor"), A("d", d))
	if len(cfg.DomainStyle) > 0 {
		domain.SetAttr("style", cfg.DomainStyle.String())
	}

	nodes := []*Node{domain}
	for _, t := range MonthTicks(scale.Domain()) {
		pos := formatNumber(scale.Map(t) + crispOffset)

		tick := El("g", A("class", "tick"), A("opacity", 1))
		line := El("line", A("stroke", "currentColor"))
		text := El("text", A("fill", "currentColor"))
		if p.vertical() {
			tick.SetAttr("transform", "translate(0,"+pos+")")
			line.SetAttr("x2", formatNumber(k*tickSizeInner))
			text.SetAttr("x", formatNumber(k*spacing))
		} else {
			tick.SetAttr("transform", "translate("+pos+",0)")
			line.SetAttr("y2", formatNumber(k*tickSizeInner))
			text.SetAttr("y", formatNumber(k*spacing))
		}
		text.SetAttr("dy", labelShift(p))
		if len(cfg.TickStyle) > 0 {
			line.SetAttr("style", cfg.TickStyle.String())
		}

		nodes = append(nodes, tick.Append(line, text.WithText(FormatMonth(t))))
	}
	return nodes
}

func labelShift(p Position) string {
	switch p {
	case PositionTop:
		return "0em"
	case PositionBottom:
		return "0.71em"
	default:
		return "0.32em"
	}
}

func textAnchor(p Position) string {
	switch p {
	case PositionRight:
		return "start"
	case PositionLeft:
		return "end"
	default:
		return "middle"
	}
}

// AxisMount owns one mount node and writes axis markup into it. Attach only
// re-renders when the scale or config differ by value from the last
// attachment, so repeated renders with unchanged inputs leave the mount alone.
type AxisMount struct {
	target *Node
	scale  *TimeScale
	cfg    AxisConfig
	runs   int
}

func NewAxisMount(target *Node) (*AxisMount, error) {
	if target == nil {
		return nil, errs.NewConfigurationError("axis mount target is missing")
	}
	return &AxisMount{target: target}, nil
}

// Attach renders the axis into the mount and reports whether it ran.
func (m *AxisMount) Attach(scale *TimeScale, cfg AxisConfig) (bool, error) {
	if scale == nil {
		return false, errs.NewConfigurationError("axis requires a scale")
	}
	if !cfg.Position.Valid() {
		return false, errs.NewValidationError(fmt.Sprintf("axis position %q must be one of top, bottom, left, right", cfg.Position))
	}
	if m.runs > 0 && m.scale.Equal(scale) && m.cfg.Equal(cfg) {
		return false, nil
	}

	m.target.SetAttr("fill", "none")
	m.target.SetAttr("font-size", "10")
	m.target.SetAttr("font-family", "sans-serif")
	m.target.SetAttr("text-anchor", textAnchor(cfg.Position))
	m.target.ReplaceChildren(RenderAxis(scale, cfg)...)

	m.scale = scale
	m.cfg = cfg.clone()
	m.runs++
	return true, nil
}

func (m *AxisMount) Target() *Node { return m.target }

// Runs counts how many times the axis markup has been (re)written.
func (m *AxisMount) Runs() int { return m.runs }
