package chart

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/timeline-chart/internal/errs"
	"github.com/GregMSThompson/timeline-chart/internal/models"
)

func sampleRanges() []models.Range {
	return []models.Range{
		{Start: date(2020, time.June, 1), End: date(2020, time.September, 1), Color: "#fcb0ab", Label: "Career Exploration"},
		{Start: date(2020, time.September, 1), End: date(2020, time.November, 1), Color: "#123bbd", Label: "Job Search"},
	}
}

func renderSample(t *testing.T, ranges []models.Range, opts ...Option) *Chart {
	t.Helper()
	tl, err := NewTimeline(date(2020, time.May, 1), date(2020, time.December, 1), ranges, opts...)
	if err != nil {
		t.Fatalf("NewTimeline returned error: %v", err)
	}
	c, err := tl.Render()
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	return c
}

func num(t *testing.T, n *Node, name string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(attr(t, n, name), 64)
	if err != nil {
		t.Fatalf("attribute %s is not a number: %v", name, err)
	}
	return f
}

func TestTimelineRangeRectsFollowScale(t *testing.T) {
	c := renderSample(t, sampleRanges())
	track := c.Root.FindByID("timeline")
	rects := track.findAll("rect")
	if len(rects) != 3 {
		t.Fatalf("expected track + 2 range rects, got %d", len(rects))
	}

	bg := rects[0]
	if num(t, bg, "x") != 0 || num(t, bg, "width") != 400 || attr(t, bg, "fill") != "#eeeeee" || num(t, bg, "height") != 8 {
		t.Fatalf("unexpected track rect: %+v", bg.Attrs)
	}

	for i, r := range sampleRanges() {
		rect := rects[i+1]
		x0, x1 := c.Scale.Map(r.Start), c.Scale.Map(r.End)
		if num(t, rect, "x") != x0 {
			t.Fatalf("range %d x = %v, want %v", i, num(t, rect, "x"), x0)
		}
		if num(t, rect, "width") != x1-x0 {
			t.Fatalf("range %d width = %v, want %v", i, num(t, rect, "width"), x1-x0)
		}
		if attr(t, rect, "fill") != r.Color {
			t.Fatalf("range %d fill = %q", i, attr(t, rect, "fill"))
		}
	}

	firstRight := num(t, rects[1], "x") + num(t, rects[1], "width")
	if math.Abs(firstRight-num(t, rects[2], "x")) > 1e-9 {
		t.Fatalf("ranges sharing a boundary should be adjacent: %v vs %v", firstRight, num(t, rects[2], "x"))
	}
}

func TestTimelineLabelsAreCentred(t *testing.T) {
	c := renderSample(t, sampleRanges())
	labels := c.Root.FindByID("timeline").findAll("text")
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}

	for i, r := range sampleRanges() {
		l := labels[i]
		x0, x1 := c.Scale.Map(r.Start), c.Scale.Map(r.End)
		if want := x0 + (x1-x0)/2; num(t, l, "x") != want {
			t.Fatalf("label %d x = %v, want %v", i, num(t, l, "x"), want)
		}
		if l.Text != r.Label {
			t.Fatalf("label %d text = %q", i, l.Text)
		}
		if attr(t, l, "transform") != "translate(0, -10)" || attr(t, l, "text-anchor") != "middle" {
			t.Fatalf("unexpected label attrs: %+v", l.Attrs)
		}
	}
}

func TestTimelineAxisMountedBelowTrack(t *testing.T) {
	c := renderSample(t, sampleRanges())
	mount := c.Root.FindByID("axis-bottom")
	if mount == nil {
		t.Fatalf("axis mount not found")
	}
	if mount != c.Axis.Target() {
		t.Fatalf("chart axis is not attached to the declared mount")
	}
	if attr(t, mount, "transform") != "translate(0, 20)" {
		t.Fatalf("axis mount transform = %q", attr(t, mount, "transform"))
	}
	if n := len(mount.findAll("line")); n != 8 {
		t.Fatalf("expected 8 ticks, got %d", n)
	}
	if c.Axis.Runs() != 1 {
		t.Fatalf("axis should attach exactly once per render, Runs = %d", c.Axis.Runs())
	}

	paths := mount.findAll("path")
	if len(paths) != 1 || attr(t, paths[0], "style") != "stroke: none" {
		t.Fatalf("expected a transparent baseline, got %+v", paths)
	}
}

func TestTimelineRenderIsIdempotent(t *testing.T) {
	a := renderSample(t, sampleRanges())
	b := renderSample(t, sampleRanges())
	if !bytes.Equal(a.SVG(), b.SVG()) {
		t.Fatalf("identical inputs rendered different output:\n%s\n%s", a.SVG(), b.SVG())
	}

	before := a.SVG()
	ran, err := a.Restyle(AxisConfig{
		Position:    PositionBottom,
		DomainStyle: Style{"stroke": "none"},
		TickStyle:   Style{"stroke": "#eee"},
	})
	if err != nil || ran {
		t.Fatalf("Restyle with unchanged inputs: ran=%v err=%v", ran, err)
	}
	if !bytes.Equal(before, a.SVG()) {
		t.Fatalf("no-op restyle changed the output")
	}
}

func TestTimelineEmptyRanges(t *testing.T) {
	c := renderSample(t, nil)
	track := c.Root.FindByID("timeline")
	if n := len(track.findAll("rect")); n != 1 {
		t.Fatalf("expected only the track rect, got %d", n)
	}
	if n := len(track.findAll("text")); n != 0 {
		t.Fatalf("expected no labels, got %d", n)
	}
	if n := len(c.Root.FindByID("axis-bottom").findAll("g")); n != 9 {
		t.Fatalf("expected mount + 8 tick groups, got %d", n)
	}
}

func TestTimelineOverlapKeepsInputOrder(t *testing.T) {
	ranges := []models.Range{
		{Start: date(2020, time.June, 1), End: date(2020, time.October, 1), Color: "red", Label: "A"},
		{Start: date(2020, time.July, 1), End: date(2020, time.August, 1), Color: "blue", Label: "B"},
	}
	c := renderSample(t, ranges)
	rects := c.Root.FindByID("timeline").findAll("rect")
	if attr(t, rects[1], "fill") != "red" || attr(t, rects[2], "fill") != "blue" {
		t.Fatalf("overlapping ranges must be drawn in input order")
	}
}

func TestTimelineDocument(t *testing.T) {
	out := string(renderSample(t, sampleRanges()).SVG())
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="480" height="150">`) {
		t.Fatalf("unexpected document head: %.120s", out)
	}
	if !strings.Contains(out, `<g transform="translate(40, 40)"><g id="timeline" transform="translate(0, 10)">`) {
		t.Fatalf("frame offsets missing from output")
	}
	if !strings.Contains(out, `>Career Exploration</text>`) || !strings.Contains(out, `>Job Search</text>`) {
		t.Fatalf("labels missing from output")
	}
}

func TestTimelineAxisPositionOption(t *testing.T) {
	c := renderSample(t, nil, WithAxisPosition(PositionTop))
	if c.Root.FindByID("axis-top") == nil {
		t.Fatalf("expected axis-top mount")
	}
	if c.Root.FindByID("axis-bottom") != nil {
		t.Fatalf("unexpected axis-bottom mount")
	}
}

func TestNewTimelineValidation(t *testing.T) {
	start, end := date(2020, time.May, 1), date(2020, time.December, 1)
	cases := map[string]func() error{
		"degenerateDomain": func() error {
			_, err := NewTimeline(start, start, nil)
			return err
		},
		"reversedDomain": func() error {
			_, err := NewTimeline(end, start, nil)
			return err
		},
		"reversedRange": func() error {
			_, err := NewTimeline(start, end, []models.Range{{Start: end, End: start, Color: "red"}})
			return err
		},
		"missingColor": func() error {
			_, err := NewTimeline(start, end, []models.Range{{Start: start, End: end}})
			return err
		},
		"badPosition": func() error {
			_, err := NewTimeline(start, end, nil, WithAxisPosition("middle"))
			return err
		},
		"zeroPlotWidth": func() error {
			l := DefaultLayout()
			l.PlotWidth = 0
			_, err := NewTimeline(start, end, nil, WithLayout(l))
			return err
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			var ve *errs.ValidationError
			if err := fn(); !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestNewTimelineCopiesRanges(t *testing.T) {
	ranges := sampleRanges()
	tl, err := NewTimeline(date(2020, time.May, 1), date(2020, time.December, 1), ranges)
	if err != nil {
		t.Fatalf("NewTimeline returned error: %v", err)
	}
	before, _ := tl.Render()

	ranges[0].Label = "changed"
	after, _ := tl.Render()
	if !bytes.Equal(before.SVG(), after.SVG()) {
		t.Fatalf("timeline output depends on the caller's slice after construction")
	}
}
