package chart

import "time"

// MonthTicks returns every calendar-month boundary b with
// domain[0] <= b <= domain[1], in the location of domain[0].
func MonthTicks(domain [2]time.Time) []time.Time {
	start, end := domain[0], domain[1]
	loc := start.Location()
	end = end.In(loc)

	b := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
	if b.Before(start) {
		b = b.AddDate(0, 1, 0)
	}

	var ticks []time.Time
	for !b.After(end) {
		ticks = append(ticks, b)
		b = b.AddDate(0, 1, 0)
	}
	return ticks
}

// FormatMonth renders the three-letter month abbreviation used for tick labels.
func FormatMonth(t time.Time) string {
	return t.Format("Jan")
}
