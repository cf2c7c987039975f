package derive

import (
	"sort"
	"time"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// Window selects the chart time range.
type Window string

const (
	WindowDay   Window = "day"
	Window3Days Window = "3days"
	WindowWeek  Window = "week"
	// WindowAll is used for any unrecognised window value.
	WindowAll Window = "all"
)

// Windows lists the selectable ranges.
func Windows() []Window {
	return []Window{WindowDay, Window3Days, WindowWeek}
}

// Point is one chart sample.
type Point struct {
	Label   string  `json:"fecha"`
	Value   float64 `json:"valor"`
	Numeric bool    `json:"numerico"`
	SortKey int64   `json:"timestamp"`
	Notes   string  `json:"notas,omitempty"`
}

// days returns how many whole days back from today the window reaches, 0 for all.
func (w Window) days() int {
	switch w {
	case WindowDay:
		return 1
	case Window3Days:
		return 3
	case WindowWeek:
		return 7
	default:
		return 0
	}
}

func (w Window) labelLayout() string {
	switch w {
	case WindowDay:
		return "15:04"
	case WindowWeek:
		return "02/01"
	default:
		return "02/01 15:04"
	}
}

// Series returns the glucose readings inside window relative to now, oldest
// first. Dates are interpreted in now's location. Values that are not numbers
// are kept with Numeric=false and Value=0; use NumericOnly to drop them.
// Readings whose date or time cannot be parsed are skipped.
func Series(events []domain.Event, window Window, now time.Time) []Point {
	loc := now.Location()
	today := midnight(now)
	span := window.days()

	type sample struct {
		at    time.Time
		event domain.Event
	}
	var samples []sample
	for _, e := range events {
		if e.Type != domain.TypeGlucose {
			continue
		}
		at, err := e.At(loc)
		if err != nil {
			continue
		}
		if span > 0 {
			diff := wholeDays(today, midnight(at))
			if diff < 0 || diff >= span {
				continue
			}
		}
		samples = append(samples, sample{at: at, event: e})
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].at.Before(samples[j].at)
	})

	layout := window.labelLayout()
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		p := Point{
			Label:   s.at.Format(layout),
			SortKey: s.at.UnixMilli(),
			Notes:   s.event.Notes,
		}
		if v, err := ParseValue(s.event.Value); err == nil {
			p.Value = v
			p.Numeric = true
		}
		points = append(points, p)
	}
	return points
}

// NumericOnly drops points without a numeric value.
func NumericOnly(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Numeric {
			out = append(out, p)
		}
	}
	return out
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// wholeDays counts calendar days from b to a, both at midnight.
func wholeDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub).Hours() / 24)
}
