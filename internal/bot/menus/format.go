package menus

import (
	"fmt"
	"strings"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/derive"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// EventLine renders one event, e.g. "🩸 2024-05-01 08:00 Glucosa 140 mg/dL ⚠️".
func EventLine(e domain.Event) string {
	d := domain.Describe(e.Type)

	var b strings.Builder
	if d.Emoji != "" {
		b.WriteString(d.Emoji + " ")
	}
	fmt.Fprintf(&b, "%s %s %s", e.Date, e.Time, d.Title)
	if e.Value != "" {
		b.WriteString(" " + e.Value)
		if d.Unit != "" {
			b.WriteString(" " + d.Unit)
		}
	}
	if e.Type == domain.TypeGlucose {
		b.WriteString(levelMark(derive.EvaluateGlucose(e.Value)))
	}
	if e.Notes != "" {
		b.WriteString(" · " + e.Notes)
	}
	return b.String()
}

func levelMark(ev derive.Evaluation) string {
	switch ev.Level {
	case derive.LevelHigh:
		return " ⚠️ alta"
	case derive.LevelLow:
		return " ⚠️ baja"
	case derive.LevelIndeterminate:
		return " ❔"
	default:
		return ""
	}
}

// RecentText lists the most recent events with their ids.
func RecentText(events []domain.Event) string {
	recent := derive.Recent(events, derive.RecentLimit)
	if len(recent) == 0 {
		return "No hay eventos registrados."
	}

	var b strings.Builder
	b.WriteString("🕒 Eventos recientes\n")
	for _, e := range recent {
		fmt.Fprintf(&b, "\n%s\n   id: %s", EventLine(e), e.ID)
	}
	return b.String()
}

// DayText summarises one day: counts per type, then every event of the day.
func DayText(events []domain.Event, date string) string {
	summary := derive.DaySummary(events, date)
	if len(summary) == 0 {
		return fmt.Sprintf("📅 %s\nSin eventos.", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s\n", date)
	for _, tc := range summary {
		b.WriteString("• " + tc.Label() + "\n")
	}

	var day []domain.Event
	for _, e := range derive.Recent(events, -1) {
		if e.Date == date {
			day = append(day, e)
		}
	}
	b.WriteString("\n")
	for i := len(day) - 1; i >= 0; i-- {
		b.WriteString(EventLine(day[i]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ChartText renders the glucose series as text with the reference range.
func ChartText(points []derive.Point, window derive.Window) string {
	lines := derive.ReferenceLines()
	header := fmt.Sprintf("📈 Glucosa (%s) · rango %.0f-%.0f mg/dL", window, lines[0].Value, lines[1].Value)
	if len(points) == 0 {
		return header + "\nSin lecturas en este periodo."
	}

	var b strings.Builder
	b.WriteString(header + "\n")

	numeric := derive.NumericOnly(points)
	for _, p := range points {
		if !p.Numeric {
			fmt.Fprintf(&b, "\n%s  ❔ valor no numérico", p.Label)
			continue
		}
		fmt.Fprintf(&b, "\n%s  %s %.0f%s", p.Label, bar(p.Value), p.Value, levelMark(derive.Evaluation{Level: derive.ClassifyGlucoseValue(p.Value)}))
	}

	if len(numeric) > 0 {
		lo, hi, sum := numeric[0].Value, numeric[0].Value, 0.0
		for _, p := range numeric {
			sum += p.Value
			if p.Value < lo {
				lo = p.Value
			}
			if p.Value > hi {
				hi = p.Value
			}
		}
		fmt.Fprintf(&b, "\n\nmín %.0f · media %.0f · máx %.0f", lo, sum/float64(len(numeric)), hi)
	}
	return b.String()
}

// bar draws one block per 20 mg/dL, capped at 20 blocks.
func bar(v float64) string {
	n := int(v / 20)
	if n < 1 {
		n = 1
	}
	if n > 20 {
		n = 20
	}
	return strings.Repeat("▇", n)
}
