// Package derive turns raw events into display-ready aggregates. Every
// function is pure: the same input always yields the same output.
package derive

import (
	"fmt"
	"sort"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// RecentLimit is the length of the recent-events list.
const RecentLimit = 10

// Recent returns up to n events, most recent (fecha, hora) first. Events with
// the same date and time keep their collection order.
func Recent(events []domain.Event, n int) []domain.Event {
	sorted := append([]domain.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return after(sorted[i], sorted[j])
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// after orders by date then time; both are fixed-width so text order is time order.
func after(a, b domain.Event) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return a.Time > b.Time
}

// DayCounts counts the events of each type logged on date (YYYY-MM-DD).
func DayCounts(events []domain.Event, date string) map[domain.EventType]int {
	counts := make(map[domain.EventType]int)
	for _, e := range events {
		if e.Date == date {
			counts[e.Type]++
		}
	}
	return counts
}

// TypeCount is one line of a calendar cell.
type TypeCount struct {
	Type       domain.EventType
	Count      int
	Descriptor domain.TypeDescriptor
}

// Label renders the cell line, e.g. "Glucosa (2)".
func (tc TypeCount) Label() string {
	return fmt.Sprintf("%s (%d)", tc.Descriptor.Title, tc.Count)
}

// DaySummary returns the non-zero counts of date in display order. Types
// outside the closed set are listed last, by name.
func DaySummary(events []domain.Event, date string) []TypeCount {
	counts := DayCounts(events, date)

	var summary []TypeCount
	for _, t := range domain.Types() {
		if n := counts[t]; n > 0 {
			summary = append(summary, TypeCount{Type: t, Count: n, Descriptor: domain.Describe(t)})
			delete(counts, t)
		}
	}

	unknown := make([]domain.EventType, 0, len(counts))
	for t := range counts {
		unknown = append(unknown, t)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, t := range unknown {
		summary = append(summary, TypeCount{Type: t, Count: counts[t], Descriptor: domain.Describe(t)})
	}
	return summary
}
