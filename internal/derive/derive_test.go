package derive

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

func event(id, date, clock string, t domain.EventType, value string) domain.Event {
	return domain.Event{ID: id, Date: date, Time: clock, Type: t, Value: value, Timestamp: domain.ComposeTimestamp(date, clock)}
}

func ids(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestRecentOrdersByDateAndTime(t *testing.T) {
	events := []domain.Event{
		event("a", "2024-05-01", "08:00", domain.TypeGlucose, "120"),
		event("b", "2024-05-02", "07:00", domain.TypeFood, ""),
		event("c", "2024-05-01", "21:30", domain.TypeInsulin, "4"),
		event("d", "2024-05-02", "07:00", domain.TypeMedication, ""),
	}

	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(Recent(events, RecentLimit)))
	assert.Equal(t, "a", events[0].ID, "input must not be reordered")
}

func TestRecentTruncates(t *testing.T) {
	var events []domain.Event
	for i := 0; i < 15; i++ {
		events = append(events, event(fmt.Sprintf("e%02d", i), "2024-05-01", fmt.Sprintf("%02d:00", i), domain.TypeGlucose, "100"))
	}

	recent := Recent(events, RecentLimit)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, "e14", recent[0].ID)
	assert.Equal(t, "e05", recent[RecentLimit-1].ID)

	assert.Empty(t, Recent(nil, RecentLimit))
}

func TestDayCounts(t *testing.T) {
	events := []domain.Event{
		event("1", "2024-05-01", "08:00", domain.TypeGlucose, "120"),
		event("2", "2024-05-01", "12:00", domain.TypeGlucose, "160"),
		event("3", "2024-05-01", "08:05", domain.TypeInsulin, "4"),
		event("4", "2024-05-02", "08:00", domain.TypeGlucose, "110"),
	}

	counts := DayCounts(events, "2024-05-01")
	assert.Equal(t, map[domain.EventType]int{domain.TypeGlucose: 2, domain.TypeInsulin: 1}, counts)

	total := 0
	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		for _, n := range DayCounts(events, d) {
			total += n
		}
	}
	assert.Equal(t, len(events), total)
}

func TestDaySummaryLabels(t *testing.T) {
	events := []domain.Event{
		event("1", "2024-05-01", "08:00", domain.TypeFood, ""),
		event("2", "2024-05-01", "09:00", domain.TypeGlucose, "120"),
		event("3", "2024-05-01", "10:00", domain.TypeGlucose, "130"),
		event("4", "2024-05-01", "11:00", domain.EventType("walk"), ""),
	}

	summary := DaySummary(events, "2024-05-01")
	require.Len(t, summary, 3)
	assert.Equal(t, "Glucosa (2)", summary[0].Label())
	assert.Equal(t, "blue", summary[0].Descriptor.Color)
	assert.Equal(t, "Comida (1)", summary[1].Label())
	assert.Equal(t, "Evento (1)", summary[2].Label())

	assert.Empty(t, DaySummary(events, "2024-05-02"))
}

func TestClassifyGlucose(t *testing.T) {
	cases := map[string]GlucoseLevel{
		"79.9":  LevelLow,
		"80":    LevelNormal,
		"140":   LevelNormal,
		"180":   LevelNormal,
		"180.1": LevelHigh,
		" 250 ": LevelHigh,
		"":      LevelIndeterminate,
		"alto":  LevelIndeterminate,
		"NaN":   LevelIndeterminate,
		"Inf":   LevelIndeterminate,
	}
	for in, want := range cases {
		assert.Equal(t, want, ClassifyGlucose(in), "value %q", in)
	}
}

func TestEvaluateGlucose(t *testing.T) {
	assert.Equal(t, Evaluation{Level: LevelHigh, Color: "red", Warning: true}, EvaluateGlucose("300"))
	assert.Equal(t, Evaluation{Level: LevelLow, Color: "red", Warning: true}, EvaluateGlucose("40"))
	assert.Equal(t, Evaluation{Level: LevelNormal, Color: "green"}, EvaluateGlucose("120"))
	assert.Equal(t, Evaluation{Level: LevelIndeterminate, Color: "default"}, EvaluateGlucose("x"))
}

func TestReferenceLinesMatchThresholds(t *testing.T) {
	lines := ReferenceLines()
	require.Len(t, lines, 2)
	assert.Equal(t, GlucoseLowThreshold, lines[0].Value)
	assert.Equal(t, GlucoseHighThreshold, lines[1].Value)
	assert.Equal(t, LevelNormal, ClassifyGlucoseValue(lines[1].Value))
}

func TestSeriesWindows(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	events := []domain.Event{
		event("today-late", "2024-05-10", "12:00", domain.TypeGlucose, "150"),
		event("today-early", "2024-05-10", "07:30", domain.TypeGlucose, "95"),
		event("yesterday", "2024-05-09", "20:00", domain.TypeGlucose, "200"),
		event("two-days", "2024-05-08", "08:00", domain.TypeGlucose, "110"),
		event("three-days", "2024-05-07", "08:00", domain.TypeGlucose, "105"),
		event("six-days", "2024-05-04", "08:00", domain.TypeGlucose, "130"),
		event("seven-days", "2024-05-03", "08:00", domain.TypeGlucose, "125"),
		event("future", "2024-05-11", "08:00", domain.TypeGlucose, "100"),
		event("insulin", "2024-05-10", "08:00", domain.TypeInsulin, "4"),
	}

	day := Series(events, WindowDay, now)
	require.Len(t, day, 2)
	assert.Equal(t, "07:30", day[0].Label)
	assert.Equal(t, 95.0, day[0].Value)
	assert.Equal(t, "12:00", day[1].Label)

	three := Series(events, Window3Days, now)
	require.Len(t, three, 4)
	assert.Equal(t, "08/05 08:00", three[0].Label)

	week := Series(events, WindowWeek, now)
	require.Len(t, week, 6)
	assert.Equal(t, "04/05", week[0].Label)

	all := Series(events, WindowAll, now)
	assert.Len(t, all, 8)
	assert.Len(t, Series(events, Window("bogus"), now), 8)

	for _, points := range [][]Point{day, three, week, all} {
		for i := 1; i < len(points); i++ {
			assert.LessOrEqual(t, points[i-1].SortKey, points[i].SortKey)
		}
	}
}

func TestSeriesNonNumericValues(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	events := []domain.Event{
		event("1", "2024-05-10", "08:00", domain.TypeGlucose, "alto"),
		event("2", "2024-05-10", "09:00", domain.TypeGlucose, "120"),
		event("3", "2024-05-10", "bad", domain.TypeGlucose, "120"),
	}
	events[0].Notes = "tira dudosa"

	points := Series(events, WindowDay, now)
	require.Len(t, points, 2)
	assert.False(t, points[0].Numeric)
	assert.Zero(t, points[0].Value)
	assert.Equal(t, "tira dudosa", points[0].Notes)

	numeric := NumericOnly(points)
	require.Len(t, numeric, 1)
	assert.Equal(t, 120.0, numeric[0].Value)
}

func TestSeriesIsDeterministic(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	events := []domain.Event{
		event("1", "2024-05-10", "08:00", domain.TypeGlucose, "100"),
		event("2", "2024-05-10", "08:00", domain.TypeGlucose, "110"),
	}
	assert.Equal(t, Series(events, WindowDay, now), Series(events, WindowDay, now))
	assert.Equal(t, 100.0, Series(events, WindowDay, now)[0].Value)
}
