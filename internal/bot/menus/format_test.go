package menus

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/derive"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

func TestEventLine(t *testing.T) {
	glucose := domain.Event{Date: "2024-05-01", Time: "08:00", Type: domain.TypeGlucose, Value: "250", Notes: "sin comer"}
	assert.Equal(t, "🩸 2024-05-01 08:00 Glucosa 250 mg/dL ⚠️ alta · sin comer", EventLine(glucose))

	food := domain.Event{Date: "2024-05-01", Time: "09:00", Type: domain.TypeFood}
	assert.Equal(t, "🍽️ 2024-05-01 09:00 Comida", EventLine(food))

	unknown := domain.Event{Date: "2024-05-01", Time: "10:00", Type: "walk"}
	assert.Equal(t, "2024-05-01 10:00 Evento", EventLine(unknown))
}

func TestRecentTextLimitsAndShowsIDs(t *testing.T) {
	assert.Equal(t, "No hay eventos registrados.", RecentText(nil))

	var events []domain.Event
	for i := 0; i < 12; i++ {
		events = append(events, domain.Event{
			ID:   fmt.Sprintf("local-%d", i),
			Date: "2024-05-01",
			Time: fmt.Sprintf("%02d:00", i),
			Type: domain.TypeFood,
		})
	}

	out := RecentText(events)
	assert.Equal(t, derive.RecentLimit, strings.Count(out, "id: "))
	assert.Contains(t, out, "id: local-11")
	assert.NotContains(t, out, "id: local-1\n")
	assert.Less(t, strings.Index(out, "local-11"), strings.Index(out, "local-10"))
}

func TestDayText(t *testing.T) {
	events := []domain.Event{
		{Date: "2024-05-01", Time: "12:00", Type: domain.TypeGlucose, Value: "120"},
		{Date: "2024-05-01", Time: "08:00", Type: domain.TypeGlucose, Value: "90"},
		{Date: "2024-05-02", Time: "08:00", Type: domain.TypeFood},
	}

	out := DayText(events, "2024-05-01")
	assert.Contains(t, out, "• Glucosa (2)")
	assert.NotContains(t, out, "Comida")
	assert.Less(t, strings.Index(out, "08:00"), strings.Index(out, "12:00"))

	assert.Equal(t, "📅 2024-05-03\nSin eventos.", DayText(events, "2024-05-03"))
}

func TestChartText(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	events := []domain.Event{
		{Date: "2024-05-01", Time: "08:00", Type: domain.TypeGlucose, Value: "60"},
		{Date: "2024-05-01", Time: "12:00", Type: domain.TypeGlucose, Value: "?"},
		{Date: "2024-05-01", Time: "18:00", Type: domain.TypeGlucose, Value: "200"},
	}

	out := ChartText(derive.Series(events, derive.WindowDay, now), derive.WindowDay)
	assert.Contains(t, out, "rango 80-180 mg/dL")
	assert.Contains(t, out, "08:00  ▇▇▇ 60 ⚠️ baja")
	assert.Contains(t, out, "12:00  ❔ valor no numérico")
	assert.Contains(t, out, "mín 60 · media 130 · máx 200")

	empty := ChartText(nil, derive.WindowWeek)
	assert.Contains(t, empty, "Sin lecturas")
}
