package domain

import "fmt"

// EventType is the closed set of loggable actions.
type EventType string

const (
	TypeGlucose    EventType = "glucose"
	TypeInsulin    EventType = "insulin"
	TypeMedication EventType = "medication"
	TypeFood       EventType = "food"
)

var eventTypes = []EventType{TypeGlucose, TypeInsulin, TypeMedication, TypeFood}

// Types returns every event type in display order.
func Types() []EventType {
	return append([]EventType(nil), eventTypes...)
}

// Valid reports whether t belongs to the closed set.
func (t EventType) Valid() bool {
	_, ok := descriptors[t]
	return ok
}

// ParseEventType accepts only members of the closed set.
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown event type %q", s)
	}
	return t, nil
}

// TypeDescriptor is the display metadata of an event type.
type TypeDescriptor struct {
	Color string
	Title string
	Icon  string
	Emoji string
	Unit  string // empty when the value carries no number
}

var defaultDescriptor = TypeDescriptor{Color: "default", Title: "Evento"}

var descriptors = map[EventType]TypeDescriptor{
	TypeGlucose:    {Color: "blue", Title: "Glucosa", Icon: "experiment", Emoji: "🩸", Unit: "mg/dL"},
	TypeInsulin:    {Color: "green", Title: "Insulina", Icon: "medicine-box", Emoji: "💉", Unit: "unidades"},
	TypeMedication: {Color: "purple", Title: "Medicamento", Icon: "medicine-box", Emoji: "💊"},
	TypeFood:       {Color: "orange", Title: "Comida", Icon: "coffee", Emoji: "🍽️"},
}

// Describe returns the descriptor for t, or a neutral one for unknown types.
func Describe(t EventType) TypeDescriptor {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return defaultDescriptor
}

// HasValue reports whether events of this type carry a numeric value.
func (t EventType) HasValue() bool {
	return Describe(t).Unit != ""
}
