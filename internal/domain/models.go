package domain

import (
	"time"
)

// Layouts of the textual date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event represents one logged health action for the pet.
// JSON names follow the store documents served by the API.
type Event struct {
	ID        string     `json:"_id"`
	Date      string     `json:"fecha"`
	Time      string     `json:"hora"`
	Type      EventType  `json:"tipo"`
	Value     string     `json:"valor"`
	Notes     string     `json:"notas"`
	Timestamp string     `json:"marca_tiempo"`
	CreatedAt *time.Time `json:"fecha_creacion,omitempty"`
}

// At parses Date and Time in loc.
func (e Event) At(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
}

// NewEvent is the create payload; ID and CreatedAt are assigned by the store.
type NewEvent struct {
	Date      string    `json:"fecha"`
	Time      string    `json:"hora"`
	Type      EventType `json:"tipo"`
	Value     string    `json:"valor,omitempty"`
	Notes     string    `json:"notas,omitempty"`
	Timestamp string    `json:"marca_tiempo,omitempty"`
}

// RequiredFields lists the wire names that must be non-empty on create.
var RequiredFields = []string{"fecha", "hora", "tipo"}

// Missing returns the wire names of required fields that are empty.
func (n NewEvent) Missing() []string {
	var missing []string
	if n.Date == "" {
		missing = append(missing, "fecha")
	}
	if n.Time == "" {
		missing = append(missing, "hora")
	}
	if n.Type == "" {
		missing = append(missing, "tipo")
	}
	return missing
}

// Build returns the stored shape of n under id, filling the timestamp
// from date and time when it was not supplied.
func (n NewEvent) Build(id string) Event {
	ts := n.Timestamp
	if ts == "" {
		ts = ComposeTimestamp(n.Date, n.Time)
	}
	return Event{
		ID:        id,
		Date:      n.Date,
		Time:      n.Time,
		Type:      n.Type,
		Value:     n.Value,
		Notes:     n.Notes,
		Timestamp: ts,
	}
}

// ComposeTimestamp joins date and time the way marca_tiempo is stored.
func ComposeTimestamp(date, clock string) string {
	return date + "T" + clock
}
