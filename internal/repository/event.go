package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/database"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// DBProvider hands out the shared gorm connection.
type DBProvider interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// EventRepository handles event data operations
type EventRepository struct {
	db  DBProvider
	now func() time.Time
}

// NewEventRepository creates a new event repository
func NewEventRepository(db DBProvider) *EventRepository {
	return &EventRepository{db: db, now: time.Now}
}

// FindAll returns every event, newest marca_tiempo first.
func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var records []database.EventRecord
	if err := db.Order("marca_tiempo DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, toDomain(rec))
	}
	return events, nil
}

// Create persists event and fills its ID and CreatedAt.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	rec := database.EventRecord{
		ID:            NewObjectID(now),
		Fecha:         event.Date,
		Hora:          event.Time,
		Tipo:          string(event.Type),
		Valor:         event.Value,
		Notas:         event.Notes,
		MarcaTiempo:   event.Timestamp,
		FechaCreacion: now.UTC(),
	}
	if err := db.Create(&rec).Error; err != nil {
		return err
	}

	*event = toDomain(rec)
	return nil
}

// DeleteByID removes the event and reports whether it existed.
func (r *EventRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("id = ?", id).Delete(&database.EventRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func toDomain(rec database.EventRecord) domain.Event {
	e := domain.Event{
		ID:        rec.ID,
		Date:      rec.Fecha,
		Time:      rec.Hora,
		Type:      domain.EventType(rec.Tipo),
		Value:     rec.Valor,
		Notes:     rec.Notas,
		Timestamp: rec.MarcaTiempo,
	}
	if !rec.FechaCreacion.IsZero() {
		created := rec.FechaCreacion
		e.CreatedAt = &created
	}
	return e
}
