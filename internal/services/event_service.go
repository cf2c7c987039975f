package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/repository"
)

// EventService implements the list/create/delete contract over a repository.
type EventService struct {
	repo domain.EventRepository
}

func NewEventService(repo domain.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// List returns every event, newest first.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("failed to list events: %w", err))
	}
	logger.Debug("Events found", "count", len(events))
	return events, nil
}

// Create validates input, fills defaults and persists the event.
func (s *EventService) Create(ctx context.Context, input domain.NewEvent) (*domain.Event, error) {
	if err := ValidateNewEvent(input); err != nil {
		return nil, err
	}

	event := input.Build("")
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("failed to create event: %w", err))
	}

	logger.Info("Event created", "id", event.ID, "type", event.Type, "timestamp", event.Timestamp)
	return &event, nil
}

// Delete removes the event with the given store id.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if !repository.IsObjectID(id) {
		return apperrors.NewInvalidIDError(id)
	}
	id = strings.ToLower(id)

	found, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperrors.NewDatabaseError(fmt.Errorf("failed to delete event: %w", err))
	}
	if !found {
		return apperrors.NewNotFoundError(id)
	}

	logger.Info("Event deleted", "id", id)
	return nil
}

// ValidateNewEvent checks required fields first, then their shape.
func ValidateNewEvent(input domain.NewEvent) error {
	if missing := input.Missing(); len(missing) > 0 {
		return apperrors.NewMissingFieldsError(domain.RequiredFields, missing)
	}
	if !input.Type.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("Tipo %q no válido", input.Type)).
			WithContext("field", "tipo")
	}
	if !matchesLayout(domain.DateLayout, input.Date) {
		return apperrors.NewValidationError(fmt.Sprintf("Fecha %q no tiene el formato AAAA-MM-DD", input.Date)).
			WithContext("field", "fecha")
	}
	if !matchesLayout(domain.TimeLayout, input.Time) {
		return apperrors.NewValidationError(fmt.Sprintf("Hora %q no tiene el formato HH:mm", input.Time)).
			WithContext("field", "hora")
	}
	return nil
}

// matchesLayout requires value to parse and to be written exactly as layout
// would format it, so "8:00" is rejected in favour of "08:00".
func matchesLayout(layout, value string) bool {
	parsed, err := time.Parse(layout, value)
	return err == nil && parsed.Format(layout) == value
}
