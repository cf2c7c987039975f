package domain

import (
	"context"
)

// EventRepository is the persistent event store.
type EventRepository interface {
	FindAll(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, event *Event) error
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// EventService handles the list/create/delete contract exposed over HTTP.
type EventService interface {
	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, input NewEvent) (*Event, error)
	Delete(ctx context.Context, id string) error
}
