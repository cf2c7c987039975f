package handlers

import (
	"context"
	"time"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/syncclient"
)

// EventClient is the offline-first event client used by the handlers.
type EventClient interface {
	Create(ctx context.Context, input domain.NewEvent) (syncclient.Outcome, error)
	Delete(ctx context.Context, id string) (syncclient.Outcome, error)
	Snapshot() []domain.Event
}

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Events EventClient
	// Now stamps new events; defaults to time.Now.
	Now func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
