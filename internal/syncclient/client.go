package syncclient

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/cache"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/services"
)

// LocalIDPrefix marks ids generated while the API was unreachable.
const LocalIDPrefix = "local-"

// IsLocalID reports whether id was generated by the client.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// Mode tells which path a mutation took.
type Mode int

const (
	ModeRemote Mode = iota
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "remote"
}

// Operation is the kind of mutation.
type Operation string

const (
	OpCreate Operation = "create"
	OpDelete Operation = "delete"
)

// Outcome describes an applied mutation.
type Outcome struct {
	Op    Operation
	Mode  Mode
	Event domain.Event
	// RemoteErr is why the remote path was not taken in ModeLocal.
	RemoteErr error
}

// Degraded reports whether the change only exists locally.
func (o Outcome) Degraded() bool {
	return o.Mode == ModeLocal
}

// Notice is the message shown to the user.
func (o Outcome) Notice() string {
	switch {
	case o.Op == OpCreate && o.Mode == ModeRemote:
		return "Evento guardado correctamente"
	case o.Op == OpCreate:
		return "Evento guardado localmente (se sincronizará más tarde)"
	case o.Mode == ModeRemote:
		return "Evento eliminado correctamente"
	default:
		return "Evento eliminado localmente (la API no está disponible)"
	}
}

// Source tells where Load got the collection from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceEmpty  Source = "empty"
)

// Client owns the event collection of one front end.
type Client struct {
	remote Remote
	store  cache.Cache
	events *domain.Collection
	now    func() time.Time
	probe  bool
	errs   *apperrors.Handler

	mu          sync.Mutex
	lastLocalID int64
}

// Option configures a Client.
type Option func(*Client)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithProbe enables or disables the reachability check before mutations.
func WithProbe(probe bool) Option {
	return func(c *Client) { c.probe = probe }
}

// WithErrorHandler sets where remote failures are reported.
func WithErrorHandler(h *apperrors.Handler) Option {
	return func(c *Client) { c.errs = h }
}

// WithCollection uses an existing collection.
func WithCollection(events *domain.Collection) Option {
	return func(c *Client) { c.events = events }
}

func NewClient(remote Remote, store cache.Cache, opts ...Option) *Client {
	c := &Client{
		remote: remote,
		store:  store,
		events: domain.NewCollection(nil),
		now:    time.Now,
		probe:  true,
		errs:   apperrors.NewHandler(logger.GetLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the collection the client mutates.
func (c *Client) Events() *domain.Collection {
	return c.events
}

// Snapshot returns a copy of the current events.
func (c *Client) Snapshot() []domain.Event {
	return c.events.Snapshot()
}

// Load replaces the collection with the remote list, or with the cached
// snapshot when the API cannot be reached.
func (c *Client) Load(ctx context.Context) (Source, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.remote.List(ctx)
	if res.OK() {
		c.events.Replace(res.Events)
		c.persist(ctx)
		logger.Info("Events loaded from API", "count", len(res.Events))
		return SourceRemote, nil
	}
	c.errs.Handle(ctx, res.Err)

	cached, ok, err := c.store.Load(ctx)
	if err != nil {
		c.events.Replace(nil)
		return SourceEmpty, err
	}
	if !ok {
		c.events.Replace(nil)
		return SourceEmpty, nil
	}
	c.events.Replace(cached)
	logger.Info("Events loaded from cache", "count", len(cached))
	return SourceCache, nil
}

// Create records a new event, remotely when possible and locally otherwise.
// Only invalid input returns an error.
func (c *Client) Create(ctx context.Context, input domain.NewEvent) (Outcome, error) {
	if err := services.ValidateNewEvent(input); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.attempt(ctx, func(ctx context.Context) Result {
		return c.remote.Create(ctx, input)
	})

	var out Outcome
	if res.OK() && res.Event != nil {
		out = Outcome{Op: OpCreate, Mode: ModeRemote, Event: *res.Event}
	} else {
		if res.OK() {
			res.Err = apperrors.NewExternalAPIError(errors.New("empty create response"), "eventos")
		}
		event := input.Build(c.nextLocalID())
		created := c.now().UTC().Truncate(time.Millisecond)
		event.CreatedAt = &created
		out = Outcome{Op: OpCreate, Mode: ModeLocal, Event: event, RemoteErr: c.errs.LogAndReturn(ctx, res.Err)}
		logger.Info("Event saved locally", "id", event.ID)
	}

	c.events.Add(out.Event)
	c.persist(ctx)
	return out, nil
}

// Delete removes id remotely when possible and always locally.
func (c *Client) Delete(ctx context.Context, id string) (Outcome, error) {
	if id == "" {
		return Outcome{}, apperrors.NewInvalidIDError(id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.attempt(ctx, func(ctx context.Context) Result {
		return c.remote.Delete(ctx, id)
	})

	event, _ := c.events.Get(id)
	if event.ID == "" {
		event.ID = id
	}
	out := Outcome{Op: OpDelete, Mode: ModeRemote, Event: event}
	if !res.OK() {
		out.Mode = ModeLocal
		out.RemoteErr = c.errs.LogAndReturn(ctx, res.Err)
		logger.Info("Removing event locally", "id", id)
	}

	c.events.Remove(id)
	c.persist(ctx)
	return out, nil
}

// attempt runs call after an optional probe.
func (c *Client) attempt(ctx context.Context, call func(context.Context) Result) Result {
	if c.probe {
		if res := c.remote.Ping(ctx); !res.OK() {
			return res
		}
	}
	return call(ctx)
}

// nextLocalID returns local-<unix millis>, strictly increasing per client.
func (c *Client) nextLocalID() string {
	id := c.now().UnixMilli()
	if id <= c.lastLocalID {
		id = c.lastLocalID + 1
	}
	c.lastLocalID = id
	return LocalIDPrefix + strconv.FormatInt(id, 10)
}

func (c *Client) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.events.Snapshot()); err != nil {
		logger.Warn("Failed to save event cache", "error", err)
	}
}
