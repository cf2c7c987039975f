package syncclient

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/api"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/cache"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/database"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/repository"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/services"
)

// fakeRemote answers from canned results and records calls.
type fakeRemote struct {
	ping    Result
	list    Result
	create  Result
	delete  Result
	calls   []string
	created []domain.NewEvent
}

func (f *fakeRemote) Ping(context.Context) Result {
	f.calls = append(f.calls, "ping")
	return f.ping
}

func (f *fakeRemote) List(context.Context) Result {
	f.calls = append(f.calls, "list")
	return f.list
}

func (f *fakeRemote) Create(_ context.Context, in domain.NewEvent) Result {
	f.calls = append(f.calls, "create")
	f.created = append(f.created, in)
	return f.create
}

func (f *fakeRemote) Delete(context.Context, string) Result {
	f.calls = append(f.calls, "delete")
	return f.delete
}

func offlineRemote() *fakeRemote {
	down := apperrors.NewNetworkError(errors.New("connection refused"), "ping")
	return &fakeRemote{ping: failed(down), list: failed(down), create: failed(down), delete: failed(down)}
}

// failingCache rejects every write.
type failingCache struct{}

func (failingCache) Save(context.Context, []domain.Event) error {
	return errors.New("disk full")
}

func (failingCache) Load(context.Context) ([]domain.Event, bool, error) {
	return nil, false, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newFileCache(t *testing.T) *cache.FileCache {
	return cache.NewFileCache(filepath.Join(t.TempDir(), "events.json"))
}

var glucoseInput = domain.NewEvent{Date: "2024-05-01", Time: "08:00", Type: domain.TypeGlucose, Value: "140"}

func TestCreateOfflineFallsBackLocally(t *testing.T) {
	store := newFileCache(t)
	now := time.Date(2024, 5, 1, 8, 1, 0, 0, time.UTC)
	remote := offlineRemote()
	c := NewClient(remote, store, WithClock(fixedClock(now)))
	ctx := context.Background()

	out, err := c.Create(ctx, glucoseInput)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, out.Mode)
	assert.True(t, out.Degraded())
	assert.Error(t, out.RemoteErr)
	assert.Equal(t, "Evento guardado localmente (se sincronizará más tarde)", out.Notice())
	assert.Equal(t, []string{"ping"}, remote.calls, "create must not be attempted after a failed probe")

	assert.True(t, IsLocalID(out.Event.ID))
	assert.Equal(t, "2024-05-01T08:00", out.Event.Timestamp)

	got, ok := c.Events().Get(out.Event.ID)
	require.True(t, ok)
	assert.Equal(t, out.Event, got)

	cached, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, out.Event.ID, cached[0].ID)
}

func TestLocalIDsAreMonotonic(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	c := NewClient(offlineRemote(), newFileCache(t), WithClock(fixedClock(now)))
	ctx := context.Background()

	first, err := c.Create(ctx, glucoseInput)
	require.NoError(t, err)
	second, err := c.Create(ctx, glucoseInput)
	require.NoError(t, err)

	assert.Equal(t, "local-1714550400000", first.Event.ID)
	assert.Equal(t, "local-1714550400001", second.Event.ID)
	assert.Equal(t, 2, c.Events().Len())
}

func TestCreateRemoteUsesServerRecord(t *testing.T) {
	stored := glucoseInput.Build("65f1a2b3c4d5e6f708091a2b")
	remote := &fakeRemote{create: Result{Event: &stored}}
	c := NewClient(remote, newFileCache(t))

	out, err := c.Create(context.Background(), glucoseInput)
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, out.Mode)
	assert.NoError(t, out.RemoteErr)
	assert.Equal(t, "Evento guardado correctamente", out.Notice())
	assert.Equal(t, []domain.Event{stored}, c.Snapshot())
	assert.Equal(t, []string{"ping", "create"}, remote.calls)
}

func TestCreateWithoutProbeAttemptsCall(t *testing.T) {
	remote := offlineRemote()
	c := NewClient(remote, newFileCache(t), WithProbe(false))

	out, err := c.Create(context.Background(), glucoseInput)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, out.Mode)
	assert.Equal(t, []string{"create"}, remote.calls)
}

func TestCreateRejectsInvalidInputWithoutMutation(t *testing.T) {
	remote := &fakeRemote{}
	c := NewClient(remote, newFileCache(t))

	_, err := c.Create(context.Background(), domain.NewEvent{Date: "2024-05-01", Type: domain.TypeFood})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = c.Create(context.Background(), domain.NewEvent{Date: "2024-05-01", Time: "08:00", Type: "walk"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	assert.Zero(t, c.Events().Len())
	assert.Empty(t, remote.calls)
}

func TestDeleteIsAppliedLocallyAndIdempotent(t *testing.T) {
	store := newFileCache(t)
	c := NewClient(offlineRemote(), store)
	ctx := context.Background()

	kept, err := c.Create(ctx, glucoseInput)
	require.NoError(t, err)
	gone, err := c.Create(ctx, domain.NewEvent{Date: "2024-05-01", Time: "09:00", Type: domain.TypeFood})
	require.NoError(t, err)

	out, err := c.Delete(ctx, gone.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, out.Mode)
	assert.Equal(t, gone.Event, out.Event)
	assert.Equal(t, "Evento eliminado localmente (la API no está disponible)", out.Notice())

	after := c.Snapshot()
	_, err = c.Delete(ctx, gone.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, after, c.Snapshot())
	assert.Equal(t, []domain.Event{kept.Event}, c.Snapshot())

	cached, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Snapshot(), cached)

	_, err = c.Delete(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestDeleteRemoteFailureStillRemovesLocally(t *testing.T) {
	stored := glucoseInput.Build("65f1a2b3c4d5e6f708091a2b")
	remote := &fakeRemote{
		list:   Result{Events: []domain.Event{stored}},
		delete: failed(apperrors.NewNotFoundError(stored.ID)),
	}
	c := NewClient(remote, newFileCache(t))
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	out, err := c.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, out.Mode)
	assert.ErrorIs(t, out.RemoteErr, apperrors.ErrNotFound)
	assert.Zero(t, c.Events().Len())
}

func TestLoadPrefersRemoteAndMirrorsIt(t *testing.T) {
	store := newFileCache(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []domain.Event{glucoseInput.Build("local-1")}))

	stored := glucoseInput.Build("65f1a2b3c4d5e6f708091a2b")
	c := NewClient(&fakeRemote{list: Result{Events: []domain.Event{stored}}}, store)

	source, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, source)
	assert.Equal(t, []domain.Event{stored}, c.Snapshot())

	cached, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Event{stored}, cached)
}

func TestLoadFallsBackToCacheWholesale(t *testing.T) {
	store := newFileCache(t)
	ctx := context.Background()

	writer := NewClient(offlineRemote(), store)
	for _, clock := range []string{"08:00", "12:00", "20:00"} {
		_, err := writer.Create(ctx, domain.NewEvent{Date: "2024-05-01", Time: clock, Type: domain.TypeGlucose, Value: "120", Notes: "ñ"})
		require.NoError(t, err)
	}

	reader := NewClient(offlineRemote(), store, WithCollection(domain.NewCollection([]domain.Event{glucoseInput.Build("stale")})))
	source, err := reader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, source)
	assert.Equal(t, writer.Snapshot(), reader.Snapshot())
}

func TestLoadWithoutRemoteOrCacheIsEmpty(t *testing.T) {
	c := NewClient(offlineRemote(), newFileCache(t), WithCollection(domain.NewCollection([]domain.Event{glucoseInput.Build("stale")})))

	source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, source)
	assert.Zero(t, c.Events().Len())
}

func TestCacheWriteFailureDoesNotFailMutation(t *testing.T) {
	c := NewClient(offlineRemote(), failingCache{})

	out, err := c.Create(context.Background(), glucoseInput)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Events().Len())

	_, err = c.Delete(context.Background(), out.Event.ID)
	require.NoError(t, err)
	assert.Zero(t, c.Events().Len())
}

func newAPIServer(t *testing.T) *httptest.Server {
	lazy := database.NewLazy(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "eventos.db")})
	t.Cleanup(func() { _ = lazy.Close() })

	svc := services.NewEventService(repository.NewEventRepository(lazy))
	srv := api.NewServer(api.Config{}, svc, prometheus.NewRegistry())

	ts := httptest.NewServer(adaptor.FiberApp(srv.App()))
	t.Cleanup(ts.Close)
	return ts
}

func TestEndToEndAgainstAPI(t *testing.T) {
	ts := newAPIServer(t)
	store := newFileCache(t)
	ctx := context.Background()

	c := NewClient(NewHTTPRemote(ts.URL, 5*time.Second), store)

	source, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, source)
	assert.Zero(t, c.Events().Len())

	out, err := c.Create(ctx, glucoseInput)
	require.NoError(t, err)
	require.Equal(t, ModeRemote, out.Mode, "remote error: %v", out.RemoteErr)
	assert.True(t, repository.IsObjectID(out.Event.ID))
	assert.Equal(t, "2024-05-01T08:00", out.Event.Timestamp)

	fresh := NewClient(NewHTTPRemote(ts.URL, 5*time.Second), newFileCache(t))
	_, err = fresh.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Events().Len())

	deleted, err := c.Delete(ctx, out.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, deleted.Mode)
	assert.Equal(t, "Evento eliminado correctamente", deleted.Notice())

	again, err := c.Delete(ctx, out.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, again.Mode)
	assert.True(t, apperrors.IsType(again.RemoteErr, apperrors.ErrorTypeNotFound))

	local, err := c.Delete(ctx, "local-1714550400000")
	require.NoError(t, err)
	assert.True(t, apperrors.IsType(local.RemoteErr, apperrors.ErrorTypeValidation))
}

func TestHTTPRemoteUnreachable(t *testing.T) {
	remote := NewHTTPRemote("http://127.0.0.1:1", time.Second)

	res := remote.Ping(context.Background())
	assert.False(t, res.OK())
	assert.True(t, apperrors.IsType(res.Err, apperrors.ErrorTypeNetwork))
}

func TestRemoteFailuresGoThroughErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	h := apperrors.NewHandler(slog.New(slog.NewTextHandler(&buf, nil)))
	c := NewClient(offlineRemote(), newFileCache(t), WithErrorHandler(h))

	out, err := c.Create(context.Background(), glucoseInput)
	require.NoError(t, err)
	assert.Error(t, out.RemoteErr)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "API unreachable")
}

func TestHTTPRemoteTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	res := NewHTTPRemote(ts.URL, 50*time.Millisecond).Ping(context.Background())
	require.False(t, res.OK())
	assert.True(t, apperrors.IsType(res.Err, apperrors.ErrorTypeTimeout), "got %v", res.Err)
}

func TestHTTPRemoteMapsValidationErrors(t *testing.T) {
	ts := newAPIServer(t)
	remote := NewHTTPRemote(ts.URL+"/", 5*time.Second)

	res := remote.Create(context.Background(), domain.NewEvent{Date: "2024-05-01", Type: domain.TypeFood})
	require.False(t, res.OK())
	appErr, ok := apperrors.As(res.Err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Se requieren fecha, hora y tipo", appErr.Message)
}
