// Package syncclient mediates between front ends and the event API. Every
// mutation is applied to an in-memory collection and mirrored to a local
// cache, so the client keeps working while the API is unreachable.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
)

const eventsPath = "/api/eventos"

// Result is the outcome of one remote call: either a value or Err.
type Result struct {
	Event  *domain.Event
	Events []domain.Event
	Err    error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

func failed(err error) Result {
	return Result{Err: err}
}

// Remote is the event API as seen by the client.
type Remote interface {
	Ping(ctx context.Context) Result
	List(ctx context.Context) Result
	Create(ctx context.Context, input domain.NewEvent) Result
	Delete(ctx context.Context, id string) Result
}

// HTTPRemote talks to the REST surface of the API service.
type HTTPRemote struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRemote creates a remote for baseURL; timeout bounds every request.
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return NewHTTPRemoteWithClient(baseURL, &http.Client{Timeout: timeout, Transport: tr})
}

// NewHTTPRemoteWithClient uses an existing HTTP client.
func NewHTTPRemoteWithClient(baseURL string, client *http.Client) *HTTPRemote {
	return &HTTPRemote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// Ping checks that the API answers its status endpoint.
func (r *HTTPRemote) Ping(ctx context.Context) Result {
	return failed(r.do(ctx, "ping", http.MethodGet, "/api", nil, nil))
}

// List fetches every stored event.
func (r *HTTPRemote) List(ctx context.Context) Result {
	var events []domain.Event
	if err := r.do(ctx, "list", http.MethodGet, eventsPath, nil, &events); err != nil {
		return failed(err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return Result{Events: events}
}

// Create posts a new event and returns the stored record.
func (r *HTTPRemote) Create(ctx context.Context, input domain.NewEvent) Result {
	var event domain.Event
	if err := r.do(ctx, "create", http.MethodPost, eventsPath, input, &event); err != nil {
		return failed(err)
	}
	return Result{Event: &event}
}

// Delete removes the event with the given id.
func (r *HTTPRemote) Delete(ctx context.Context, id string) Result {
	return failed(r.do(ctx, "delete", http.MethodDelete, eventsPath+"/"+url.PathEscape(id), nil, nil))
}

type errorBody struct {
	Error   string `json:"error"`
	Mensaje string `json:"mensaje"`
}

func (r *HTTPRemote) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encoding %s request: %w", op, err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return apperrors.NewNetworkError(fmt.Errorf("creating request: %w", err), op)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return apperrors.NewTimeoutError(err, op)
		}
		return apperrors.NewNetworkError(err, op)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewNetworkError(fmt.Errorf("reading response body: %w", err), op)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewExternalAPIError(fmt.Errorf("decoding %s response: %w", op, err), "eventos")
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}

// statusError maps a non-2xx response to the error taxonomy.
func statusError(op, path string, status int, data []byte) error {
	var body errorBody
	_ = json.Unmarshal(data, &body)

	switch status {
	case http.StatusBadRequest:
		msg := body.Mensaje
		if msg == "" {
			msg = body.Error
		}
		return apperrors.NewValidationError(msg).WithContext("status", status)
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(strings.TrimPrefix(path, eventsPath+"/")).
			WithContext("status", status)
	default:
		return apperrors.NewExternalAPIError(fmt.Errorf("%s returned %d: %s", op, status, body.Mensaje), "eventos").
			WithContext("status", status)
	}
}
