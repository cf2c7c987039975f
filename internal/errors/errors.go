package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeTimeout    ErrorType = "timeout"
)

// Error codes shared by the API service and its clients.
const (
	CodeMissingFields = "MISSING_FIELDS"
	CodeInvalidField  = "INVALID_FIELD"
	CodeInvalidID     = "INVALID_ID"
	CodeNotFound      = "NOT_FOUND"
	CodeDatabase      = "DB_ERROR"
	CodeNetwork       = "NETWORK"
	CodeExternalAPI   = "EXTERNAL_API"
	CodeParse         = "PARSE"
	CodeInternal      = "INTERNAL"
	CodeTimeout       = "TIMEOUT"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  caller(2),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   caller(2),
		Context:  make(map[string]interface{}),
	}
}

func caller(skip int) string {
	_, file, line, _ := runtime.Caller(skip)
	return fmt.Sprintf("%s:%d", file, line)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == errorType
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	if appErr, ok := As(err); ok {
		h.handleAppError(ctx, appErr)
	} else {
		h.handleGenericError(ctx, err)
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypeParse:
		h.logger.WarnContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypeNotFound:
		h.logger.InfoContext(ctx, "Record not found", err.LogFields()...)
	case ErrorTypeNetwork, ErrorTypeTimeout:
		h.logger.WarnContext(ctx, "API unreachable", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeExternal, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

func (h *Handler) handleGenericError(ctx context.Context, err error) {
	h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
}

// LogAndReturn logs an error and returns it
func (h *Handler) LogAndReturn(ctx context.Context, err error) error {
	h.Handle(ctx, err)
	return err
}

// Predefined errors, usable as errors.Is targets.
var (
	ErrNotFound  = New(ErrorTypeNotFound, CodeNotFound, "Evento no encontrado")
	ErrInvalidID = New(ErrorTypeValidation, CodeInvalidID, "El formato del ID no es válido")
)

// Convenience functions for common errors
func NewValidationError(message string) *AppError {
	e := New(ErrorTypeValidation, CodeInvalidField, message)
	e.Source = caller(2)
	return e
}

// NewMissingFieldsError reports the required fields and which of them are absent.
func NewMissingFieldsError(required, missing []string) *AppError {
	e := New(ErrorTypeValidation, CodeMissingFields, "Se requieren "+joinSpanish(required)).
		WithContext("missing", missing)
	e.Source = caller(2)
	return e
}

func NewInvalidIDError(id string) *AppError {
	e := New(ErrorTypeValidation, CodeInvalidID, "El formato del ID no es válido").
		WithContext("id", id)
	e.Source = caller(2)
	return e
}

func NewNotFoundError(id string) *AppError {
	e := New(ErrorTypeNotFound, CodeNotFound, "Evento no encontrado").
		WithContext("id", id)
	e.Source = caller(2)
	return e
}

func NewDatabaseError(err error) *AppError {
	e := Wrap(err, ErrorTypeDatabase, CodeDatabase, "Database operation failed")
	e.Source = caller(2)
	return e
}

func NewNetworkError(err error, operation string) *AppError {
	e := Wrap(err, ErrorTypeNetwork, CodeNetwork, fmt.Sprintf("%s: API unreachable", operation)).
		WithContext("operation", operation)
	e.Source = caller(2)
	return e
}

func NewExternalAPIError(err error, api string) *AppError {
	e := Wrap(err, ErrorTypeExternal, CodeExternalAPI, fmt.Sprintf("%s API error", api)).
		WithContext("api", api)
	e.Source = caller(2)
	return e
}

func NewParseError(value string) *AppError {
	e := New(ErrorTypeParse, CodeParse, fmt.Sprintf("%q is not a number", value)).
		WithContext("value", value)
	e.Source = caller(2)
	return e
}

func NewTimeoutError(err error, operation string) *AppError {
	e := Wrap(err, ErrorTypeTimeout, CodeTimeout, fmt.Sprintf("%s: API timed out", operation)).
		WithContext("operation", operation)
	e.Source = caller(2)
	return e
}

func NewInternalError(err error) *AppError {
	e := Wrap(err, ErrorTypeInternal, CodeInternal, "Internal server error")
	e.Source = caller(2)
	return e
}

// joinSpanish renders ["fecha","hora","tipo"] as "fecha, hora y tipo".
func joinSpanish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
}
