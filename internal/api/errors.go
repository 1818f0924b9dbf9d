package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]any
	requestID string
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]any),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// WithCause adds the underlying cause error
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	if err != nil {
		eb.context["cause"] = err.Error()
	}
	return eb
}

// Build creates the final APIError
func (eb *ErrorBuilder) Build() APIError {
	return APIError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler writes structured error responses and logs them
type ErrorHandler struct {
	log zerolog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(log zerolog.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError processes an error and writes the HTTP response
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error, status int) {
	if apiErr, ok := err.(APIError); ok {
		eh.logError(r, apiErr, status)
		eh.writeErrorResponse(w, status, apiErr)
		return
	}

	apiErr := NewError(ErrTypeInternal, err.Error()).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, apiErr, status)
	eh.writeErrorResponse(w, status, apiErr)
}

// HandleValidationError handles request validation failures
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	apiErr := NewError(ErrTypeValidation, fmt.Sprintf("Validation failed: %s", message)).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("field", field).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, apiErr, http.StatusBadRequest)
	eh.writeErrorResponse(w, http.StatusBadRequest, apiErr)
}

// HandleNotFound reports an unknown parameter id
func (eh *ErrorHandler) HandleNotFound(w http.ResponseWriter, r *http.Request, id string) {
	apiErr := NewError(ErrTypeParamNotFound, fmt.Sprintf("Unknown parameter: %s", id)).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("param_id", id).
		WithContext("path", r.URL.Path).
		Build()

	eh.logError(r, apiErr, http.StatusNotFound)
	eh.writeErrorResponse(w, http.StatusNotFound, apiErr)
}

// HandleHostError reports a failure returned by the parameter host
func (eh *ErrorHandler) HandleHostError(w http.ResponseWriter, r *http.Request, op string, err error) {
	apiErr := NewError(ErrTypeHost, "Host operation failed").
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("op", op).
		WithContext("path", r.URL.Path).
		WithCause(err).
		Build()

	eh.logError(r, apiErr, http.StatusInternalServerError)
	eh.writeErrorResponse(w, http.StatusInternalServerError, apiErr)
}

func (eh *ErrorHandler) logError(r *http.Request, apiErr APIError, status int) {
	category := GetErrorCategory(apiErr.Type)

	event := eh.log.Error()
	if category == CategoryValidation {
		event = eh.log.Warn()
	}
	event.
		Str("type", apiErr.Type).
		Str("category", string(category)).
		Int("status", status).
		Str("request_id", apiErr.RequestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("remote_ip", r.RemoteAddr).
		Fields(apiErr.Context).
		Msg(apiErr.Message)
}

func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, apiErr APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Fxparams-Version", Version)
	w.Header().Set("X-Error-Type", apiErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(apiErr.Type)))
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		eh.log.Error().Err(err).Msg("encode error response")
	}
}

// RecoveryHandler turns panics into structured 500 responses
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				requestID := middleware.GetReqID(r.Context())
				eh.log.Error().
					Str("request_id", requestID).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Interface("panic", rvr).
					Msg("panic recovered")

				apiErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					WithContext("method", r.Method).
					Build()

				eh.writeErrorResponse(w, http.StatusInternalServerError, apiErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
