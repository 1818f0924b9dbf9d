package api

import (
	"github.com/MJE43/fxparams/internal/params"
	"github.com/MJE43/fxparams/internal/sandbox"
)

// APIError is a structured error response with context
type APIError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

// Error types
const (
	ErrTypeValidation    = "validation_error"
	ErrTypeParamNotFound = "param_not_found"

	ErrTypeHost = "host_error"

	ErrTypeInternal = "internal_error"
)

// ErrorCategory groups error types for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryHost       ErrorCategory = "host"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeValidation, ErrTypeParamNotFound:
		return CategoryValidation
	case ErrTypeHost:
		return CategoryHost
	default:
		return CategorySystem
	}
}

// VersionInfo contains build version information
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// DefinitionsResponse lists the stored parameter definitions.
type DefinitionsResponse struct {
	Hash       string          `json:"hash"`
	Parameters []params.Record `json:"parameters"`
}

// ValuesResponse carries parameter values keyed by id.
type ValuesResponse struct {
	Hash   string         `json:"hash"`
	Values map[string]any `json:"values"`
}

// ParamResponse carries one parameter and its current values.
type ParamResponse struct {
	Parameter params.Record `json:"parameter"`
	Raw       any           `json:"raw"`
	Value     any           `json:"value"`
}

// RandomResponse is the result of POST /api/v1/params/random. Update is set
// when the sample was emitted.
type RandomResponse struct {
	Values map[string]any  `json:"values"`
	Update *sandbox.Update `json:"update,omitempty"`
}

// FeaturesResponse carries the stored features.
type FeaturesResponse struct {
	Hash     string         `json:"hash"`
	Features map[string]any `json:"features"`
}
