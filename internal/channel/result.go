package channel

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/volctl/internal/audio"
)

// Status is the outcome class of a Result.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusNotImplemented Status = "not_implemented"
	StatusError          Status = "error"
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	ErrorUnavailable  ErrorKind = "Unavailable"
	ErrorInvalidState ErrorKind = "InvalidState"
)

// Result is the single response to a Request.
type Result struct {
	RequestID string    `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	Method    string    `json:"method" yaml:"method"`
	Status    Status    `json:"status" yaml:"status"`
	Value     *float64  `json:"value,omitempty" yaml:"value,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// Success builds a successful result.
func Success(req Request, value float64) Result {
	return Result{
		RequestID: req.ID,
		Method:    req.Method,
		Status:    StatusSuccess,
		Value:     &value,
	}
}

// NotImplemented builds a not-implemented result. It carries no value.
func NotImplemented(req Request) Result {
	return Result{
		RequestID: req.ID,
		Method:    req.Method,
		Status:    StatusNotImplemented,
	}
}

// Failure builds an error result, classifying err by its type.
// Errors that are neither unavailable nor invalid-state are reported as
// unavailable.
func Failure(req Request, err error) Result {
	kind := ErrorUnavailable
	var ise *audio.InvalidStateError
	if errors.As(err, &ise) {
		kind = ErrorInvalidState
	}
	return Result{
		RequestID: req.ID,
		Method:    req.Method,
		Status:    StatusError,
		ErrorKind: kind,
		Message:   err.Error(),
	}
}

// IsSuccess reports whether the request produced a value.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Volume returns the value of a successful result.
func (r Result) Volume() (float64, bool) {
	if r.Status != StatusSuccess || r.Value == nil {
		return 0, false
	}
	return *r.Value, true
}

// IsNotImplemented reports whether the method was not recognized.
func (r Result) IsNotImplemented() bool {
	return r.Status == StatusNotImplemented
}

// Err returns the failure as an error, or nil for success and not-implemented.
func (r Result) Err() error {
	if r.Status != StatusError {
		return nil
	}
	return &ResultError{Kind: r.ErrorKind, Message: r.Message}
}

// ResultError is the error form of a failed Result.
type ResultError struct {
	Kind    ErrorKind
	Message string
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
