package llmclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy for model invocation. The orchestrator decides retry
// behavior from these types; the client itself never retries.

// TransportError covers network failures and timeouts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "llm transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// QuotaError covers provider rate limits and quota exhaustion.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string { return "llm quota exhausted: " + e.Err.Error() }
func (e *QuotaError) Unwrap() error { return e.Err }

// UnsupportedModelError means the requested model or route does not
// exist. Configuration error; retrying cannot help.
type UnsupportedModelError struct {
	Model string
	Err   error
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("llm model %q unsupported: %v", e.Model, e.Err)
}
func (e *UnsupportedModelError) Unwrap() error { return e.Err }

// ErrEmptyReply means the provider answered but the reply carried no text.
var ErrEmptyReply = errors.New("llm reply contained no text")

// PermanentError marks an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err should never be retried.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}

// classify maps a raw provider error into the taxonomy. The genai SDK
// does not expose stable error types for every failure mode, so quota
// and missing-model detection fall back to message substrings.
func classify(model string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "429"):
		return &QuotaError{Err: err}
	case strings.Contains(msg, "not_found"),
		strings.Contains(msg, "is not supported"),
		strings.Contains(msg, "unsupported model"),
		// A bare "not found" also appears in intermediary error bodies
		// on network faults; treat it as a missing model only when the
		// message names the model.
		model != "" && strings.Contains(msg, strings.ToLower(model)) && strings.Contains(msg, "not found"):
		return NewPermanentError(&UnsupportedModelError{Model: model, Err: err})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &TransportError{Err: err}
	default:
		return &TransportError{Err: err}
	}
}
