// Package report is the persistence boundary for sanitized results.
// The pipeline emits each result as an opaque JSON blob keyed by report
// identifier and analysis kind; the storage schema is the collaborator's
// concern, not this pipeline's.
package report

import (
	"context"
	"errors"

	"autoinspect/internal/analysis"
)

var ErrNotFound = errors.New("report: result not found")

// Store persists sanitized result blobs.
type Store interface {
	Save(ctx context.Context, reportID string, kind analysis.Kind, blob []byte) error
	Load(ctx context.Context, reportID string, kind analysis.Kind) ([]byte, error)
}
