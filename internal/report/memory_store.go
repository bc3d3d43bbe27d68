package report

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"autoinspect/internal/analysis"
)

// MemoryStore keeps blobs in process memory. Used in tests and when no
// persistence backend is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, reportID string, kind analysis.Kind, blob []byte) error {
	key, err := blobKey(reportID, kind)
	if err != nil {
		return err
	}
	cp := append([]byte(nil), blob...)
	s.mu.Lock()
	s.blobs[key] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, reportID string, kind analysis.Kind) ([]byte, error) {
	key, err := blobKey(reportID, kind)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	blob, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func blobKey(reportID string, kind analysis.Kind) (string, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return "", fmt.Errorf("report: report id is required")
	}
	if !kind.Valid() {
		return "", fmt.Errorf("report: unknown analysis kind %q", kind)
	}
	return reportID + "/" + string(kind) + ".json", nil
}
