package blob

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests. It records every upload and
// can be told to fail specific paths to exercise per-field error handling.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type MemStore struct {
	mu       sync.Mutex
	baseURL  string
	uploads  map[string][]byte
	failures map[string]error
	calls    []string
}

// NewMemStore creates an empty in-memory store returning URLs under baseURL.
func NewMemStore(baseURL string) *MemStore {
	return &MemStore{
		baseURL:  baseURL,
		uploads:  make(map[string][]byte),
		failures: make(map[string]error),
	}
}

// FailPath makes subsequent uploads to storagePath return err.
func (s *MemStore) FailPath(storagePath string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[storagePath] = err
}

// Upload records the asset and returns a URL under the base prefix.
func (s *MemStore) Upload(ctx context.Context, storagePath string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, storagePath)
	if err, ok := s.failures[storagePath]; ok {
		return "", err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.uploads[storagePath] = cp
	return fmt.Sprintf("%s/%s", s.baseURL, storagePath), nil
}

// UploadCount returns how many Upload calls were made, including failures.
func (s *MemStore) UploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Stored returns the bytes uploaded at storagePath, or nil.
func (s *MemStore) Stored(storagePath string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads[storagePath]
}
