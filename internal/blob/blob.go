// Package blob abstracts durable binary storage for migrated assets.
//
// The contract is deliberately narrow: one Upload call returning a durable
// URL. The asset migration pipeline owns path construction; this package
// owns only where the bytes land.
package blob

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store uploads binary assets and returns durable references.
// Implemented by DiskStore (production) and MemStore (tests).
type Store interface {
	// Upload writes data at the given storage path and returns a stable
	// URL safe to persist long-term. Uploading to the same path twice
	// overwrites; paths are partitioned by document, container, and block,
	// so concurrent migrations for different blocks never collide.
	Upload(ctx context.Context, storagePath string, data []byte) (string, error)
}

// DiskStore stores assets under a root directory and returns URLs by
// joining a base URL with the storage path.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a disk-backed store. root is the directory assets
// are written under; baseURL is the public prefix of returned references,
// e.g. "https://cdn.example.com/assets".
func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes the asset to disk, creating parent directories as needed.
func (s *DiskStore) Upload(ctx context.Context, storagePath string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := path.Clean("/" + storagePath)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("blob: invalid storage path %q", storagePath)
	}

	target := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("blob: mkdir for %s: %w", clean, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("blob: write %s: %w", clean, err)
	}
	return s.baseURL + "/" + clean, nil
}
