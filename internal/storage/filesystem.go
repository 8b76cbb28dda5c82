// Package storage provides the opaque blob store backing recipe images.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store abstracts the blob store keyed by opaque references
type Store interface {
	// Save persists data and returns the blob reference
	Save(ext string, data []byte) (string, error)
	// Remove deletes the blob for a reference; missing blobs are not an error
	Remove(ref string) error
}

// FileStore stores blobs as files under a root directory.
// Thread-safe for concurrent operations.
type FileStore struct {
	root string
	mu   sync.Mutex
}

// NewFileStore creates the root directory if needed and returns a FileStore
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root cannot be empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Save writes the blob under a fresh uuid-based name and returns that name
func (s *FileStore) Save(ext string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("blob data cannot be empty")
	}

	ext = strings.TrimPrefix(ext, ".")
	name := uuid.NewString()
	if ext != "" {
		name = name + "." + ext
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.root, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return name, nil
}

// Remove deletes the blob file for a reference
func (s *FileStore) Remove(ref string) error {
	// References are bare file names; reject anything path-like
	if ref == "" || filepath.Base(ref) != ref {
		return fmt.Errorf("invalid blob reference: %q", ref)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.root, ref))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
