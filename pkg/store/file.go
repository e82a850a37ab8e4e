package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/radialtree/pkg/graph"
)

// FileStore is a file-based layout store.
// Layouts are stored as JSON files named by ID in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based layout store.
// If baseDir is empty, defaults to ~/.local/share/radialtree/layouts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "radialtree", "layouts")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) layoutPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Put(ctx context.Context, l graph.Layout) (string, error) {
	l = prepare(l)
	if !ValidID(l.ID) {
		return "", fmt.Errorf("invalid layout id %q", l.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(s.layoutPath(l.ID), data, 0644); err != nil {
		return "", fmt.Errorf("write layout file: %w", err)
	}
	return l.ID, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (graph.Layout, error) {
	if !ValidID(id) {
		return graph.Layout{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.layoutPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return graph.Layout{}, ErrNotFound
		}
		return graph.Layout{}, fmt.Errorf("read layout file: %w", err)
	}

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.layoutPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove layout file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read layout dir: %w", err)
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		l, err := graph.UnmarshalLayout(data)
		if err != nil {
			continue
		}
		out = append(out, Summarize(l))
	}
	return newestFirst(out, limit), nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
