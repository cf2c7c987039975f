// Package cache keeps the client's last known event collection as a single
// snapshot, overwritten on every change and read back wholesale.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// DefaultKey names the snapshot in key-value backends.
const DefaultKey = "petDiabetesEvents"

// Cache stores one snapshot of the full collection.
type Cache interface {
	// Save overwrites the snapshot.
	Save(ctx context.Context, events []domain.Event) error
	// Load returns the snapshot and false when none was saved yet.
	Load(ctx context.Context) ([]domain.Event, bool, error)
}

// FileCache stores the snapshot as a JSON file.
type FileCache struct {
	path string
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the snapshot location.
func (c *FileCache) Path() string {
	return c.path
}

// Save atomically writes the snapshot.
func (c *FileCache) Save(_ context.Context, events []domain.Event) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("cache error creating directories: %w", err)
	}

	data, err := encode(events)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("cache error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cache error renaming temp file: %w", err)
	}
	return nil
}

// Load reads the snapshot. A corrupt file is moved aside to path+".corrupt".
func (c *FileCache) Load(_ context.Context) ([]domain.Event, bool, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache error reading %s: %w", c.path, err)
	}

	events, err := decode(data)
	if err != nil {
		backupPath := c.path + ".corrupt"
		_ = os.Rename(c.path, backupPath)
		return nil, false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", c.path, backupPath, err)
	}
	return events, true, nil
}

func encode(events []domain.Event) ([]byte, error) {
	if events == nil {
		events = []domain.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cache error marshalling JSON: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]domain.Event, error) {
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}
