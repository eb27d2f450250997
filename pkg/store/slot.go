// Package store provides the persistent key-value slot the journal mirrors
// its collection into.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Slot is a durable, process-local string keyed storage facility. Set
// replaces the whole value for a key.
type Slot interface {
	// Get returns the stored value and whether the key has ever been written.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// WatchableSlot is a Slot whose backing storage can be observed for writes
// made by other processes.
type WatchableSlot interface {
	Slot
	Watch(ctx context.Context) (<-chan Event, error)
}

// Config locates the on-disk slot.
type Config interface {
	BasePath() string
}

const tempDirName = ".tmp"

// Load creates a Slot backed by diskv rooted at cfg.BasePath().
func Load(cfg Config) (WatchableSlot, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := strings.TrimSpace(cfg.BasePath())
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskSlot{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		TempDir:      filepath.Join(basePath, tempDirName),
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type diskSlot struct {
	d        *diskv.Diskv
	basePath string
}

// flatTransform keeps every key directly under the base path.
func flatTransform(string) []string {
	return []string{}
}

func validKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("store: key required")
	case strings.ContainsAny(key, `/\`), key == tempDirName:
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}

func (s *diskSlot) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	// Read past the cache: another process may have replaced the file.
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (s *diskSlot) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *diskSlot) String() string {
	return s.basePath
}
