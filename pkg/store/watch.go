package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when the value stored under Key changed on disk.
type Event struct {
	Key string
}

// watchDebounce is how long a key must stay quiet before its event is sent.
var watchDebounce = 100 * time.Millisecond

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watch streams change events until ctx is cancelled. A burst of writes to
// one key yields a single event. Events are dropped while the consumer is
// behind, so consumers should reload on each event rather than count them.
// The channel is closed once ctx is done or the watcher fails.
func (s *diskSlot) Watch(ctx context.Context) (<-chan Event, error) {
	if s.basePath == "" {
		return nil, errors.New("store: slot base path unknown")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := w.Add(s.basePath); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("store: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 16)
	go s.watchLoop(ctx, w, events)
	return events, nil
}

func (s *diskSlot) watchLoop(ctx context.Context, w *fsnotify.Watcher, out chan<- Event) {
	defer close(out)
	defer func() { _ = w.Close() }()

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-w.Errors:
			if !ok {
				return
			}

		case evt, ok := <-w.Events:
			if !ok {
				return
			}
			if evt.Op&changeOps == 0 {
				continue
			}
			key := s.keyForPath(evt.Name)
			if key == "" {
				continue
			}
			pending[key] = struct{}{}
			timer.Reset(watchDebounce)

		case <-timer.C:
			for key := range pending {
				select {
				case out <- Event{Key: key}:
				default:
				}
				delete(pending, key)
			}
		}
	}
}

// keyForPath maps a file directly under the base path back to its key.
// Hidden files, including the atomic write temp dir, map to "".
func (s *diskSlot) keyForPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	if strings.ContainsRune(rel, os.PathSeparator) || strings.HasPrefix(rel, ".") {
		return ""
	}
	return rel
}
