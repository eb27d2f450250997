package journal

import (
	"context"
	"fmt"

	"tableflip.dev/reflectly/pkg/store"
)

// Follow reloads the store whenever the slot reports that its key changed on
// disk, until ctx is done. It lets a long running consumer such as the HTTP
// server see entries written by a separate CLI invocation.
//
// The store's own writes come back as events too; Reload finds the
// collection unchanged and drops them without notifying anyone.
func (s *Store) Follow(ctx context.Context, slot store.WatchableSlot) error {
	events, err := slot.Watch(ctx)
	if err != nil {
		return fmt.Errorf("journal: watch slot: %w", err)
	}
	go func() {
		for ev := range events {
			if ev.Key != s.key {
				continue
			}
			s.log.Debug("slot changed on disk, reloading")
			s.Reload()
		}
	}()
	return nil
}
