package views

import (
	"strings"
	"sync"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/mood"
)

// History lists past entries and lets one be opened, edited or deleted.
// It follows the journal, so an open entry deleted elsewhere is closed.
type History struct {
	store  *journal.Store
	cancel func()

	mu      sync.Mutex
	version uint64
	entries []entry.Entry

	open      bool
	selected  entry.Entry
	editing   bool
	draft     string
	draftMood string
}

// NewHistory returns a history view over s. Call Stop when done with it.
func NewHistory(s *journal.Store) *History {
	h := &History{store: s}
	h.cancel = s.Subscribe(h.apply)
	h.apply(s.Snapshot())
	return h
}

// Stop detaches the view from the journal.
func (h *History) Stop() {
	h.cancel()
}

func (h *History) apply(snap journal.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if snap.Version < h.version {
		return
	}
	h.version = snap.Version
	h.entries = snap.Entries
	if !h.open {
		return
	}
	for _, e := range snap.Entries {
		if e.ID == h.selected.ID {
			h.selected = e
			return
		}
	}
	h.closeLocked()
}

// Entries returns the entries in insertion order.
func (h *History) Entries() []entry.Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]entry.Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Open selects the entry with id for viewing.
func (h *History) Open(id entry.ID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.entries {
		if e.ID == id {
			h.closeLocked()
			h.open = true
			h.selected = e
			return nil
		}
	}
	return ErrNotFound
}

// Selected returns the open entry.
func (h *History) Selected() (entry.Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.selected, h.open
}

// Editing reports whether the open entry is being edited.
func (h *History) Editing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.editing
}

// BeginEdit starts editing the open entry with its current content as the
// draft.
func (h *History) BeginEdit() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return ErrNoSelection
	}
	h.editing = true
	h.draft = h.selected.Content
	h.draftMood = h.selected.Mood
	return nil
}

// SetDraft replaces the edit buffer.
func (h *History) SetDraft(text string) {
	h.mu.Lock()
	h.draft = text
	h.mu.Unlock()
}

func (h *History) Draft() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.draft
}

// SetMood changes the mood the edit will be saved with. Known labels are
// stored by key.
func (h *History) SetMood(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	m, ok := mood.Lookup(label)
	if !ok {
		return ErrUnknownMood
	}
	h.mu.Lock()
	h.draftMood = m.Key
	h.mu.Unlock()
	return nil
}

// Save writes the draft back to the journal and leaves edit mode. A blank
// draft is rejected and editing continues.
func (h *History) Save() (entry.Entry, error) {
	h.mu.Lock()
	if !h.open || !h.editing {
		h.mu.Unlock()
		return entry.Entry{}, ErrNoSelection
	}
	if strings.TrimSpace(h.draft) == "" {
		h.mu.Unlock()
		return entry.Entry{}, ErrEmptyContent
	}
	next := h.selected
	next.Content = h.draft
	next.Mood = h.draftMood
	h.mu.Unlock()

	// The journal notifies us synchronously, so the lock must not be held.
	if !h.store.Update(next) {
		return entry.Entry{}, ErrNotFound
	}
	saved, ok := h.store.Get(next.ID)
	if !ok {
		return entry.Entry{}, ErrNotFound
	}

	h.mu.Lock()
	if h.open && h.selected.ID == saved.ID {
		h.selected = saved
		h.editing = false
		h.draft = ""
		h.draftMood = ""
	}
	h.mu.Unlock()
	return saved, nil
}

// Cancel discards the draft and leaves edit mode.
func (h *History) Cancel() {
	h.mu.Lock()
	h.editing = false
	h.draft = ""
	h.draftMood = ""
	h.mu.Unlock()
}

// Delete removes the open entry from the journal and closes it.
func (h *History) Delete() error {
	h.mu.Lock()
	if !h.open {
		h.mu.Unlock()
		return ErrNoSelection
	}
	id := h.selected.ID
	h.mu.Unlock()

	deleted := h.store.Delete(id)

	h.mu.Lock()
	if h.open && h.selected.ID == id {
		h.closeLocked()
	}
	h.mu.Unlock()
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Close deselects the open entry, dropping any draft.
func (h *History) Close() {
	h.mu.Lock()
	h.closeLocked()
	h.mu.Unlock()
}

func (h *History) closeLocked() {
	h.open = false
	h.selected = entry.Entry{}
	h.editing = false
	h.draft = ""
	h.draftMood = ""
}
