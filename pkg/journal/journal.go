// Package journal owns the authoritative collection of journal entries and
// keeps it mirrored into a persistent key-value slot.
//
// Every effective mutation writes the whole collection back to the slot
// before the call returns and then notifies subscribers with a fresh
// snapshot. Write failures are logged and do not undo the in-memory change.
// Calls that target a missing entry, or that would store empty content, are
// no-ops.
package journal

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/store"
)

// DefaultKey is the slot key the collection is stored under.
const DefaultKey = "reflectly-journal-entries"

// Snapshot is a copy of the collection at a given version. Versions grow by
// one for every change, so a subscriber can drop a snapshot older than the
// one it already has.
type Snapshot struct {
	Version uint64
	Entries []entry.Entry
}

// Store is the single source of truth for journal entries. Create one per
// slot and pass it to every consumer.
type Store struct {
	slot store.Slot
	key  string
	log  *zap.Logger
	now  func() time.Time

	mu      sync.Mutex
	loaded  bool
	entries []entry.Entry
	version uint64
	lastID  entry.ID

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	order   []int
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for persistence problems.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now, used for ids and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Store over slot. Nothing is read until first access.
func New(slot store.Slot, opts ...Option) *Store {
	s := &Store{
		slot: slot,
		key:  DefaultKey,
		log:  zap.NewNop(),
		now:  time.Now,
		subs: make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(zap.String("key", s.key))
	return s
}

// Key returns the slot key the collection is stored under.
func (s *Store) Key() string {
	return s.key
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return clone(s.entries)
}

// Snapshot returns the collection with its current version.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.snapshotLocked()
}

// Get returns the entry with the given id.
func (s *Store) Get(id entry.ID) (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return entry.Entry{}, false
}

// Create appends a new entry built from c. Content is trimmed; when nothing
// is left the call is a no-op and reports false.
func (s *Store) Create(c entry.Candidate) (entry.Entry, bool) {
	content := strings.TrimSpace(c.Content)
	if content == "" {
		s.log.Debug("ignoring create with empty content")
		return entry.Entry{}, false
	}

	s.mu.Lock()
	s.ensureLoaded()
	now := s.now()
	e := entry.Entry{
		ID:      s.nextID(now),
		Date:    entry.NewTimestamp(now),
		Mood:    mood.Normalize(c.Mood),
		Content: content,
	}
	s.entries = append(s.entries, e)
	snap := s.commitLocked("create")
	s.mu.Unlock()

	s.publish(snap)
	return e, true
}

// Update replaces the content, and the mood when one is given, of the entry
// with e.ID. The stored id and date are kept whatever e carries. It reports
// whether the target exists and the content was acceptable.
func (s *Store) Update(e entry.Entry) bool {
	content := strings.TrimSpace(e.Content)
	if content == "" {
		s.log.Debug("ignoring update with empty content", zap.Stringer("id", e.ID))
		return false
	}

	s.mu.Lock()
	s.ensureLoaded()
	i := s.indexOf(e.ID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("ignoring update of unknown entry", zap.Stringer("id", e.ID))
		return false
	}
	current := s.entries[i]
	next := current
	next.Content = content
	if m := strings.TrimSpace(e.Mood); m != "" {
		next.Mood = m
	}
	if next == current {
		s.mu.Unlock()
		return true
	}
	s.entries[i] = next
	snap := s.commitLocked("update")
	s.mu.Unlock()

	s.publish(snap)
	return true
}

// Delete removes the entry with id. It reports whether anything was removed;
// nothing is written when it was not.
func (s *Store) Delete(id entry.ID) bool {
	s.mu.Lock()
	s.ensureLoaded()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("ignoring delete of unknown entry", zap.Stringer("id", id))
		return false
	}
	next := make([]entry.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	s.entries = next
	snap := s.commitLocked("delete")
	s.mu.Unlock()

	s.publish(snap)
	return true
}

// Reload reads the slot again, picking up writes made by another process.
// Subscribers are notified only when the collection changed. A read or
// decode failure keeps the current collection.
func (s *Store) Reload() {
	s.mu.Lock()
	entries, ok := s.read()
	if !ok && s.loaded {
		s.mu.Unlock()
		s.log.Warn("failed to reload journal, keeping current entries")
		return
	}
	if s.loaded && equal(entries, s.entries) {
		s.mu.Unlock()
		return
	}
	s.setLocked(entries)
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// Subscribe registers fn to be called with a snapshot after every change.
// Calls happen synchronously on the mutating goroutine, in registration
// order, after the store lock is released. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(Snapshot{Version: snap.Version, Entries: clone(snap.Entries)})
	}
}

func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	entries, _ := s.read()
	s.setLocked(entries)
}

func (s *Store) setLocked(entries []entry.Entry) {
	s.entries = entries
	s.loaded = true
	for _, e := range entries {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
}

// read loads the persisted collection. It reports false when the slot could
// not be read or decoded, in which case the collection is empty.
func (s *Store) read() ([]entry.Entry, bool) {
	if s.slot == nil {
		return []entry.Entry{}, true
	}
	raw, found, err := s.slot.Get(s.key)
	if err != nil {
		s.log.Warn("failed to read journal", zap.Error(err))
		return []entry.Entry{}, false
	}
	if !found {
		return []entry.Entry{}, true
	}
	entries, err := entry.UnmarshalList([]byte(raw))
	if err != nil {
		s.log.Warn("failed to parse journal", zap.Error(err))
		return []entry.Entry{}, false
	}
	return dedupe(entries, s.log), true
}

// commitLocked persists the collection and bumps the version.
func (s *Store) commitLocked(op string) Snapshot {
	s.version++
	s.persistLocked(op)
	return s.snapshotLocked()
}

func (s *Store) persistLocked(op string) {
	if s.slot == nil {
		return
	}
	data, err := entry.MarshalList(s.entries)
	if err != nil {
		s.log.Error("failed to encode journal", zap.String("op", op), zap.Error(err))
		return
	}
	if err := s.slot.Set(s.key, string(data)); err != nil {
		s.log.Error("failed to save journal, keeping changes in memory",
			zap.String("op", op), zap.Int("entries", len(s.entries)), zap.Error(err))
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Version: s.version, Entries: clone(s.entries)}
}

// nextID derives an id from now, moving past the last one handed out when
// the clock has not advanced.
func (s *Store) nextID(now time.Time) entry.ID {
	id := entry.ID(now.UnixMilli())
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexOf(id entry.ID) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first entry for each id. Hand edited or merged files can
// carry duplicates and the collection must not.
func dedupe(entries []entry.Entry, log *zap.Logger) []entry.Entry {
	seen := make(map[entry.ID]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			log.Warn("dropping entry with duplicate id", zap.Stringer("id", e.ID))
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

func clone(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	copy(out, entries)
	return out
}

func equal(a, b []entry.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
