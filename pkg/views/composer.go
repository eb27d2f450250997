package views

import (
	"context"
	"strings"
	"sync"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/motivation"
)

// Composer is the new entry form.
type Composer struct {
	store  *journal.Store
	source motivation.Source

	mu    sync.Mutex
	mood  string
	draft string

	once    sync.Once
	content motivation.Content
}

// NewComposer returns a composer writing to s. src may be nil, in which case
// the fallback quote is shown.
func NewComposer(s *journal.Store, src motivation.Source) *Composer {
	return &Composer{store: s, source: src}
}

// Moods lists the selectable moods.
func (c *Composer) Moods() []mood.Mood {
	return mood.Defaults()
}

// SelectMood picks a mood by key, emoji or alias. An empty label clears the
// selection.
func (c *Composer) SelectMood(label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(label) == "" {
		c.mood = ""
		return nil
	}
	m, ok := mood.Lookup(label)
	if !ok {
		return ErrUnknownMood
	}
	c.mood = m.Key
	return nil
}

// Mood returns the selected mood key, or "" when none is selected.
func (c *Composer) Mood() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mood
}

func (c *Composer) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

func (c *Composer) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Motivation returns the quote and image for this composer. They are
// fetched on first call and reused afterwards.
func (c *Composer) Motivation(ctx context.Context) motivation.Content {
	c.once.Do(func() {
		c.content = motivation.Load(ctx, c.source)
	})
	return c.content
}

// Save creates an entry from the draft and selected mood, then resets the
// form. A blank draft is rejected with ErrEmptyContent and kept as is.
func (c *Composer) Save() (entry.Entry, error) {
	c.mu.Lock()
	cand := entry.Candidate{Mood: c.mood, Content: c.draft}
	c.mu.Unlock()

	if strings.TrimSpace(cand.Content) == "" {
		return entry.Entry{}, ErrEmptyContent
	}
	e, ok := c.store.Create(cand)
	if !ok {
		return entry.Entry{}, ErrEmptyContent
	}

	c.mu.Lock()
	c.draft = ""
	c.mood = ""
	c.mu.Unlock()
	return e, nil
}
