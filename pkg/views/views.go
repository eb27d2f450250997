// Package views holds the state behind each screen of the journal: the
// composer used to write a new entry, the history browser and the insights
// dashboard. Views never own entries; they read copies from the journal and
// send every change back through it.
package views

import "errors"

var (
	// ErrEmptyContent is returned when a save is attempted with nothing but
	// whitespace.
	ErrEmptyContent = errors.New("views: content is empty")

	// ErrNoSelection is returned by History operations that need an open
	// entry.
	ErrNoSelection = errors.New("views: no entry is open")

	// ErrNotFound is returned when an entry id is not in the journal.
	ErrNotFound = errors.New("views: entry not found")

	// ErrUnknownMood is returned when selecting a mood outside the known set.
	ErrUnknownMood = errors.New("views: unknown mood")
)
