// Package edit changes the content or mood of an existing entry.
package edit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/views"
)

type Edit struct {
	Journal *journal.Store
	ID      entry.ID

	// Message replaces the content when set; Mood replaces the mood when
	// set. At least one must be given.
	Message string
	Mood    string

	JSON bool
	Out  io.Writer
}

func (n *Edit) Do(_ context.Context) error {
	if strings.TrimSpace(n.Message) == "" && strings.TrimSpace(n.Mood) == "" {
		return fmt.Errorf("edit %s: nothing to change, give new text or --mood", n.ID)
	}

	h := views.NewHistory(n.Journal)
	defer h.Stop()

	if err := h.Open(n.ID); err != nil {
		return fmt.Errorf("edit %s: %w", n.ID, err)
	}
	if err := h.BeginEdit(); err != nil {
		return fmt.Errorf("edit %s: %w", n.ID, err)
	}
	if strings.TrimSpace(n.Message) != "" {
		h.SetDraft(n.Message)
	}
	if err := h.SetMood(n.Mood); err != nil {
		return fmt.Errorf("edit %s: %w %q", n.ID, err, n.Mood)
	}
	e, err := h.Save()
	if err != nil {
		return fmt.Errorf("edit %s: %w", n.ID, err)
	}

	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	pp := printers.New(n.Out)
	pp.ShowID = true
	pp.Title("Updated")
	pp.Entry(e)
	return nil
}
