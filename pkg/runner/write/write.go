// Package write records a new journal entry.
package write

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/motivation"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/views"
)

type Write struct {
	Journal    *journal.Store
	Motivation motivation.Source

	Mood    string
	Message string
	Quote   bool
	JSON    bool
	ShowID  bool

	Out io.Writer
}

func (n *Write) Do(ctx context.Context) error {
	c := views.NewComposer(n.Journal, n.Motivation)
	if err := c.SelectMood(n.Mood); err != nil {
		return fmt.Errorf("%w %q, expected one of %s", err, n.Mood, strings.Join(mood.Keys(), ", "))
	}
	c.SetDraft(n.Message)

	e, err := c.Save()
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	pp := printers.New(n.Out)
	pp.ShowID = n.ShowID
	if n.Quote {
		pp.Quote(c.Motivation(ctx))
	}
	pp.Title("Saved")
	pp.Entry(e)
	return nil
}
