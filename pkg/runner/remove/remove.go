// Package remove deletes an entry.
package remove

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/views"
)

type Remove struct {
	Journal *journal.Store
	ID      entry.ID
	JSON    bool
	Out     io.Writer
}

func (n *Remove) Do(_ context.Context) error {
	h := views.NewHistory(n.Journal)
	defer h.Stop()

	if err := h.Open(n.ID); err != nil {
		return fmt.Errorf("delete %s: %w", n.ID, err)
	}
	e, _ := h.Selected()
	if err := h.Delete(); err != nil {
		return fmt.Errorf("delete %s: %w", n.ID, err)
	}

	if n.JSON {
		return printers.JSON(n.Out, map[string]interface{}{"deleted": e.ID})
	}
	pp := printers.New(n.Out)
	f := color.New(color.Faint)
	if pp.NoColor {
		f.DisableColor()
	}
	_, _ = f.Fprintf(n.Out, "deleted %s  %s\n", e.ID, e.Title(60))
	return nil
}
