// Package show prints one entry in full.
package show

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/views"
)

type Show struct {
	Journal *journal.Store
	ID      entry.ID
	JSON    bool
	Out     io.Writer
}

func (n *Show) Do(_ context.Context) error {
	h := views.NewHistory(n.Journal)
	defer h.Stop()

	if err := h.Open(n.ID); err != nil {
		return fmt.Errorf("show %s: %w", n.ID, err)
	}
	e, _ := h.Selected()
	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	pp := printers.New(n.Out)
	pp.ShowID = true
	pp.Entry(e)
	return nil
}
