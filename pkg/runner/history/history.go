// Package history lists past entries.
package history

import (
	"context"
	"io"

	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/views"
)

type History struct {
	Journal *journal.Store
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *History) Do(_ context.Context) error {
	h := views.NewHistory(n.Journal)
	defer h.Stop()

	entries := h.Entries()
	if n.JSON {
		return printers.JSON(n.Out, entries)
	}
	pp := printers.New(n.Out)
	pp.ShowID = n.ShowID
	pp.TitleWithCount("History", len(entries))
	pp.Entries(entries...)
	return nil
}
