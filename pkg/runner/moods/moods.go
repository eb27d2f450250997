// Package moods prints the known moods and their scores.
package moods

import (
	"context"
	"io"

	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/printers"
)

type Moods struct {
	JSON bool
	Out  io.Writer
}

func (n *Moods) Do(_ context.Context) error {
	if n.JSON {
		return printers.JSON(n.Out, mood.Defaults())
	}
	printers.New(n.Out).Moods(mood.Defaults())
	return nil
}
