// Package quote prints a motivational quote.
package quote

import (
	"context"
	"io"

	"tableflip.dev/reflectly/pkg/motivation"
	"tableflip.dev/reflectly/pkg/printers"
)

type Quote struct {
	Source motivation.Source
	JSON   bool
	Out    io.Writer
}

func (n *Quote) Do(ctx context.Context) error {
	c := motivation.Load(ctx, n.Source)
	if n.JSON {
		return printers.JSON(n.Out, c)
	}
	printers.New(n.Out).Quote(c)
	return nil
}
