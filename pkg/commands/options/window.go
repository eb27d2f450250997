package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		Wrap80(`How far back to summarise, for example "1w", "3d", "1w2d6h", "1mo" or "all".`))
}

func (o *WindowOptions) Window() (timeutil.Window, error) {
	return timeutil.ParseWindow(o.Last)
}
