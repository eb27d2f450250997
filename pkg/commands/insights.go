package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/runner/insights"
)

func addInsights(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show your mood trend, breakdown and recent reflections.",
		Example: `
reflectly insights
reflectly insights --last 1w
reflectly insights -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := fo.Validate(); err != nil {
				return err
			}
			w, err := wo.Window()
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			s := insights.Insights{
				Journal: a.Journal,
				Window:  w,
				Output:  fo.Format,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddFormatArg(cmd, fo)

	topLevel.AddCommand(cmd)
}
