package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where entries are stored.",
		Example: `
reflectly info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Settings: a.Settings,
				Journal:  a.Journal,
				Out:      oo.Writer(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
