package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show one entry in full.",
		Example: `
reflectly show --id 1717231800000
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			id, err := ido.EntryID()
			if err != nil {
				return oo.HandleError(err)
			}
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Journal: a.Journal,
				ID:      id,
				JSON:    oo.JSON,
				Out:     oo.Writer(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
