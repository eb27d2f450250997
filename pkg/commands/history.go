package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"list", "ls"},
		Short:   "List past entries, oldest first.",
		Example: `
reflectly history
reflectly history --show-id
reflectly history --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			s := history.History{
				Journal: a.Journal,
				ShowID:  ido.ShowID,
				JSON:    oo.JSON,
				Out:     oo.Writer(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
