package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete --id <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry.",
		Example: `
reflectly delete --id 1717231800000
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
			s := remove.Remove{
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
