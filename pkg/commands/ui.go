package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tui",
		Aliases: []string{"ui"},
		Short:   "Browse, edit and delete entries in the terminal.",
		Example: `
reflectly tui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			i := ui.UI{App: a}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
