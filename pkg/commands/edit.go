package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	mo := &options.MoodOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit --id <id> [text...]",
		Short: "Change the text or mood of an entry.",
		Long: options.Wrap80("Change the text or mood of an entry. The id and date of " +
			"the entry never change."),
		Example: `
reflectly edit --id 1717231800000 Turned out fine after all
reflectly edit --id 1717231800000 --mood calm
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := ido.EntryID()
			if err != nil {
				return oo.HandleError(err)
			}
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			s := edit.Edit{
				Journal: a.Journal,
				ID:      id,
				Message: strings.Join(args, " "),
				Mood:    mo.Mood,
				JSON:    oo.JSON,
				Out:     oo.Writer(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddIDArgs(cmd, ido)
	options.AddMoodArgs(cmd, mo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
