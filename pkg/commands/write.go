package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	mo := &options.MoodOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}
	quote := false

	cmd := &cobra.Command{
		Use:     "write [text...]",
		Aliases: []string{"add", "new"},
		Short:   "Write a new journal entry.",
		Long: options.Wrap80("Write a new journal entry. The text comes from the arguments, " +
			"or from stdin when no arguments are given and stdin is not a terminal."),
		Example: `
reflectly write --mood happy Finished the garden today
echo "long day" | reflectly write -m sad
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			message := strings.Join(args, " ")
			if message == "" && !printers.IsTerminal(os.Stdin) {
				b, err := readAll(os.Stdin)
				if err != nil {
					return oo.HandleError(fmt.Errorf("write: read stdin: %w", err))
				}
				message = string(b)
			}

			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			s := write.Write{
				Journal:    a.Journal,
				Motivation: a.Motivation,
				Mood:       mo.Mood,
				Message:    message,
				Quote:      quote,
				JSON:       oo.JSON,
				ShowID:     ido.ShowID,
				Out:        oo.Writer(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddMoodArgs(cmd, mo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVarP(&quote, "quote", "q", false,
		"Show a motivational quote after saving.")

	topLevel.AddCommand(cmd)
}

func readAll(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, 1<<20))
}
