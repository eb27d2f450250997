package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/app"
	"tableflip.dev/reflectly/pkg/commands/options"
	"tableflip.dev/reflectly/pkg/config"
)

var (
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "reflectly",
		Short: options.Wrap80("Record how you feel, look back on it, and see how your mood moves over time."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWrite(topLevel)
	addHistory(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addInsights(topLevel)
	addMoods(topLevel)
	addQuote(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addServe(topLevel)
	addVersion(topLevel)
}

// openApp loads settings and opens the journal they point at.
func openApp(opts ...app.Option) (*app.App, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(verbose)
	if err != nil {
		return nil, err
	}
	return app.Open(settings, logger, opts...)
}
