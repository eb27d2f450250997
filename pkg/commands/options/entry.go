package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/mood"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Specify the id of an entry.")
}

// EntryID parses the --id flag.
func (o *IDOptions) EntryID() (entry.ID, error) {
	if strings.TrimSpace(o.ID) == "" {
		return 0, errors.New("--id is required")
	}
	return entry.ParseID(o.ID)
}

// MoodOptions
type MoodOptions struct {
	Mood string
}

func AddMoodArgs(cmd *cobra.Command, o *MoodOptions) {
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		Wrap80("How you feel, one of: "+strings.Join(mood.Keys(), ", ")+". Emoji and aliases work too."))
	_ = cmd.RegisterFlagCompletionFunc("mood", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return mood.Keys(), cobra.ShellCompDirectiveNoFileComp
	})
}
