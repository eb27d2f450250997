package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/reflectly/pkg/config"
	"tableflip.dev/reflectly/pkg/journal"
)

// Info prints where settings and entries come from.
type Info struct {
	Settings *config.Settings
	Journal  *journal.Store
	Out      io.Writer
}

func (n *Info) Do(_ context.Context) error {
	if n.Settings == nil {
		return fmt.Errorf("info: no settings loaded")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "env var not set")
	}

	file := n.Settings.File
	if file == "" {
		file = "none, using defaults"
	}
	unsplash := "not set"
	if n.Settings.Motivation.UnsplashKey != "" {
		unsplash = "set"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config file:", file)
	tbl.AddRow("Data path:", n.Settings.BasePath())
	if n.Journal != nil {
		tbl.AddRow("Journal key:", n.Journal.Key())
		tbl.AddRow("Entries:", len(n.Journal.List()))
	} else {
		tbl.AddRow("Journal key:", n.Settings.Key)
	}
	tbl.AddRow("Unsplash key:", unsplash)
	tbl.AddRow("Server address:", n.Settings.Server.Addr)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
