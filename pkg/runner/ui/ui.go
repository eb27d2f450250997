// Package ui opens the interactive history browser.
package ui

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/reflectly/pkg/app"
	"tableflip.dev/reflectly/pkg/tui/history"
)

type UI struct {
	App *app.App
}

// Do runs the browser until the user quits. Entries written by other
// processes while it is open show up without a restart.
func (d *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := d.App.Follow(ctx); err != nil {
		d.App.Logger.Warn("not following external changes", zap.Error(err))
	}
	return history.Run(ctx, d.App.Journal)
}
