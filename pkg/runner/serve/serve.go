// Package serve runs the HTTP API.
package serve

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/reflectly/pkg/app"
	"tableflip.dev/reflectly/pkg/server"
)

type Serve struct {
	App     *app.App
	Metrics *server.Metrics
	Addr    string
}

func (n *Serve) Do(ctx context.Context) error {
	addr := n.Addr
	if addr == "" {
		addr = n.App.Settings.Server.Addr
	}
	if err := n.App.Follow(ctx); err != nil {
		n.App.Logger.Warn("not following external changes", zap.Error(err))
	}

	srv := server.New(server.Options{
		Journal:        n.App.Journal,
		Motivation:     n.App.Motivation,
		Metrics:        n.Metrics,
		Logger:         n.App.Logger.Named("http"),
		AllowedOrigins: n.App.Settings.Server.AllowedOrigins,
	})
	defer srv.Close()

	return server.ListenAndServe(ctx, addr, srv.Handler(), n.App.Logger)
}
