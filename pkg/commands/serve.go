package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/reflectly/pkg/app"
	"tableflip.dev/reflectly/pkg/runner/serve"
	"tableflip.dev/reflectly/pkg/server"
	"tableflip.dev/reflectly/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	addr := ""

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal as a JSON API.",
		Example: `
reflectly serve
reflectly serve --addr :8080
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			metrics := server.NewMetrics()
			a, err := openApp(app.WithSlotWrapper(func(s store.Slot) store.Slot {
				return server.InstrumentSlot(s, metrics)
			}))
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()
			s := serve.Serve{App: a, Metrics: metrics, Addr: addr}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "",
		"Address to listen on, defaults to server.addr from the config.")

	topLevel.AddCommand(cmd)
}
