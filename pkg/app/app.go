// Package app wires configuration, persistence and the journal together so
// the CLI, the TUI and the server share one setup.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/reflectly/pkg/config"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/motivation"
	"tableflip.dev/reflectly/pkg/store"
)

// App holds the long lived pieces of a reflectly process.
type App struct {
	Settings   *config.Settings
	Logger     *zap.Logger
	Slot       store.WatchableSlot
	Journal    *journal.Store
	Motivation motivation.Source
}

// Option customises Open.
type Option func(*openOptions)

type openOptions struct {
	wrap func(store.Slot) store.Slot
}

// WithSlotWrapper decorates the slot the journal writes through, for
// example to instrument it.
func WithSlotWrapper(wrap func(store.Slot) store.Slot) Option {
	return func(o *openOptions) {
		o.wrap = wrap
	}
}

// Open builds an App from settings.
func Open(settings *config.Settings, logger *zap.Logger, opts ...Option) (*App, error) {
	if settings == nil {
		return nil, errors.New("app: settings required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}

	slot, err := store.Load(settings)
	if err != nil {
		return nil, fmt.Errorf("app: open slot: %w", err)
	}
	var through store.Slot = slot
	if o.wrap != nil {
		through = o.wrap(slot)
	}

	return &App{
		Settings: settings,
		Logger:   logger,
		Slot:     slot,
		Journal: journal.New(through,
			journal.WithKey(settings.Key),
			journal.WithLogger(logger.Named("journal"))),
		Motivation: newMotivation(settings.Motivation, logger.Named("motivation")),
	}, nil
}

func newMotivation(m config.Motivation, logger *zap.Logger) motivation.Source {
	if m.Disabled {
		return motivation.Static{}
	}
	return motivation.New(motivation.Options{
		QuoteURL:    m.QuoteURL,
		ImageURL:    m.ImageURL,
		ImageQuery:  m.ImageQuery,
		UnsplashKey: m.UnsplashKey,
		Timeout:     m.Timeout,
		Logger:      logger,
	})
}

// Follow keeps the journal in step with writes from other processes until
// ctx is done.
func (a *App) Follow(ctx context.Context) error {
	return a.Journal.Follow(ctx, a.Slot)
}

// NewLogger returns the development logger used by the CLI. It writes to
// stderr at warn level, or debug when verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !verbose
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("app: build logger: %w", err)
	}
	return logger, nil
}
