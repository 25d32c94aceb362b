package app

import (
	"context"
	"errors"
	"fmt"

	"sigquery/internal/domain"
	"sigquery/internal/metrics"
	"sigquery/internal/services/exchange"
)

// App is the configured application the commands act on.
type App struct {
	Config Config
	*Wire
}

// New builds the app from a resolved configuration.
func New(cfg Config) (*App, error) {
	w, err := NewWire(cfg)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Wire: w}, nil
}

// Run executes one exchange over the request document name.
func (a *App) Run(ctx context.Context, name domain.DocumentName) (exchange.Report, error) {
	db, err := a.DB(ctx)
	if err != nil {
		return exchange.Report{}, err
	}
	return exchange.Run(ctx, exchange.RunConfig{
		Name:          name,
		Exchange:      a.Exchange,
		Store:         db,
		RequesterKeys: a.KeyProvider(domain.Requester),
		ResponderKeys: a.KeyProvider(domain.Responder),
		Timeout:       a.Config.BarrierTimeout,
		Logger:        a.Logger,
	})
}

// Close flushes metrics when configured and releases the database.
func (a *App) Close() error {
	var errs []error
	if a.Config.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	errs = append(errs, a.Wire.Close())
	return errors.Join(errs...)
}
