package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/workers"
	"github.com/MKhiriev/go-note-sync/models"
)

// App owns one client process: storages, services and background workers.
type App struct {
	services  *service.ClientServices
	storages  *store.ClientStorages
	bus       *events.Bus
	workers   *workers.Workers
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewApp opens the local storages and wires the services over them. Nothing
// runs until [App.Start].
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, storages.Tokens, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	return newApp(storages, serverAdapter, crypto.NewCodec(), cfg.Workers, buildInfo, logger), nil
}

func newApp(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	codec crypto.Codec,
	workersCfg config.ClientWorkers,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *App {
	bus := events.NewBus()
	services := service.NewClientServices(storages, serverAdapter, codec, bus, workersCfg, logger)

	return &App{
		services:  services,
		storages:  storages,
		bus:       bus,
		workers:   workers.NewWorkers(services.Scheduler, services.PullJob),
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Start restores the previous session and starts the push scheduler and the
// pull job.
func (a *App) Start(ctx context.Context) error {
	if err := a.services.Sync.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	a.workers.Start(ctx)
	a.logger.Debug().
		Str("username", a.services.Session.Username()).
		Bool("logged_in", a.services.Session.IsLoggedIn()).
		Msg("client started")
	return nil
}

// Close pushes any pending debounced changes, stops the workers and releases
// the storages.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	before := a.services.Session.CurrentError()
	if a.services.Scheduler.Flush(ctx) {
		a.logger.Debug().Msg("flushed pending push on close")
		// only an error raised by the flushed push itself is reported
		if err := a.services.Session.CurrentError(); err != before && !err.IsNone() {
			errs = append(errs, err)
		}
	}
	a.workers.Stop()

	if err := a.storages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storages: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) Services() *service.ClientServices {
	return a.services
}

func (a *App) Bus() *events.Bus {
	return a.bus
}

func (a *App) BuildInfo() models.AppBuildInfo {
	return a.buildInfo
}
