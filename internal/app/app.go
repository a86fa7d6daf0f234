package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lcalzada-xor/s1gap/internal/adapters/capture"
	"github.com/lcalzada-xor/s1gap/internal/adapters/hwmode"
	"github.com/lcalzada-xor/s1gap/internal/adapters/mgmt"
	"github.com/lcalzada-xor/s1gap/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/s1gap/internal/adapters/web/server"
	"github.com/lcalzada-xor/s1gap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/s1gap/internal/config"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
	"github.com/lcalzada-xor/s1gap/internal/core/services/ap"
	"github.com/lcalzada-xor/s1gap/internal/core/services/persistence"
	"github.com/lcalzada-xor/s1gap/internal/core/services/s1g"
	"github.com/lcalzada-xor/s1gap/internal/core/services/station"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

const flushTimeout = 5 * time.Second

// Application holds the core components of the access point.
type Application struct {
	Config *config.Config
	RunID  string
	Log    *slog.Logger

	Interface   *domain.InterfaceConfig
	Hardware    *hwmode.StaticProvider
	Initializer *s1g.Initializer
	Allocator   *s1g.QuotaAllocator
	Store       *s1g.Store
	Stations    *station.Table
	Dispatcher  *mgmt.Dispatcher

	Storage            *storage.SQLiteAdapter
	PersistenceManager *persistence.PersistenceManager
	Service            *ap.APService
	WSManager          *websocket.WSManager
	WebServer          *webserver.Server
}

// New creates a new Application and performs interface bring-up. A
// *s1g.ConfigurationError from bring-up is returned wrapped and is fatal.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	runID := uuid.NewString()
	app := &Application{
		Config: cfg,
		RunID:  runID,
		Log:    slog.With("run_id", runID),
	}

	if err := app.bootstrap(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Foundation
	telemetry.InitMetrics()

	if err := app.initHardware(); err != nil {
		return err
	}
	if err := app.initInterface(); err != nil {
		return err
	}

	// 2. S1G bring-up
	if err := app.bringUp(ctx); err != nil {
		return err
	}

	// 3. Station state and persistence
	if err := app.initStorage(); err != nil {
		return err
	}
	app.initStations()

	// 4. Servers
	app.Service = ap.NewAPService(app.Interface, app.Initializer, app.Stations, app.PersistenceManager, app.storagePort())
	app.WSManager.SetLister(app.Service)
	app.WebServer = webserver.NewServer(app.Config.Addr, app.Service, app.WSManager)
	return nil
}

func (app *Application) initHardware() error {
	modes := []domain.HardwareMode{hwmode.USS1GPlan(), hwmode.GenericGMode()}
	if app.Config.ChannelTable != "" {
		loaded, err := hwmode.LoadYAML(app.Config.ChannelTable)
		if err != nil {
			return fmt.Errorf("channel table: %w", err)
		}
		modes = loaded
	}
	app.Hardware = hwmode.NewStaticProvider(modes...)

	mode, err := app.Config.Mode()
	if err != nil {
		return err
	}
	if err := app.Hardware.SetActive(mode); err != nil {
		// Left without an active mode; S1G bring-up reports it.
		app.Log.Warn("Hardware mode not in channel table",
			"hw_mode", mode, "available", app.Hardware.Modes(), "error", err)
	}
	return nil
}

func (app *Application) initInterface() error {
	mode, err := app.Config.Mode()
	if err != nil {
		return err
	}
	iface, err := domain.NewInterfaceConfig(app.Config.Interface, mode, app.Config.Channel, app.Config.S1GOperChannel)
	if err != nil {
		return fmt.Errorf("interface %q: %w", app.Config.Interface, err)
	}
	if iface.LocalS1GCap, err = app.Config.LocalCapabilities(); err != nil {
		return err
	}
	app.Interface = iface
	return nil
}

func (app *Application) bringUp(ctx context.Context) error {
	_, span := telemetry.Tracer().Start(ctx, "s1g.bringup")
	defer span.End()
	span.SetAttributes(
		attribute.String("interface", app.Interface.Name),
		attribute.String("hw_mode", app.Interface.HwMode.String()),
		attribute.Int("channel", app.Interface.Channel),
		attribute.Int("s1g_oper_channel", app.Interface.S1GOperChannel),
	)

	app.Initializer = s1g.NewInitializer(s1g.NewResolver(app.Hardware))
	if err := app.Initializer.Init(app.Interface); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "S1G bring-up failed")
		return fmt.Errorf("interface %s: %w", app.Interface.Name, err)
	}

	span.SetAttributes(
		attribute.String("s1g_state", app.Initializer.State().String()),
		attribute.Int("s1g_primary_mhz", int(app.Interface.S1GPrimaryWidth)),
		attribute.Int("s1g_oper_mhz", int(app.Interface.S1GOperWidth)),
	)
	app.Log.Info("Interface up",
		"interface", app.Interface.Name,
		"hw_mode", app.Interface.HwMode.String(),
		"s1g", app.Interface.S1GEnabled,
		"channel", app.Interface.Channel,
		"s1g_oper_channel", app.Interface.S1GOperChannel)
	return nil
}

func (app *Application) initStorage() error {
	if !app.Config.Persistence {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init station storage: %w", err)
	}
	app.Storage = store
	app.PersistenceManager = persistence.NewPersistenceManager(store, 10000)
	return nil
}

// storagePort avoids handing a typed nil to the interface.
func (app *Application) storagePort() ports.StationStorage {
	if app.Storage == nil {
		return nil
	}
	return app.Storage
}

func (app *Application) initStations() {
	app.WSManager = websocket.NewWSManager(nil, 256)

	sinks := station.Fanout{app.WSManager}
	if app.PersistenceManager != nil {
		sinks = append(sinks, app.PersistenceManager)
	}

	app.Allocator = s1g.NewQuotaAllocator(app.Config.MaxS1GRecords)
	app.Store = s1g.NewStore(app.Allocator, sinks)
	app.Stations = station.NewTable(app.Store)
	app.Dispatcher = mgmt.NewDispatcher(app.Interface, app.Stations, app.Store, mgmt.LogResponseSink{})
}

// Run starts the application components and blocks until ctx is cancelled
// or a server fails.
func (app *Application) Run(ctx context.Context) error {
	app.Log.Info("Starting s1gap components")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.PersistenceManager != nil {
		app.PersistenceManager.Start(runCtx)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := app.WebServer.Run(runCtx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	if app.Config.ReplayPcap != "" {
		go app.replay(app.Config.ReplayPcap)
	}

	app.Log.Info("s1gap ready", "addr", app.Config.Addr)

	var runErr error
	select {
	case <-ctx.Done():
		app.Log.Info("Termination signal received")
	case runErr = <-errChan:
	}

	// Stop background loops and let the persistence manager flush.
	cancel()
	if app.PersistenceManager != nil {
		select {
		case <-app.PersistenceManager.Done():
		case <-time.After(flushTimeout):
			app.Log.Warn("Timed out waiting for station flush")
		}
	}

	app.Close()
	return runErr
}

func (app *Application) replay(path string) {
	n, err := capture.ReadFile(path, app.Dispatcher.HandleCaptured)
	if err != nil {
		app.Log.Error("pcap replay failed", "path", path, "frames", n, "error", err)
		return
	}
	app.Log.Info("pcap replay done", "path", path, "frames", n, "stations", app.Stations.Len())
}

// Close releases storage. It is safe to call more than once.
func (app *Application) Close() {
	if app.Storage != nil {
		if err := app.Storage.Close(); err != nil {
			app.Log.Error("Failed to close storage", "error", err)
		}
		app.Storage = nil
	}
}
