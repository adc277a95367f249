package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/daybook-app/daybook-client/internal/config"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/netwatch"
	"github.com/daybook-app/daybook-client/internal/service"
	"github.com/daybook-app/daybook-client/models"
)

type App struct {
	engine   service.SyncEngine
	observer *netwatch.ProbeObserver
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

func NewApp(engine service.SyncEngine, observer *netwatch.ProbeObserver, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if engine == nil || observer == nil || cfg == nil {
		return nil, errMissingDependencies
	}

	logger.Info().Msg("client app created")
	return &App{
		engine:   engine,
		observer: observer,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run starts connectivity probing and background synchronization, then blocks
// until the process receives a stop signal. The engine is stopped before the
// observer so no cycle is triggered against a dead probe.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.observer.Start(ctx)
	a.engine.Start(ctx, a.cfg.App.UserID)

	subID := a.engine.Subscribe(func(s models.SyncStatus) {
		a.printStatus(s)
	})

	a.logger.Info().
		Int64("user_id", a.cfg.App.UserID).
		Str("server", a.cfg.Adapter.ServerAddress).
		Msg("client running, press Ctrl+C to stop")

	<-ctx.Done()

	a.engine.Unsubscribe(subID)
	a.engine.Stop()
	a.observer.Stop()

	a.logger.Info().Msg("client shut down gracefully")
	return nil
}

func (a *App) printStatus(s models.SyncStatus) {
	state := "offline"
	if s.Online {
		state = "online"
	}
	if s.Syncing {
		state = "syncing"
	}

	line := fmt.Sprintf("[%s] pending=%d", state, s.Pending)
	if s.LastError != "" {
		line += " last_error=" + s.LastError
	}
	fmt.Fprintln(os.Stdout, line)
}
