package main

import (
	"fmt"

	"github.com/daybook-app/daybook-client/internal/adapter"
	"github.com/daybook-app/daybook-client/internal/client"
	"github.com/daybook-app/daybook-client/internal/config"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/netwatch"
	"github.com/daybook-app/daybook-client/internal/service"
	"github.com/daybook-app/daybook-client/internal/store"
	"github.com/daybook-app/daybook-client/internal/validators"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("daybook-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPSyncServer(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}
	serverAdapter.SetToken(cfg.App.AuthToken)

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	observer := netwatch.NewProbeObserver(serverAdapter, cfg.Sync.ProbeInterval, log)
	engine := service.NewSyncEngine(storages, serverAdapter, observer, validators.NewSnapshotValidator(), cfg.Sync, log)

	app, err := client.NewApp(engine, observer, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
