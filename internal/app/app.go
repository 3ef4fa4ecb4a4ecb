// Package app assembles the sync service and its HTTP server with fx.
package app

import (
	"context"

	"github.com/lshigami/intuity-sync/config"
	"github.com/lshigami/intuity-sync/database"
	"github.com/lshigami/intuity-sync/internal/connectivity"
	"github.com/lshigami/intuity-sync/internal/localstore"
	"github.com/lshigami/intuity-sync/internal/logger"
	"github.com/lshigami/intuity-sync/internal/repository"
	"github.com/lshigami/intuity-sync/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Core provides everything a one-shot command needs: config, storage and
// the SyncService. The remote backend is probed once on start.
var Core = fx.Options(
	fx.Provide(
		config.NewConfig,
		newDatabase,
		newLocalStore,
		newRepositories,
		newSyncService,
	),
	fx.Invoke(
		initLogger,
		database.AutoMigrate,
	),
)

// Server adds the connectivity monitor and the HTTP API on top of Core.
var Server = fx.Options(
	Core,
	fx.Provide(
		newMonitor,
		NewGinEngine,
		NewControllers,
	),
	fx.Invoke(
		startMonitor,
		RegisterRoutesAndStartServer,
	),
)

func initLogger(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewDatabase(cfg)
	if err != nil || db == nil {
		return db, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newLocalStore(lc fx.Lifecycle, cfg *config.Config) (localstore.Store, error) {
	store, err := localstore.New(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.LocalStore.Driver).Msg("Local store opened")
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return store.Close() },
	})
	return store, nil
}

// newRepositories returns untyped nil interfaces when no remote database is
// configured so the service sees "remote not configured".
func newRepositories(db *gorm.DB) (repository.QuestionRepository, repository.ResponseRepository) {
	if db == nil {
		return nil, nil
	}
	return repository.NewQuestionRepository(db), repository.NewResponseRepository(db)
}

func newSyncService(
	lc fx.Lifecycle,
	store localstore.Store,
	questions repository.QuestionRepository,
	responses repository.ResponseRepository,
) service.SyncService {
	svc := service.NewSyncService(store, questions, responses)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			svc.Init(ctx)
			return nil
		},
	})
	return svc
}

func newMonitor(cfg *config.Config) *connectivity.Monitor {
	var probe connectivity.ProbeFunc
	if cfg.Connectivity.ProbeAddr != "" {
		probe = connectivity.TCPProbe(cfg.Connectivity.ProbeAddr, cfg.Connectivity.Interval/2)
	} else {
		log.Info().Msg("CONNECTIVITY_PROBE_ADDR is not set. Connectivity is assumed to be up.")
	}
	return connectivity.NewMonitor(probe, cfg.Connectivity.Interval)
}

// startMonitor subscribes the service to connectivity transitions and runs
// the probe loop for the lifetime of the app.
func startMonitor(lc fx.Lifecycle, monitor *connectivity.Monitor, svc service.SyncService) {
	monitor.Subscribe(svc)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				monitor.Run(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
