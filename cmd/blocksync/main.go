package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tradeblocks/blocksync/internal/adapter"
	"github.com/tradeblocks/blocksync/internal/config"
	"github.com/tradeblocks/blocksync/internal/logger"
	"github.com/tradeblocks/blocksync/internal/parser"
	"github.com/tradeblocks/blocksync/internal/store"
	"github.com/tradeblocks/blocksync/internal/syncer"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	sourceID   = flag.String("source", "", "Sync a single source instead of everything")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "blocksync",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	filesystem := adapter.NewFileSystem()
	coordinator := syncer.NewCoordinator(
		syncer.Config{
			BaseDir:               cfg.Sync.BaseDir,
			WorkerPoolSize:        cfg.Sync.WorkerPoolSize,
			ConflictRetryInterval: cfg.Sync.ConflictRetryInterval,
		},
		store.NewPGStore(db),
		parser.NewCSVParser(filesystem),
		filesystem,
		adapter.NewClock(),
	)

	if *sourceID != "" {
		outcome := coordinator.SyncOne(ctx, *sourceID)
		if outcome.Err != nil {
			logger.ErrorCtx(ctx, outcome.Err, zap.String("source", *sourceID))
			os.Exit(1)
		}
		logger.InfoCtx(ctx, "source synced",
			zap.String("source", *sourceID),
			zap.String("status", string(outcome.Status)),
			zap.Int("records", outcome.RecordCount),
		)
		return
	}

	report, err := coordinator.SyncAll(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		os.Exit(1)
	}
	if len(report.Errors) > 0 {
		for _, srcErr := range report.Errors {
			logger.WarnCtx(ctx, "source failed to sync",
				zap.String("source", srcErr.SourceID),
				zap.String("kind", string(srcErr.Kind)),
				zap.String("message", srcErr.Message),
			)
		}
		os.Exit(1)
	}
}
