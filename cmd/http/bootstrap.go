package main

import (
	"context"
	"fmt"

	"github.com/hilthontt/powersite/internal/infrastructure/configs"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/db"
	"gorm.io/gorm"
)

// runtimeDeps is what every subcommand needs before doing its own work.
type runtimeDeps struct {
	cfg    *configs.Config
	logger logging.Logger
	db     *gorm.DB
}

func bootstrap(ctx context.Context) (*runtimeDeps, error) {
	cfg, err := configs.Load(configs.DetermineConfigPath(configFlag))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerCfg := logging.LoggerConfig(cfg.Logger)
	logger := logging.NewLogger(&loggerCfg)

	database, err := db.Open(ctx, &cfg.Database, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &runtimeDeps{cfg: cfg, logger: logger, db: database}, nil
}

func (d *runtimeDeps) close() {
	if err := db.Close(d.db); err != nil {
		d.logger.Error(logging.General, logging.Shutdown, "failed to close database", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
	_ = d.logger.Sync()
}
