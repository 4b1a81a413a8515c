package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hilthontt/powersite/internal/infrastructure/configs"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open connects to Postgres when a database URL is configured and falls back
// to a local SQLite file otherwise.
func Open(ctx context.Context, cfg *configs.DatabaseConfig, logger logging.Logger) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		category  logging.Category
	)

	if cfg.URL != "" {
		dialector = postgres.Open(cfg.URL)
		category = logging.Postgres
	} else {
		dialector = sqlite.Open(SqliteDSN(cfg.SqlitePath))
		category = logging.Sqlite
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger, category),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if category == logging.Sqlite {
		// A single writer avoids SQLITE_BUSY between concurrent transactions.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info(category, logging.Startup, "database connection established", nil)
	return database, nil
}

// SqliteDSN appends the pragmas every SQLite connection needs.
func SqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + sqlitePragmas
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the connection is usable, for readiness probes.
func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
