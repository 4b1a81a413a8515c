// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/hilthontt/powersite/internal/infrastructure/configs"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/db"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/migration"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Logger discards everything.
func Logger() logging.Logger {
	return logging.NewZap(zap.NewNop())
}

// Open returns a migrated in-memory SQLite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := db.Open(context.Background(), &configs.DatabaseConfig{SqlitePath: "file::memory:"}, Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	require.NoError(t, migration.Up(context.Background(), database, Logger()))
	return database
}
