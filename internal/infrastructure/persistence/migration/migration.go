package migration

import (
	"context"
	"fmt"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"gorm.io/gorm"
)

// Models lists every persisted record type. Referenced tables come before
// the tables that reference them.
func Models() []any {
	return []any{
		&domain.Tender{},
		&domain.News{},
		&domain.Career{},
		&domain.JobApplication{},
		&domain.ContactMessage{},
		&domain.ProjectStat{},
		&domain.BoardMember{},
		&domain.SustainabilityStat{},
		&domain.Project{},
		&domain.Milestone{},
		&domain.CSRInitiative{},
	}
}

// Up creates missing tables and adds missing columns and indexes. It never
// drops anything.
func Up(ctx context.Context, database *gorm.DB, logger logging.Logger) error {
	database = database.WithContext(ctx)

	var created []string
	for _, model := range Models() {
		if !database.Migrator().HasTable(model) {
			created = append(created, fmt.Sprintf("%T", model))
		}
	}

	if err := database.AutoMigrate(Models()...); err != nil {
		logger.Error(logging.General, logging.Migration, "migration failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return fmt.Errorf("failed to migrate: %w", err)
	}

	logger.Info(logging.General, logging.Migration, "tables migrated", map[logging.ExtraKey]any{
		"Created": created,
	})
	return nil
}
