// Package seed replaces the site's content with a representative data set
// for local development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"gorm.io/gorm"
)

// Summary counts the records created per table.
type Summary map[string]int

// Run clears the curated tables and inserts the sample content in one
// transaction. Inbound submissions are left alone unless clearInbound is set.
func Run(ctx context.Context, db *gorm.DB, logger logging.Logger, now time.Time, clearInbound bool) (Summary, error) {
	now = now.UTC().Truncate(time.Microsecond)
	summary := Summary{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tables := []any{
			&domain.Tender{}, &domain.News{}, &domain.ProjectStat{}, &domain.BoardMember{},
			&domain.Project{}, &domain.Milestone{}, &domain.SustainabilityStat{}, &domain.CSRInitiative{},
		}
		if clearInbound {
			tables = append(tables, &domain.JobApplication{}, &domain.ContactMessage{})
		}
		// Careers go last: applications reference them.
		tables = append(tables, &domain.Career{})

		for _, model := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		steps := []struct {
			name    string
			records func(time.Time) []any
		}{
			{"stats", projectStats},
			{"board", boardMembers},
			{"projects", projects},
			{"milestones", milestones},
			{"sustainability", sustainabilityStats},
			{"csr", csrInitiatives},
			{"tenders", tenders},
			{"news", news},
			{"careers", careers},
		}

		for _, step := range steps {
			records := step.records(now)
			for _, rec := range records {
				rec.(domain.Record).RecordBase().Stamp(now)
				if err := tx.Create(rec).Error; err != nil {
					return fmt.Errorf("failed to seed %s: %w", step.name, err)
				}
			}
			summary[step.name] = len(records)
		}
		return nil
	})
	if err != nil {
		logger.Error(logging.General, logging.Seed, "seeding failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return nil, err
	}

	for name, n := range summary {
		logger.Info(logging.General, logging.Seed, "seeded records", map[logging.ExtraKey]any{
			logging.ResourceName: name,
			logging.RowsAffected: n,
		})
	}
	return summary, nil
}

func ptr[T any](v T) *T {
	return &v
}
