// Package catalog declares every record type the site serves.
package catalog

import (
	"fmt"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/resource"
	"gorm.io/gorm"
)

// Build creates an engine for every record type and registers it in the
// order the admin console lists them.
func Build(db *gorm.DB, opts ...resource.Option) (*resource.Registry, error) {
	reg := resource.NewRegistry()

	steps := []func() error{
		func() error { return register(reg, db, Tenders(), opts) },
		func() error { return register(reg, db, News(), opts) },
		func() error { return register(reg, db, Careers(), opts) },
		func() error { return register(reg, db, Applications(), opts) },
		func() error { return register(reg, db, ContactMessages(), opts) },
		func() error { return register(reg, db, ProjectStats(), opts) },
		func() error { return register(reg, db, BoardMembers(), opts) },
		func() error { return register(reg, db, SustainabilityStats(), opts) },
		func() error { return register(reg, db, Projects(), opts) },
		func() error { return register(reg, db, Milestones(), opts) },
		func() error { return register(reg, db, CSRInitiatives(), opts) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func register[T any, PT interface {
	*T
	domain.Record
}](reg *resource.Registry, db *gorm.DB, def resource.Definition[T], opts []resource.Option) error {
	engine, err := resource.New[T, PT](db, def, opts...)
	if err != nil {
		return fmt.Errorf("failed to build %s engine: %w", def.Name, err)
	}
	return reg.Register(engine.Erase())
}

// actions returns activate and deactivate, then extra, then delete.
func actions(extra ...resource.Action) []resource.Action {
	out := []resource.Action{resource.Activate, resource.Deactivate}
	out = append(out, extra...)
	return append(out, resource.Remove)
}

var activeBadge = resource.Badge{
	Field:  "is_active",
	Colors: map[string]string{"true": "green", "false": "gray"},
}
