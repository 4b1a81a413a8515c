package catalog

import (
	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/resource"
)

func ProjectStats() resource.Definition[domain.ProjectStat] {
	return resource.Definition[domain.ProjectStat]{
		Name:     "stats",
		New:      domain.NewProjectStat,
		Ordering: []string{"order"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Project Stat",
			Plural:     "Project Stats",
			Icon:       "bar-chart",
			ListFields: []string{"label", "value", "suffix", "icon", "order", "is_active"},
			Badges:     []resource.Badge{activeBadge},
		},
	}
}

func BoardMembers() resource.Definition[domain.BoardMember] {
	return resource.Definition[domain.BoardMember]{
		Name:     "board",
		New:      domain.NewBoardMember,
		Ordering: []string{"order"},
		Filters:  []string{"is_chairman"},
		Search:   []string{"name", "title"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Board Member",
			Plural:     "Board Members",
			Icon:       "users",
			ListFields: []string{"name", "title", "is_chairman", "order", "is_active"},
			Badges: []resource.Badge{
				activeBadge,
				{Field: "is_chairman", Colors: map[string]string{"true": "gold"}},
			},
			Sections: []resource.Section{
				{Title: "Member", Fields: []string{"name", "title", "is_chairman", "order"}},
				{Title: "Profile", Fields: []string{"bio", "image_url"}, Collapsed: true},
			},
		},
	}
}

func SustainabilityStats() resource.Definition[domain.SustainabilityStat] {
	return resource.Definition[domain.SustainabilityStat]{
		Name:     "sustainability",
		New:      domain.NewSustainabilityStat,
		Ordering: []string{"order"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Sustainability Stat",
			Plural:     "Sustainability Stats",
			Icon:       "leaf",
			ListFields: []string{"label", "value", "trend", "order", "is_active"},
			Badges:     []resource.Badge{activeBadge},
		},
	}
}

func Milestones() resource.Definition[domain.Milestone] {
	return resource.Definition[domain.Milestone]{
		Name:     "milestones",
		New:      domain.NewMilestone,
		Ordering: []string{"order", "year"},
		Filters:  []string{"year"},
		Search:   []string{"title", "description"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Milestone",
			Plural:     "Milestones",
			Icon:       "flag",
			ListFields: []string{"year", "title", "order", "is_active"},
			Badges:     []resource.Badge{activeBadge},
		},
	}
}
