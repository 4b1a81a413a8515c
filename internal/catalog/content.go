package catalog

import (
	"net/url"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/resource"
	"gorm.io/gorm"
)

var (
	Feature   = resource.SetFlag("feature", "is_featured", true)
	Unfeature = resource.SetFlag("unfeature", "is_featured", false)
)

func featuredScope(db *gorm.DB, _ url.Values) (*gorm.DB, error) {
	return db.Where("is_active = ? AND is_featured = ?", true, true), nil
}

func Tenders() resource.Definition[domain.Tender] {
	return resource.Definition[domain.Tender]{
		Name:     "tenders",
		New:      domain.NewTender,
		Ordering: []string{"-deadline"},
		Unique:   []string{"reference_number"},
		Filters:  []string{"category"},
		Search:   []string{"title", "reference_number", "description"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Tender",
			Plural:     "Tenders",
			Icon:       "file-text",
			ListFields: []string{"reference_number", "title", "category", "deadline", "is_active"},
			Badges: []resource.Badge{
				activeBadge,
				{Field: "category", Colors: map[string]string{
					domain.TenderCategoryGoods:       "blue",
					domain.TenderCategoryWorks:       "orange",
					domain.TenderCategoryServices:    "green",
					domain.TenderCategoryConsultancy: "purple",
				}},
			},
			Sections: []resource.Section{
				{Title: "Tender Information", Fields: []string{"title", "reference_number", "category"}},
				{Title: "Details", Fields: []string{"description", "deadline", "document_url"}},
				{Title: "Status", Fields: []string{"is_active"}},
			},
		},
	}
}

func News() resource.Definition[domain.News] {
	return resource.Definition[domain.News]{
		Name:     "news",
		New:      domain.NewNews,
		Ordering: []string{"-created_at"},
		Filters:  []string{"is_featured"},
		Search:   []string{"title", "content", "summary"},
		Queries: []resource.NamedQuery{
			{Name: "featured", Scope: featuredScope, Ordering: []string{"-created_at"}, Limit: 5},
		},
		Actions: actions(Feature, Unfeature),
		Access:  resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "News",
			Plural:     "News",
			Icon:       "newspaper",
			ListFields: []string{"title", "is_featured", "created_at", "is_active"},
			Badges: []resource.Badge{
				activeBadge,
				{Field: "is_featured", Colors: map[string]string{"true": "gold", "false": "gray"}},
			},
			Sections: []resource.Section{
				{Title: "Content", Fields: []string{"title", "summary", "content"}},
				{Title: "Media", Fields: []string{"image_url"}},
				{Title: "Settings", Fields: []string{"is_featured", "is_active"}},
			},
		},
	}
}

func Careers() resource.Definition[domain.Career] {
	return resource.Definition[domain.Career]{
		Name:     "careers",
		New:      domain.NewCareer,
		Ordering: []string{"-created_at"},
		Filters:  []string{"department", "job_type"},
		Search:   []string{"title", "description", "requirements"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Career",
			Plural:     "Careers",
			Icon:       "briefcase",
			ListFields: []string{"title", "department", "job_type", "deadline", "vacancies", "is_active"},
			Badges: []resource.Badge{
				activeBadge,
				{Field: "job_type", Colors: map[string]string{
					domain.JobTypeFullTime:   "green",
					domain.JobTypePartTime:   "blue",
					domain.JobTypeContract:   "orange",
					domain.JobTypeInternship: "purple",
				}},
			},
			Sections: []resource.Section{
				{Title: "Position", Fields: []string{"title", "department", "location", "job_type", "vacancies", "deadline"}},
				{Title: "Description", Fields: []string{"description", "requirements"}},
				{Title: "Status", Fields: []string{"is_active"}},
			},
		},
	}
}

func Projects() resource.Definition[domain.Project] {
	return resource.Definition[domain.Project]{
		Name:     "projects",
		New:      domain.NewProject,
		Ordering: []string{"-created_at"},
		Filters:  []string{"status", "category", "is_featured"},
		Search:   []string{"name", "location", "description"},
		Queries: []resource.NamedQuery{
			{Name: "featured", Scope: featuredScope},
		},
		Actions: actions(Feature, Unfeature),
		Access:  resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "Project",
			Plural:     "Projects",
			Icon:       "zap",
			ListFields: []string{"name", "location", "capacity", "status", "category", "is_featured", "is_active"},
			Badges: []resource.Badge{
				activeBadge,
				{Field: "status", Colors: map[string]string{
					domain.ProjectStatusOperational:  "green",
					domain.ProjectStatusConstruction: "orange",
					domain.ProjectStatusPlanning:     "blue",
					domain.ProjectStatusMaintenance:  "red",
				}},
			},
			Sections: []resource.Section{
				{Title: "Project", Fields: []string{"name", "location", "category", "status"}},
				{Title: "Details", Fields: []string{"description", "capacity", "efficiency", "image_url"}},
				{Title: "Settings", Fields: []string{"is_featured", "is_active"}},
			},
		},
	}
}

func CSRInitiatives() resource.Definition[domain.CSRInitiative] {
	return resource.Definition[domain.CSRInitiative]{
		Name:     "csr",
		New:      domain.NewCSRInitiative,
		Ordering: []string{"-created_at"},
		Filters:  []string{"category"},
		Search:   []string{"title", "description"},
		Actions:  actions(),
		Access:   resource.CuratedAccess(),
		Display: resource.Display{
			Label:      "CSR Initiative",
			Plural:     "CSR Initiatives",
			Icon:       "heart",
			ListFields: []string{"title", "category", "impact_metric", "is_active"},
			Badges:     []resource.Badge{activeBadge},
			Sections: []resource.Section{
				{Title: "Initiative", Fields: []string{"title", "category", "description"}},
				{Title: "Impact", Fields: []string{"impact_metric", "image_url"}, Collapsed: true},
				{Title: "Status", Fields: []string{"is_active"}},
			},
		},
	}
}
