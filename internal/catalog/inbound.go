package catalog

import (
	"net/url"
	"strconv"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/resource"
	"gorm.io/gorm"
)

var (
	MarkRead     = resource.SetFlag("mark_read", "is_read", true)
	MarkUnread   = resource.SetFlag("mark_unread", "is_read", false)
	MarkReviewed = resource.SetFlag("mark_reviewed", "is_reviewed", true)
)

func Applications() resource.Definition[domain.JobApplication] {
	return resource.Definition[domain.JobApplication]{
		Name:             "applications",
		New:              domain.NewJobApplication,
		Ordering:         []string{"-created_at"},
		Filters:          []string{"career", "is_reviewed"},
		Search:           []string{"name", "email", "current_position"},
		ServerControlled: []string{"is_active", "is_reviewed"},
		ReadOnly:         []string{"career_title"},
		Preloads:         []string{"Career"},
		References:       []resource.Reference{{Field: "career", Model: &domain.Career{}}},
		Queries: []resource.NamedQuery{
			{Name: "by_career", Access: resource.Staff, Params: []string{"career_id"}, Scope: byCareerScope},
		},
		Actions: actions(MarkReviewed),
		Access:  resource.InboundAccess(),
		Display: resource.Display{
			Label:      "Job Application",
			Plural:     "Job Applications",
			Icon:       "user-check",
			ListFields: []string{"name", "career_title", "email", "experience_years", "is_reviewed", "created_at"},
			Badges: []resource.Badge{
				{Field: "is_reviewed", Colors: map[string]string{"true": "green", "false": "orange"}},
			},
			Sections: []resource.Section{
				{Title: "Applicant", Fields: []string{"name", "email", "phone", "current_position", "experience_years"}},
				{Title: "Application", Fields: []string{"career", "cover_letter", "resume_url"}},
				{Title: "Review", Fields: []string{"is_reviewed", "is_active"}},
			},
		},
	}
}

func byCareerScope(db *gorm.DB, params url.Values) (*gorm.DB, error) {
	id, err := strconv.ParseUint(params.Get("career_id"), 10, 64)
	if err != nil {
		return nil, domain.FieldError("career_id", "A valid integer is required.")
	}
	return db.Where("career_id = ?", id), nil
}

func ContactMessages() resource.Definition[domain.ContactMessage] {
	return resource.Definition[domain.ContactMessage]{
		Name:             "contact",
		New:              domain.NewContactMessage,
		Ordering:         []string{"-created_at"},
		Filters:          []string{"is_read"},
		Search:           []string{"name", "email", "subject", "message"},
		ServerControlled: []string{"is_active", "is_read"},
		Queries: []resource.NamedQuery{
			{Name: "unread", Access: resource.Staff, Scope: unreadScope},
		},
		Actions: actions(MarkRead, MarkUnread),
		Access:  resource.InboundAccess(),
		Display: resource.Display{
			Label:      "Contact Message",
			Plural:     "Contact Messages",
			Icon:       "mail",
			ListFields: []string{"name", "email", "subject", "is_read", "created_at"},
			Badges: []resource.Badge{
				{Field: "is_read", Colors: map[string]string{"true": "gray", "false": "red"}},
			},
			Sections: []resource.Section{
				{Title: "Sender", Fields: []string{"name", "email", "phone"}},
				{Title: "Message", Fields: []string{"subject", "message"}},
				{Title: "Status", Fields: []string{"is_read"}},
			},
		},
	}
}

func unreadScope(db *gorm.DB, _ url.Values) (*gorm.DB, error) {
	return db.Where("is_read = ?", false), nil
}
