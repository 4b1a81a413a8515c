package dashboard

import (
	"time"

	"github.com/hilthontt/powersite/internal/resource"
)

type resourceCount struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Icon   string `json:"icon,omitempty"`
	Total  int64  `json:"total"`
	Active int64  `json:"active"`
}

type dashboardResponse struct {
	Resources           []resourceCount `json:"resources"`
	UnreadMessages      int64           `json:"unread_messages"`
	PendingApplications int64           `json:"pending_applications"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

type descriptorsResponse struct {
	Resources []resource.Descriptor `json:"resources"`
}
