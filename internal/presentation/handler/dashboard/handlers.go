package dashboard

import (
	"net/http"
	"time"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/json"
	"github.com/hilthontt/powersite/internal/presentation/handler/respond"
	"github.com/hilthontt/powersite/internal/resource"
)

const (
	contactResource      = "contact"
	applicationsResource = "applications"
)

type Handler struct {
	registry *resource.Registry
	respond  *respond.Responder
	now      func() time.Time
}

func NewHandler(registry *resource.Registry, responder *respond.Responder) *Handler {
	return &Handler{registry: registry, respond: responder, now: time.Now}
}

// GetDashboard godoc
// @Summary      Admin landing page counts
// @Description  Totals and active counts per resource plus unread messages and pending applications, computed on every request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dashboardResponse
// @Failure      401 {object} json.ErrorResponse
// @Failure      403 {object} json.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r, h.respond, "dashboard") {
		return
	}

	ctx := r.Context()
	resp := dashboardResponse{GeneratedAt: h.now().UTC()}

	for _, res := range h.registry.All() {
		total, err := res.Count(ctx, nil)
		if err != nil {
			h.respond.Error(w, r, err)
			return
		}
		active, err := res.Count(ctx, map[string]any{"is_active": true})
		if err != nil {
			h.respond.Error(w, r, err)
			return
		}

		d := res.Descriptor()
		resp.Resources = append(resp.Resources, resourceCount{
			Name:   res.Name(),
			Label:  d.Display.Plural,
			Icon:   d.Display.Icon,
			Total:  total,
			Active: active,
		})
	}

	var err error
	if resp.UnreadMessages, err = h.countWhere(r, contactResource, "is_read"); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	if resp.PendingApplications, err = h.countWhere(r, applicationsResource, "is_reviewed"); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, resp)
}

// ListDescriptors godoc
// @Summary      Admin display descriptors
// @Description  Labels, list columns, badges, form sections, filters and actions for every resource
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} descriptorsResponse
// @Failure      401 {object} json.ErrorResponse
// @Failure      403 {object} json.ErrorResponse
// @Router       /admin/resources [get]
func (h *Handler) ListDescriptors(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r, h.respond, "resources") {
		return
	}

	all := h.registry.All()
	resp := descriptorsResponse{Resources: make([]resource.Descriptor, 0, len(all))}
	for _, res := range all {
		resp.Resources = append(resp.Resources, res.Descriptor())
	}

	json.Write(w, http.StatusOK, resp)
}

// countWhere counts records of name whose flag is still false.
func (h *Handler) countWhere(r *http.Request, name, flag string) (int64, error) {
	res, ok := h.registry.Lookup(name)
	if !ok {
		return 0, nil
	}
	return res.Count(r.Context(), map[string]any{flag: false})
}

func requireStaff(w http.ResponseWriter, r *http.Request, responder *respond.Responder, what string) bool {
	caller := domain.CallerFrom(r.Context())
	if caller.Subject == "" {
		json.WriteUnauthorizedError(w, "Authentication credentials were not provided.")
		return false
	}
	if !caller.Privileged {
		responder.Error(w, r, &domain.PermissionError{Operation: "view", Resource: what})
		return false
	}
	return true
}
