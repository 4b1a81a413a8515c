package resource

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/json"
	"github.com/hilthontt/powersite/internal/infrastructure/metrics"
	"github.com/hilthontt/powersite/internal/presentation/handler/respond"
	"github.com/hilthontt/powersite/internal/resource"
)

type Handler struct {
	respond *respond.Responder
	metrics *metrics.Metrics
}

func NewHandler(responder *respond.Responder, m *metrics.Metrics) *Handler {
	return &Handler{respond: responder, metrics: m}
}

// Routes serves one resource under the path it is mounted at.
func (h *Handler) Routes(res resource.Resource) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List(res))
	r.Post("/", h.Create(res))
	r.Post("/bulk/{action}", h.BulkAction(res))
	r.Get("/{key}", h.GetOrQuery(res))
	r.Put("/{key}", h.Update(res))
	r.Patch("/{key}", h.Update(res))
	r.Delete("/{key}", h.Delete(res))
	r.Post("/{key}/{action}", h.PointAction(res))

	return r
}

// List godoc
// @Summary      List records
// @Description  Returns one page of records. Anonymous callers only see active records.
// @Tags         resources
// @Produce      json
// @Param        page      query int    false "Page number"
// @Param        ordering  query string false "Comma separated fields, '-' for descending"
// @Param        search    query string false "Case-insensitive search term"
// @Success      200 {object} listResponse
// @Failure      400 {object} json.ErrorResponse "Unknown filter or ordering"
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse "Invalid page"
// @Router       /{resource}/ [get]
func (h *Handler) List(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := resource.ParseQuery(r.URL.Query())
		if err != nil {
			h.fail(w, r, res, "list", err)
			return
		}

		page, err := res.List(r.Context(), domain.CallerFrom(r.Context()), q)
		if err != nil {
			h.fail(w, r, res, "list", err)
			return
		}
		h.observe(res, "list", nil)

		resp := listResponse{Count: page.Count, Results: page.Results}
		if page.HasNext() {
			next := pageURL(r, page.Number+1)
			resp.Next = &next
		}
		if page.HasPrevious() {
			prev := pageURL(r, page.Number-1)
			resp.Previous = &prev
		}

		json.Write(w, http.StatusOK, resp)
	}
}

// Create godoc
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      403 {object} json.ErrorResponse
// @Failure      409 {object} json.ErrorResponse "Unique field already taken"
// @Router       /{resource}/ [post]
func (h *Handler) Create(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := json.ReadRaw(w, r)
		if err != nil {
			json.WriteBadRequestError(w, err.Error())
			return
		}

		rec, err := res.Create(r.Context(), domain.CallerFrom(r.Context()), body)
		if err != nil {
			h.fail(w, r, res, "create", err)
			return
		}
		h.observe(res, "create", nil)

		json.Write(w, http.StatusCreated, rec)
	}
}

// GetOrQuery godoc
// @Summary      Get a record or run a named query
// @Description  A numeric key fetches that record; any other key runs the named query (e.g. featured).
// @Tags         resources
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse
// @Router       /{resource}/{key}/ [get]
func (h *Handler) GetOrQuery(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		caller := domain.CallerFrom(r.Context())

		id, isID := parseID(key)
		if !isID {
			results, err := res.NamedQuery(r.Context(), caller, key, r.URL.Query())
			if err != nil {
				h.fail(w, r, res, "query", err)
				return
			}
			h.observe(res, "query", nil)
			json.Write(w, http.StatusOK, results)
			return
		}

		rec, err := res.Get(r.Context(), caller, id)
		if err != nil {
			h.fail(w, r, res, "retrieve", err)
			return
		}
		h.observe(res, "retrieve", nil)

		json.Write(w, http.StatusOK, rec)
	}
}

// Update godoc
// @Summary      Update a record
// @Description  PUT and PATCH both change only the supplied fields.
// @Tags         resources
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} json.ErrorResponse
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse
// @Failure      409 {object} json.ErrorResponse
// @Router       /{resource}/{id}/ [patch]
func (h *Handler) Update(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "key"))
		if !ok {
			h.fail(w, r, res, "update", &domain.NotFoundError{Resource: res.Name()})
			return
		}

		body, err := json.ReadRaw(w, r)
		if err != nil {
			json.WriteBadRequestError(w, err.Error())
			return
		}

		rec, err := res.Update(r.Context(), domain.CallerFrom(r.Context()), id, body)
		if err != nil {
			h.fail(w, r, res, "update", err)
			return
		}
		h.observe(res, "update", nil)

		json.Write(w, http.StatusOK, rec)
	}
}

// Delete godoc
// @Summary      Delete a record
// @Tags         resources
// @Success      204
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse
// @Router       /{resource}/{id}/ [delete]
func (h *Handler) Delete(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "key"))
		if !ok {
			h.fail(w, r, res, "destroy", &domain.NotFoundError{Resource: res.Name()})
			return
		}

		if err := res.Delete(r.Context(), domain.CallerFrom(r.Context()), id); err != nil {
			h.fail(w, r, res, "destroy", err)
			return
		}
		h.observe(res, "destroy", nil)

		w.WriteHeader(http.StatusNoContent)
	}
}

// PointAction godoc
// @Summary      Apply an action to one record
// @Description  e.g. mark_read, mark_reviewed, activate, deactivate
// @Tags         resources
// @Produce      json
// @Success      200 {object} actionResponse
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse
// @Router       /{resource}/{id}/{action}/ [post]
func (h *Handler) PointAction(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := chi.URLParam(r, "action")

		id, ok := parseID(chi.URLParam(r, "key"))
		if !ok {
			h.fail(w, r, res, "action", &domain.NotFoundError{Resource: res.Name()})
			return
		}

		count, err := res.BulkAction(r.Context(), domain.CallerFrom(r.Context()), action, []uint{id})
		if err == nil && count == 0 {
			err = &domain.NotFoundError{Resource: res.Name()}
		}
		if err != nil {
			h.fail(w, r, res, "action", err)
			return
		}
		h.observe(res, "action", nil)
		h.metrics.ObserveBulkAction(res.Name(), action, count)

		json.Write(w, http.StatusOK, actionResponse{Status: "ok", Action: action, Count: count})
	}
}

// BulkAction godoc
// @Summary      Apply an action to many records atomically
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        request body bulkActionRequest true "Record ids"
// @Success      200 {object} actionResponse
// @Failure      400 {object} json.ErrorResponse
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse "Unknown action"
// @Router       /{resource}/bulk/{action}/ [post]
func (h *Handler) BulkAction(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := chi.URLParam(r, "action")

		var req bulkActionRequest
		if err := json.Read(w, r, &req); err != nil {
			h.fail(w, r, res, "action", domain.FieldError("ids", "Expected a list of integer ids."))
			return
		}

		count, err := res.BulkAction(r.Context(), domain.CallerFrom(r.Context()), action, req.IDs)
		if err != nil {
			h.fail(w, r, res, "action", err)
			return
		}
		h.observe(res, "action", nil)
		h.metrics.ObserveBulkAction(res.Name(), action, count)

		json.Write(w, http.StatusOK, actionResponse{Status: "ok", Action: action, Count: count})
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, res resource.Resource, op string, err error) {
	h.observe(res, op, err)
	h.respond.Error(w, r, err)
}

func (h *Handler) observe(res resource.Resource, op string, err error) {
	h.metrics.ObserveOperation(res.Name(), op, respond.Outcome(err))
}

func parseID(key string) (uint, bool) {
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageURL rebuilds the request URL pointing at another page. Page one is
// expressed by dropping the parameter.
func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
