package auth

import (
	"errors"
	"net/http"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/auth"
	"github.com/hilthontt/powersite/internal/infrastructure/json"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"github.com/hilthontt/powersite/internal/infrastructure/validate"
	"github.com/hilthontt/powersite/internal/presentation/handler/respond"
)

type Handler struct {
	authenticator *auth.Authenticator
	respond       *respond.Responder
	logger        logging.Logger
}

func NewHandler(authenticator *auth.Authenticator, responder *respond.Responder, logger logging.Logger) *Handler {
	return &Handler{authenticator: authenticator, respond: responder, logger: logger}
}

// CreateToken godoc
// @Summary      Obtain a staff token
// @Description  Exchanges staff credentials for a bearer token used on privileged operations
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body tokenRequest true "Credentials"
// @Success      200 {object} auth.Token
// @Failure      400 {object} json.ErrorResponse "Missing fields"
// @Failure      401 {object} json.ErrorResponse "Wrong username or password"
// @Router       /auth/token [post]
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.Read(w, r, &req); err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	if err := validate.Default().Struct(req); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	token, err := h.authenticator.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Warn(logging.Auth, logging.Login, "login rejected", map[logging.ExtraKey]any{
			logging.Subject:  req.Username,
			logging.ClientIp: r.RemoteAddr,
		})
		json.WriteUnauthorizedError(w, "No active account found with the given credentials.")
		return
	}
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	h.logger.Info(logging.Auth, logging.Login, "staff logged in", map[logging.ExtraKey]any{
		logging.Subject: req.Username,
	})
	json.Write(w, http.StatusOK, token)
}

// Me godoc
// @Summary      Describe the current caller
// @Tags         auth
// @Produce      json
// @Success      200 {object} meResponse
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller := domain.CallerFrom(r.Context())
	json.Write(w, http.StatusOK, meResponse{
		Subject:       caller.Subject,
		Authenticated: caller.Subject != "",
		Staff:         caller.Privileged,
	})
}
