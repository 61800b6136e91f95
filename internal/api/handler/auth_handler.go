package handler

import (
	"encoding/json"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/platform/session"

	"github.com/go-chi/chi/v5"
)

// AuthHandler owns the login/logout pair, mask issuance and the password
// recovery endpoints.
type AuthHandler struct {
	sessions     *session.Store
	mask         *security.Mask
	resetService *service.ResetService
}

func NewAuthHandler(sessions *session.Store, mask *security.Mask, resetService *service.ResetService) *AuthHandler {
	return &AuthHandler{sessions: sessions, mask: mask, resetService: resetService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
		authed.Get("/login", h.login)
		authed.Get("/mask", h.issueMask)
	})
	r.Get("/logout", h.logout)
	r.Post("/reset-pass/{email}", h.requestReset)
	r.Post("/reset-pass/verify", h.verifyReset)
}

// login does no work of its own: the guard already verified credentials
// and, for regular users, persisted a session. It just echoes who you are.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status": "Login successful!",
		"user":   ident,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(r.Context(), w, r)
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "Logout successful!"})
}

func (h *AuthHandler) issueMask(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	// Admins have no user id to assert.
	if ident.UserID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "No user identity to mask")
		return
	}
	token, err := h.mask.Issue(ident.UserID)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	common.RespondWithData(w, http.StatusOK, token)
}

func (h *AuthHandler) requestReset(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := h.resetService.Request(r.Context(), email); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	// Same body for known and unknown addresses.
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "Recovery email sent!"})
}

type verifyResetRequest struct {
	UserID   string `json:"userId"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *AuthHandler) verifyReset(w http.ResponseWriter, r *http.Request) {
	var req verifyResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.resetService.Verify(r.Context(), req.UserID, req.Token, req.Password); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "Password updated!"})
}
