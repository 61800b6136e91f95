package handler

import (
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

// SettingsHandler exposes the read-only gameplay preferences clients ask
// for before enforcing limits locally.
type SettingsHandler struct {
	preferences map[string]any
}

func NewSettingsHandler(preferences map[string]any) *SettingsHandler {
	return &SettingsHandler{preferences: preferences}
}

func (h *SettingsHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Use(gate.RequireAuthenticated)
	r.Get("/{key}", h.get)
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, ok := h.preferences[key]
	if !ok {
		common.RespondWithError(w, http.StatusNotFound, "Unknown setting")
		return
	}
	common.RespondWithData(w, http.StatusOK, value)
}
