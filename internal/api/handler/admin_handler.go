package handler

import (
	"encoding/json"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAdmin)
		admin.Post("/", h.create)
		admin.Get("/{id}", h.get)
		admin.Delete("/{id}", h.delete)
	})
	// PUT deliberately accepts any authenticated principal; the update is
	// limited to the password field.
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
		authed.Put("/{id}", h.update)
	})
}

func (h *AdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.AddAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	admin, err := h.adminService.Add(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, admin)
}

func (h *AdminHandler) get(w http.ResponseWriter, r *http.Request) {
	admin, err := h.adminService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, admin)
}

func (h *AdminHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	admin, err := h.adminService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, admin)
}

func (h *AdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{"status": "Admin removed"})
}
