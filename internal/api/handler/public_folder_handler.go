package handler

import (
	"encoding/json"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type PublicFolderHandler struct {
	folderService *service.FolderService
}

func NewPublicFolderHandler(folderService *service.FolderService) *PublicFolderHandler {
	return &PublicFolderHandler{folderService: folderService}
}

func (h *PublicFolderHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
		authed.Get("/", h.list)
		authed.Post("/", h.create)
		authed.Get("/since/{time}", h.listSince)
		authed.Get("/{id}", h.get)
	})
	r.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAdmin)
		admin.Delete("/{id}", h.delete)
	})
}

func (h *PublicFolderHandler) create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req service.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	folder, err := h.folderService.AddPublic(r.Context(), ident, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, folder)
}

func (h *PublicFolderHandler) list(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderService.ListPublic(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folders)
}

func (h *PublicFolderHandler) listSince(w http.ResponseWriter, r *http.Request) {
	since, err := sinceParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid time parameter")
		return
	}
	folders, err := h.folderService.ListPublicSince(r.Context(), since)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folders)
}

func (h *PublicFolderHandler) get(w http.ResponseWriter, r *http.Request) {
	folder, err := h.folderService.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folder)
}

func (h *PublicFolderHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.folderService.DeletePublic(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{"status": "Public folder removed"})
}
