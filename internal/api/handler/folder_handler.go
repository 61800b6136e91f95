package handler

import (
	"encoding/json"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

// FolderHandler serves private folders; everything is scoped to the
// calling owner.
type FolderHandler struct {
	folderService *service.FolderService
}

func NewFolderHandler(folderService *service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

func (h *FolderHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Use(gate.RequireAuthenticated)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/since/{time}", h.listSince)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *FolderHandler) create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req service.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	folder, err := h.folderService.Add(r.Context(), ident, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, folder)
}

func (h *FolderHandler) list(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	folders, err := h.folderService.List(r.Context(), ident)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folders)
}

func (h *FolderHandler) listSince(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	since, err := sinceParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid time parameter")
		return
	}
	folders, err := h.folderService.ListSince(r.Context(), ident, since)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folders)
}

func (h *FolderHandler) get(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	folder, err := h.folderService.Get(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folder)
}

func (h *FolderHandler) update(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req service.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	folder, err := h.folderService.Update(r.Context(), ident, chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, folder)
}

func (h *FolderHandler) delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	if err := h.folderService.Delete(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{"status": "Folder removed"})
}
