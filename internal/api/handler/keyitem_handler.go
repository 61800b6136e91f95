package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type KeyItemHandler struct {
	itemService *service.KeyItemService
}

func NewKeyItemHandler(itemService *service.KeyItemService) *KeyItemHandler {
	return &KeyItemHandler{itemService: itemService}
}

func (h *KeyItemHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
		authed.Get("/", h.list)
		authed.Post("/", h.create)
		authed.Get("/owned", h.owned)
		authed.Get("/inspect/{jwt}", h.inspect)
		authed.Get("/{id}", h.get)
		authed.Put("/{id}", h.update)
		authed.Delete("/{id}", h.delete)
	})
	r.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAdmin)
		admin.Get("/since/{time}", h.listSince)
	})
}

func (h *KeyItemHandler) create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req service.KeyItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	item, err := h.itemService.Add(r.Context(), ident, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, item)
}

func (h *KeyItemHandler) list(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.itemService.List(r.Context(), ident)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, items)
}

func (h *KeyItemHandler) owned(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.itemService.Owned(r.Context(), ident)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, items)
}

// inspect answers with the item summaries of whoever the presented mask
// token vouches for.
func (h *KeyItemHandler) inspect(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.Inspect(r.Context(), chi.URLParam(r, "jwt"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, items)
}

func (h *KeyItemHandler) listSince(w http.ResponseWriter, r *http.Request) {
	since, err := sinceParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid time parameter")
		return
	}
	items, err := h.itemService.ListSince(r.Context(), since)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, items)
}

func (h *KeyItemHandler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, item)
}

func (h *KeyItemHandler) update(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req service.KeyItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	item, err := h.itemService.Update(r.Context(), ident, chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, item)
}

func (h *KeyItemHandler) delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	name, err := h.itemService.Delete(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{
		"status": fmt.Sprintf("Key item %q removed", name),
	})
}
