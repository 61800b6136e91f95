package handler

import (
	"encoding/json"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type ComboHandler struct {
	comboService *service.ComboService
}

func NewComboHandler(comboService *service.ComboService) *ComboHandler {
	return &ComboHandler{comboService: comboService}
}

func (h *ComboHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
		authed.Get("/", h.list)
		authed.Get("/since/{time}", h.listSince)
		authed.Get("/{id}", h.get)
	})
	r.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAdmin)
		admin.Post("/", h.create)
		admin.Put("/{id}", h.update)
		admin.Delete("/{id}", h.delete)
	})
}

func (h *ComboHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.AddComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	combo, err := h.comboService.Add(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, combo)
}

func (h *ComboHandler) list(w http.ResponseWriter, r *http.Request) {
	combos, err := h.comboService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, combos)
}

func (h *ComboHandler) listSince(w http.ResponseWriter, r *http.Request) {
	since, err := sinceParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid time parameter")
		return
	}
	combos, err := h.comboService.ListSince(r.Context(), since)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, combos)
}

func (h *ComboHandler) get(w http.ResponseWriter, r *http.Request) {
	combo, err := h.comboService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, combo)
}

func (h *ComboHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	combo, err := h.comboService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, combo)
}

func (h *ComboHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.comboService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{"status": "Combo removed"})
}
