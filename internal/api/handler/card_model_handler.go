package handler

import (
	"encoding/json"
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

// CardModelHandler serves the card catalog under /card-properties, the
// path the game clients already use.
type CardModelHandler struct {
	cardService *service.CardService
}

func NewCardModelHandler(cardService *service.CardService) *CardModelHandler {
	return &CardModelHandler{cardService: cardService}
}

func (h *CardModelHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
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

func (h *CardModelHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.AddCardModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	cm, err := h.cardService.AddModel(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, cm)
}

func (h *CardModelHandler) get(w http.ResponseWriter, r *http.Request) {
	cm, err := h.cardService.GetModel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, cm)
}

func (h *CardModelHandler) listSince(w http.ResponseWriter, r *http.Request) {
	since, err := sinceParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid time parameter")
		return
	}
	models, err := h.cardService.ListModelsSince(r.Context(), since)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, models)
}

func (h *CardModelHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCardModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	cm, err := h.cardService.UpdateModel(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, cm)
}

func (h *CardModelHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.cardService.DeleteModel(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{"status": "Card model removed"})
}
