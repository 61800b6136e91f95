package handler

import (
	"net/http"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type CardHandler struct {
	cardService *service.CardService
}

func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

func (h *CardHandler) RegisterRoutes(r chi.Router, gate *middleware.Auth) {
	r.Group(func(authed chi.Router) {
		authed.Use(gate.RequireAuthenticated)
		authed.Get("/", h.list)
		authed.Get("/since/{time}", h.listSince)
		authed.Get("/byModel/{id}", h.listByModel)
		authed.Get("/{id}", h.get)
	})
	r.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAdmin)
		admin.Delete("/{id}", h.delete)
	})
}

func (h *CardHandler) list(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	cards, err := h.cardService.List(r.Context(), ident)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, cards)
}

func (h *CardHandler) listSince(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	since, err := sinceParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid time parameter")
		return
	}
	cards, err := h.cardService.ListSince(r.Context(), ident, since)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, cards)
}

func (h *CardHandler) listByModel(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListByModel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, cards)
}

func (h *CardHandler) get(w http.ResponseWriter, r *http.Request) {
	card, err := h.cardService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, card)
}

func (h *CardHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.cardService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]string{"status": "Card removed"})
}
