package service

import (
	"context"
	"fmt"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CardService serves card instances and the catalog of card models they
// reference.
type CardService struct {
	cardRepo  repository.CardRepository
	modelRepo repository.CardModelRepository
}

func NewCardService(cardRepo repository.CardRepository, modelRepo repository.CardModelRepository) *CardService {
	return &CardService{cardRepo: cardRepo, modelRepo: modelRepo}
}

func (s *CardService) List(ctx context.Context, ident model.Identity) ([]model.Card, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.cardRepo.ListByUser(ctx, userID)
}

func (s *CardService) ListSince(ctx context.Context, ident model.Identity, since time.Time) ([]model.Card, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.cardRepo.ListByUserSince(ctx, userID, since)
}

func (s *CardService) Get(ctx context.Context, id string) (*model.Card, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid card id: %w", common.ErrBadRequest)
	}
	return s.cardRepo.FindByID(ctx, oid)
}

func (s *CardService) ListByModel(ctx context.Context, modelID string) ([]model.Card, error) {
	oid, err := bson.ObjectIDFromHex(modelID)
	if err != nil {
		return nil, fmt.Errorf("invalid card model id: %w", common.ErrBadRequest)
	}
	return s.cardRepo.ListByModel(ctx, oid)
}

func (s *CardService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid card id: %w", common.ErrBadRequest)
	}
	return s.cardRepo.Delete(ctx, oid)
}

type AddCardModelRequest struct {
	Name               string   `json:"name"`
	Damage             int      `json:"damage"`
	Element            string   `json:"element"`
	SecondaryElement   string   `json:"secondaryElement"`
	Description        string   `json:"description"`
	VerboseDescription string   `json:"verboseDescription"`
	Image              string   `json:"image"`
	Icon               string   `json:"icon"`
	Codes              []string `json:"codes"`
}

type UpdateCardModelRequest struct {
	Name               *string   `json:"name,omitempty"`
	Damage             *int      `json:"damage,omitempty"`
	Element            *string   `json:"element,omitempty"`
	SecondaryElement   *string   `json:"secondaryElement,omitempty"`
	Description        *string   `json:"description,omitempty"`
	VerboseDescription *string   `json:"verboseDescription,omitempty"`
	Image              *string   `json:"image,omitempty"`
	Icon               *string   `json:"icon,omitempty"`
	Codes              *[]string `json:"codes,omitempty"`
}

func (s *CardService) AddModel(ctx context.Context, req AddCardModelRequest) (*model.CardModel, error) {
	if req.Name == "" || req.Element == "" || req.Description == "" {
		return nil, fmt.Errorf("name, element and description are required: %w", common.ErrBadRequest)
	}
	cm := &model.CardModel{
		Name:               req.Name,
		Damage:             req.Damage,
		Element:            req.Element,
		SecondaryElement:   req.SecondaryElement,
		Description:        req.Description,
		VerboseDescription: req.VerboseDescription,
		Image:              req.Image,
		Icon:               req.Icon,
		Codes:              req.Codes,
	}
	if cm.SecondaryElement == "" {
		cm.SecondaryElement = "None"
	}
	if len(cm.Codes) == 0 {
		cm.Codes = []string{"*"}
	}
	if err := s.modelRepo.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *CardService) GetModel(ctx context.Context, id string) (*model.CardModel, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid card model id: %w", common.ErrBadRequest)
	}
	return s.modelRepo.FindByID(ctx, oid)
}

func (s *CardService) ListModelsSince(ctx context.Context, since time.Time) ([]model.CardModel, error) {
	return s.modelRepo.ListSince(ctx, since)
}

func (s *CardService) UpdateModel(ctx context.Context, id string, req UpdateCardModelRequest) (*model.CardModel, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid card model id: %w", common.ErrBadRequest)
	}
	cm, err := s.modelRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cm.Name = *req.Name
	}
	if req.Damage != nil {
		cm.Damage = *req.Damage
	}
	if req.Element != nil {
		cm.Element = *req.Element
	}
	if req.SecondaryElement != nil {
		cm.SecondaryElement = *req.SecondaryElement
	}
	if req.Description != nil {
		cm.Description = *req.Description
	}
	if req.VerboseDescription != nil {
		cm.VerboseDescription = *req.VerboseDescription
	}
	if req.Image != nil {
		cm.Image = *req.Image
	}
	if req.Icon != nil {
		cm.Icon = *req.Icon
	}
	if req.Codes != nil {
		cm.Codes = *req.Codes
	}

	if err := s.modelRepo.Update(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *CardService) DeleteModel(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid card model id: %w", common.ErrBadRequest)
	}
	return s.modelRepo.Delete(ctx, oid)
}
