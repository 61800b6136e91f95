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

type ComboService struct {
	comboRepo repository.CardComboRepository
}

func NewComboService(comboRepo repository.CardComboRepository) *ComboService {
	return &ComboService{comboRepo: comboRepo}
}

type AddComboRequest struct {
	Name             string   `json:"name"`
	Damage           int      `json:"damage"`
	Element          string   `json:"element"`
	SecondaryElement string   `json:"secondaryElement"`
	Cards            []string `json:"cards"` // card model ids, in combo order
}

type UpdateComboRequest struct {
	Name             *string   `json:"name,omitempty"`
	Damage           *int      `json:"damage,omitempty"`
	Element          *string   `json:"element,omitempty"`
	SecondaryElement *string   `json:"secondaryElement,omitempty"`
	Cards            *[]string `json:"cards,omitempty"`
}

func (s *ComboService) Add(ctx context.Context, req AddComboRequest) (*model.CardCombo, error) {
	if req.Name == "" || len(req.Cards) < 2 {
		return nil, fmt.Errorf("a combo needs a name and at least two cards: %w", common.ErrBadRequest)
	}
	cardIDs, err := parseObjectIDs(req.Cards)
	if err != nil {
		return nil, fmt.Errorf("invalid card model id: %w", common.ErrBadRequest)
	}
	combo := &model.CardCombo{
		Name:             req.Name,
		Damage:           req.Damage,
		Element:          req.Element,
		SecondaryElement: req.SecondaryElement,
		Cards:            cardIDs,
	}
	if combo.SecondaryElement == "" {
		combo.SecondaryElement = "None"
	}
	if err := s.comboRepo.Create(ctx, combo); err != nil {
		return nil, err
	}
	return combo, nil
}

func (s *ComboService) Get(ctx context.Context, id string) (*model.CardCombo, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid combo id: %w", common.ErrBadRequest)
	}
	return s.comboRepo.FindByID(ctx, oid)
}

func (s *ComboService) List(ctx context.Context) ([]model.CardCombo, error) {
	return s.comboRepo.List(ctx)
}

func (s *ComboService) ListSince(ctx context.Context, since time.Time) ([]model.CardCombo, error) {
	return s.comboRepo.ListSince(ctx, since)
}

func (s *ComboService) Update(ctx context.Context, id string, req UpdateComboRequest) (*model.CardCombo, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid combo id: %w", common.ErrBadRequest)
	}
	combo, err := s.comboRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		combo.Name = *req.Name
	}
	if req.Damage != nil {
		combo.Damage = *req.Damage
	}
	if req.Element != nil {
		combo.Element = *req.Element
	}
	if req.SecondaryElement != nil {
		combo.SecondaryElement = *req.SecondaryElement
	}
	if req.Cards != nil {
		cardIDs, err := parseObjectIDs(*req.Cards)
		if err != nil {
			return nil, fmt.Errorf("invalid card model id: %w", common.ErrBadRequest)
		}
		combo.Cards = cardIDs
	}

	if err := s.comboRepo.Update(ctx, combo); err != nil {
		return nil, err
	}
	return combo, nil
}

func (s *ComboService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid combo id: %w", common.ErrBadRequest)
	}
	return s.comboRepo.Delete(ctx, oid)
}

func parseObjectIDs(hexes []string) ([]bson.ObjectID, error) {
	ids := make([]bson.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := bson.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
