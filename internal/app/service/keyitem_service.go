package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// KeyItemService manages key items. The creating user acts as a
// namespace: two creators may use the same item name, one creator may
// not.
type KeyItemService struct {
	itemRepo      repository.KeyItemRepository
	mask          *security.Mask
	maxNameLength int
}

func NewKeyItemService(itemRepo repository.KeyItemRepository, mask *security.Mask, maxNameLength int) *KeyItemService {
	return &KeyItemService{itemRepo: itemRepo, mask: mask, maxNameLength: maxNameLength}
}

type KeyItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owners      []string `json:"owners"`
	Servers     []string `json:"servers"`
}

func (s *KeyItemService) Add(ctx context.Context, ident model.Identity, req KeyItemRequest) (*model.KeyItem, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}

	name := truncate(req.Name, s.maxNameLength)
	if err := s.checkNameFree(ctx, userID, name); err != nil {
		return nil, err
	}

	owners, err := parseObjectIDs(req.Owners)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", common.ErrBadRequest)
	}

	item := &model.KeyItem{
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Owners:      owners,
		Servers:     req.Servers,
	}
	if item.Owners == nil {
		item.Owners = []bson.ObjectID{}
	}
	if item.Servers == nil {
		item.Servers = []string{}
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *KeyItemService) Get(ctx context.Context, id string) (*model.KeyItem, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid key item id: %w", common.ErrBadRequest)
	}
	return s.itemRepo.FindByID(ctx, oid)
}

// List returns the items the caller created.
func (s *KeyItemService) List(ctx context.Context, ident model.Identity) ([]model.KeyItem, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.itemRepo.ListByCreator(ctx, userID)
}

// Owned returns summaries of the items granted to the caller.
func (s *KeyItemService) Owned(ctx context.Context, ident model.Identity) ([]model.KeyItemSummary, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	items, err := s.itemRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// Inspect resolves a mask token to its subject and returns that user's
// owned item summaries, without ever learning who the subject is beyond
// the token's say-so.
func (s *KeyItemService) Inspect(ctx context.Context, token string) ([]model.KeyItemSummary, error) {
	subject, err := s.mask.Verify(token)
	if err != nil {
		return nil, err
	}
	ownerID, err := bson.ObjectIDFromHex(subject)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	items, err := s.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

func (s *KeyItemService) ListSince(ctx context.Context, since time.Time) ([]model.KeyItem, error) {
	return s.itemRepo.ListSince(ctx, since)
}

func (s *KeyItemService) Update(ctx context.Context, ident model.Identity, id string, req KeyItemRequest) (*model.KeyItem, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid key item id: %w", common.ErrBadRequest)
	}

	item, err := s.itemRepo.FindForCreator(ctx, oid, userID)
	if err != nil {
		return nil, err
	}

	nameBefore := item.Name
	if req.Name != "" {
		item.Name = truncate(req.Name, s.maxNameLength)
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Owners != nil {
		owners, err := parseObjectIDs(req.Owners)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id: %w", common.ErrBadRequest)
		}
		item.Owners = owners
	}
	if req.Servers != nil {
		item.Servers = req.Servers
	}

	if item.Name != nameBefore {
		if err := s.checkNameFree(ctx, userID, item.Name); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item the caller created, refusing while any player
// still owns it.
func (s *KeyItemService) Delete(ctx context.Context, ident model.Identity, id string) (string, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return "", fmt.Errorf("invalid key item id: %w", common.ErrBadRequest)
	}

	item, err := s.itemRepo.FindForCreator(ctx, oid, userID)
	if err != nil {
		return "", err
	}
	if len(item.Owners) > 0 {
		return "", fmt.Errorf("cannot remove, this key item is owned by players: %w", common.ErrConflict)
	}
	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return "", err
	}
	return item.Name, nil
}

func (s *KeyItemService) checkNameFree(ctx context.Context, userID bson.ObjectID, name string) error {
	_, err := s.itemRepo.FindByCreatorAndName(ctx, userID, name)
	if err == nil {
		return fmt.Errorf("you already have a key item registered with the same name: %w", common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return nil
}

func summarize(items []model.KeyItem) []model.KeyItemSummary {
	out := make([]model.KeyItemSummary, 0, len(items))
	for i := range items {
		out = append(out, items[i].Summary())
	}
	return out
}
