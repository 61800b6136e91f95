package service

import (
	"context"
	"fmt"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FolderLimits carries the deck-size preferences enforced on writes.
type FolderLimits struct {
	MaxNameLength int
	MaxCards      int
}

type FolderService struct {
	folderRepo repository.FolderRepository
	publicRepo repository.PublicFolderRepository
	limits     FolderLimits
}

func NewFolderService(
	folderRepo repository.FolderRepository,
	publicRepo repository.PublicFolderRepository,
	limits FolderLimits,
) *FolderService {
	return &FolderService{folderRepo: folderRepo, publicRepo: publicRepo, limits: limits}
}

type FolderRequest struct {
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
}

func (s *FolderService) Add(ctx context.Context, ident model.Identity, req FolderRequest) (*model.Folder, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	name, cards, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	folder := &model.Folder{
		UserID: userID,
		Name:   name,
		Cards:  cards,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) Get(ctx context.Context, ident model.Identity, id string) (*model.Folder, error) {
	folderID, userID, err := s.ownedIDs(ident, id)
	if err != nil {
		return nil, err
	}
	return s.folderRepo.FindForUser(ctx, folderID, userID)
}

func (s *FolderService) List(ctx context.Context, ident model.Identity) ([]model.Folder, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.folderRepo.ListByUser(ctx, userID)
}

func (s *FolderService) ListSince(ctx context.Context, ident model.Identity, since time.Time) ([]model.Folder, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.folderRepo.ListByUserSince(ctx, userID, since)
}

func (s *FolderService) Update(ctx context.Context, ident model.Identity, id string, req FolderRequest) (*model.Folder, error) {
	folderID, userID, err := s.ownedIDs(ident, id)
	if err != nil {
		return nil, err
	}
	folder, err := s.folderRepo.FindForUser(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		folder.Name = truncate(req.Name, s.limits.MaxNameLength)
	}
	if req.Cards != nil {
		cards, err := parseObjectIDs(req.Cards)
		if err != nil {
			return nil, fmt.Errorf("invalid card id: %w", common.ErrBadRequest)
		}
		if len(cards) > s.limits.MaxCards {
			return nil, fmt.Errorf("folders hold at most %d cards: %w", s.limits.MaxCards, common.ErrBadRequest)
		}
		folder.Cards = cards
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) Delete(ctx context.Context, ident model.Identity, id string) error {
	folderID, userID, err := s.ownedIDs(ident, id)
	if err != nil {
		return err
	}
	return s.folderRepo.Delete(ctx, folderID, userID)
}

// AddPublic publishes a folder snapshot for everyone, addressable by a
// slug derived from its name.
func (s *FolderService) AddPublic(ctx context.Context, ident model.Identity, req FolderRequest) (*model.PublicFolder, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	name, cards, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	folder := &model.PublicFolder{
		UserID: userID,
		Name:   name,
		Slug:   slug.Make(name),
		Cards:  cards,
	}
	if err := s.publicRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) GetPublic(ctx context.Context, id string) (*model.PublicFolder, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid folder id: %w", common.ErrBadRequest)
	}
	return s.publicRepo.FindByID(ctx, oid)
}

func (s *FolderService) ListPublic(ctx context.Context) ([]model.PublicFolder, error) {
	return s.publicRepo.List(ctx)
}

func (s *FolderService) ListPublicSince(ctx context.Context, since time.Time) ([]model.PublicFolder, error) {
	return s.publicRepo.ListSince(ctx, since)
}

func (s *FolderService) DeletePublic(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid folder id: %w", common.ErrBadRequest)
	}
	return s.publicRepo.Delete(ctx, oid)
}

func (s *FolderService) normalize(req FolderRequest) (string, []bson.ObjectID, error) {
	if req.Name == "" {
		return "", nil, fmt.Errorf("folder name is required: %w", common.ErrBadRequest)
	}
	cards, err := parseObjectIDs(req.Cards)
	if err != nil {
		return "", nil, fmt.Errorf("invalid card id: %w", common.ErrBadRequest)
	}
	if len(cards) > s.limits.MaxCards {
		return "", nil, fmt.Errorf("folders hold at most %d cards: %w", s.limits.MaxCards, common.ErrBadRequest)
	}
	return truncate(req.Name, s.limits.MaxNameLength), cards, nil
}

func (s *FolderService) ownedIDs(ident model.Identity, id string) (bson.ObjectID, bson.ObjectID, error) {
	folderID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, fmt.Errorf("invalid folder id: %w", common.ErrBadRequest)
	}
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return folderID, userID, nil
}

// truncate forces a name to fit the configured char limit.
func truncate(name string, max int) string {
	if max > 0 && len(name) > max {
		return name[:max]
	}
	return name
}
