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

// ProductService runs the shop: listings, purchases and the transaction
// log. A purchase moves monies from buyer to seller and, when the
// product grants a key item, adds the buyer to its owners.
type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	txRepo      repository.TxRepository
	itemRepo    repository.KeyItemRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	txRepo repository.TxRepository,
	itemRepo repository.KeyItemRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
		txRepo:      txRepo,
		itemRepo:    itemRepo,
	}
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	KeyItemID   *string `json:"keyItemId,omitempty"`
}

func (s *ProductService) Add(ctx context.Context, ident model.Identity, req ProductRequest) (*model.Product, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	if req.Name == "" || req.Price < 0 {
		return nil, fmt.Errorf("a product needs a name and a non-negative price: %w", common.ErrBadRequest)
	}

	product := &model.Product{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.KeyItemID != nil {
		itemID, err := bson.ObjectIDFromHex(*req.KeyItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid key item id: %w", common.ErrBadRequest)
		}
		// A seller can only attach their own key item.
		if _, err := s.itemRepo.FindForCreator(ctx, itemID, userID); err != nil {
			return nil, err
		}
		product.KeyItemID = &itemID
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", common.ErrBadRequest)
	}
	return s.productRepo.FindByID(ctx, oid)
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *ProductService) ListSince(ctx context.Context, since time.Time) ([]model.Product, error) {
	return s.productRepo.ListSince(ctx, since)
}

func (s *ProductService) Update(ctx context.Context, ident model.Identity, id string, req ProductRequest) (*model.Product, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", common.ErrBadRequest)
	}

	product, err := s.productRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, common.ErrUnauthorized
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price >= 0 {
		product.Price = req.Price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, ident model.Identity, id string) error {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", common.ErrBadRequest)
	}
	return s.productRepo.Delete(ctx, oid, userID)
}

// Purchase executes a buy: funds check, monies transfer, transaction
// record, key item grant. Per-document writes are atomic; there is no
// cross-document transaction, matching the rest of the store.
func (s *ProductService) Purchase(ctx context.Context, ident model.Identity, id string) (*model.Tx, error) {
	buyerID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", common.ErrBadRequest)
	}

	product, err := s.productRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product.UserID == buyerID {
		return nil, fmt.Errorf("you cannot purchase your own product: %w", common.ErrBadRequest)
	}

	buyer, err := s.userRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if buyer.Monies < product.Price {
		return nil, fmt.Errorf("not enough monies for this purchase: %w", common.ErrBadRequest)
	}

	if err := s.userRepo.IncrementMonies(ctx, buyerID, -product.Price); err != nil {
		return nil, err
	}
	if err := s.userRepo.IncrementMonies(ctx, product.UserID, product.Price); err != nil {
		return nil, err
	}

	tx := &model.Tx{
		From:    buyerID,
		To:      product.UserID,
		Product: product.ID,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if product.KeyItemID != nil {
		if err := s.itemRepo.AddOwner(ctx, *product.KeyItemID, buyerID); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// TxSince lists the caller's transactions newer than the given time.
func (s *ProductService) TxSince(ctx context.Context, ident model.Identity, since time.Time) ([]model.Tx, error) {
	userID, err := bson.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.txRepo.ListSinceForUser(ctx, userID, since)
}
