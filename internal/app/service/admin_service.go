package service

import (
	"context"
	"fmt"

	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AdminService manages the separate admin principal collection.
type AdminService struct {
	adminRepo repository.AdminUserRepository
}

func NewAdminService(adminRepo repository.AdminUserRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

type AddAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateAdminRequest struct {
	Password *string `json:"password,omitempty"`
}

func (s *AdminService) Add(ctx context.Context, req AddAdminRequest) (*model.AdminUser, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}
	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("AdminService.Add: %w", err)
	}
	admin := &model.AdminUser{Username: req.Username, Password: hashed}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) Get(ctx context.Context, id string) (*model.AdminUser, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid admin id: %w", common.ErrBadRequest)
	}
	return s.adminRepo.FindByID(ctx, oid)
}

func (s *AdminService) Update(ctx context.Context, id string, req UpdateAdminRequest) (*model.AdminUser, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid admin id: %w", common.ErrBadRequest)
	}
	admin, err := s.adminRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if req.Password != nil {
		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("AdminService.Update: %w", err)
		}
		admin.Password = hashed
	}
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid admin id: %w", common.ErrBadRequest)
	}
	return s.adminRepo.Delete(ctx, oid)
}
