package service

import (
	"context"
	"fmt"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type AddUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (s *UserService) Add(ctx context.Context, req AddUserRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrBadRequest)
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("UserService.Add: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Avatar:   req.Avatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a user by id. Non-admin callers may only fetch themselves.
func (s *UserService) Get(ctx context.Context, ident model.Identity, id string) (*model.User, error) {
	if !ident.IsAdmin && ident.UserID != id {
		return nil, common.ErrUnauthorized
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.userRepo.FindByID(ctx, oid)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) ListSince(ctx context.Context, since time.Time) ([]model.User, error) {
	return s.userRepo.ListSince(ctx, since)
}

// Update edits profile fields. Only the account holder (or an admin) may
// update a user document.
func (s *UserService) Update(ctx context.Context, ident model.Identity, id string, req UpdateUserRequest) (*model.User, error) {
	if !ident.IsAdmin && ident.UserID != id {
		return nil, common.ErrUnauthorized
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("UserService.Update: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", common.ErrBadRequest)
	}
	return s.userRepo.Delete(ctx, oid)
}
