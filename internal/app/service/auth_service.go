package service

import (
	"context"
	"errors"
	"fmt"

	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"
)

// OutcomeKind tags the result of a credential check so callers never have
// to infer which store matched from the shape of the result.
type OutcomeKind int

const (
	OutcomeNoMatch OutcomeKind = iota
	OutcomeUser
	OutcomeAdmin
)

// Outcome carries the matched user record only for OutcomeUser; an admin
// match never has one.
type Outcome struct {
	Kind OutcomeKind
	User *model.User
}

// Identity converts the outcome into the normalized principal record.
// The second return is false when there was no match.
func (o Outcome) Identity() (model.Identity, bool) {
	switch o.Kind {
	case OutcomeUser:
		return model.UserIdentity(o.User), true
	case OutcomeAdmin:
		return model.AdminIdentity(), true
	default:
		return model.Identity{}, false
	}
}

type AuthService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminUserRepository
}

func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminUserRepository) *AuthService {
	return &AuthService{userRepo: userRepo, adminRepo: adminRepo}
}

// Verify checks the credentials against the user store, falling back to
// the admin store when no regular user has that username. A wrong
// password is a negative match, not an error; storage failures propagate.
func (s *AuthService) Verify(ctx context.Context, username, password string) (Outcome, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s.verifyAdmin(ctx, username, password)
		}
		return Outcome{}, fmt.Errorf("AuthService.Verify: %w", err)
	}

	if !security.CheckPasswordHash(password, user.Password) {
		return Outcome{Kind: OutcomeNoMatch}, nil
	}
	return Outcome{Kind: OutcomeUser, User: user}, nil
}

// VerifyAdmin checks the credentials against the admin store only.
func (s *AuthService) VerifyAdmin(ctx context.Context, username, password string) (Outcome, error) {
	return s.verifyAdmin(ctx, username, password)
}

func (s *AuthService) verifyAdmin(ctx context.Context, username, password string) (Outcome, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return Outcome{Kind: OutcomeNoMatch}, nil
		}
		return Outcome{}, fmt.Errorf("AuthService.verifyAdmin: %w", err)
	}

	if !security.CheckPasswordHash(password, admin.Password) {
		return Outcome{Kind: OutcomeNoMatch}, nil
	}
	return Outcome{Kind: OutcomeAdmin}, nil
}

// ResolveSession deserializes a session principal. Sessions only ever
// hold regular usernames, so the user is re-fetched by name; a vanished
// user simply means the session no longer authenticates anyone.
func (s *AuthService) ResolveSession(ctx context.Context, username string) (model.Identity, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.Identity{}, common.ErrUnauthorized
		}
		return model.Identity{}, fmt.Errorf("AuthService.ResolveSession: %w", err)
	}
	return model.UserIdentity(user), nil
}
