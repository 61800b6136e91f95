package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/repository"
	"netbattle_api/internal/platform/mail"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResetService drives the password recovery flow: a hashed single-use
// token is stored per user, the raw token goes out by mail, and a
// successful verify rotates the password and consumes the token.
type ResetService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.ResetTokenRepository
	mailQueue  mail.Queue
	clientURL  string
	saltRounds int
	logger     *slog.Logger
}

func NewResetService(
	userRepo repository.UserRepository,
	tokenRepo repository.ResetTokenRepository,
	mailQueue mail.Queue,
	clientURL string,
	saltRounds int,
	logger *slog.Logger,
) *ResetService {
	return &ResetService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		mailQueue:  mailQueue,
		clientURL:  clientURL,
		saltRounds: saltRounds,
		logger:     logger,
	}
}

// Request starts a reset for the account behind email. An unknown email
// succeeds without side effects so responses never reveal whether an
// address is registered.
func (s *ResetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("ResetService.Request: %w", err)
	}

	raw, err := security.NewResetToken()
	if err != nil {
		return fmt.Errorf("ResetService.Request: %w", err)
	}
	hash, err := security.HashToken(raw, s.saltRounds)
	if err != nil {
		return fmt.Errorf("ResetService.Request: %w", err)
	}

	// Upsert supersedes any token still outstanding for this user.
	if err := s.tokenRepo.Upsert(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("ResetService.Request: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-pass/?token=%s&id=%s", s.clientURL, raw, user.ID.Hex())
	body := fmt.Sprintf(
		"%s, a password change was requested for your account.\n\n"+
			"Follow this link to choose a new password: %s\n\n"+
			"If you did not request this change you can ignore this message.",
		user.Name, resetURL)

	if err := s.mailQueue.Enqueue(ctx, mail.Message{
		To:      user.Email,
		Subject: "Password Change Request",
		Body:    body,
	}); err != nil {
		return fmt.Errorf("ResetService.Request: %w", err)
	}
	return nil
}

// Verify consumes a reset token and rotates the password. The token
// record is deleted after the rotation commits; a failed delete is logged
// but does not fail the request.
func (s *ResetService) Verify(ctx context.Context, userID, token, password string) error {
	if token == "" || password == "" {
		return fmt.Errorf("token and password are required: %w", common.ErrBadRequest)
	}
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid request: %w", common.ErrBadRequest)
	}

	record, err := s.tokenRepo.FindByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("invalid request: %w", common.ErrBadRequest)
		}
		return fmt.Errorf("ResetService.Verify: %w", err)
	}

	if !security.CheckPasswordHash(token, record.Token) {
		return fmt.Errorf("expired request: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ResetService.Verify: %w", err)
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("ResetService.Verify: %w", err)
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("ResetService.Verify: %w", err)
	}

	// Single-use is enforced by deletion. Until natural supersession the
	// token would stay valid if this fails, so it is only logged.
	if err := s.tokenRepo.DeleteByUserID(ctx, id); err != nil {
		s.logger.Error("failed to delete reset token", "userId", userID, "error", err)
	}

	if err := s.mailQueue.Enqueue(ctx, mail.Message{
		To:      user.Email,
		Subject: "Password Confirmation",
		Body:    user.Username + ", your password was changed successfully",
	}); err != nil {
		// Password already rotated; the confirmation is best-effort.
		s.logger.Error("failed to enqueue confirmation mail", "userId", userID, "error", err)
	}
	return nil
}
