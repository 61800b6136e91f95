package service

import (
	"context"
	"errors"
	"testing"

	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/model"

	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *model.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	user := &model.User{Username: username, Email: username + "@example.com", Password: hash}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, username, password string) {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.AdminUser{Username: username, Password: hash}))
}

func TestVerify_UserMatch(t *testing.T) {
	users := newFakeUserRepo()
	admins := newFakeAdminRepo()
	user := seedUser(t, users, "lan", "megaman")

	svc := NewAuthService(users, admins)
	outcome, err := svc.Verify(context.Background(), "lan", "megaman")
	require.NoError(t, err)
	require.Equal(t, OutcomeUser, outcome.Kind)
	require.Equal(t, user.ID, outcome.User.ID)

	ident, ok := outcome.Identity()
	require.True(t, ok)
	require.False(t, ident.IsAdmin)
	require.Equal(t, user.ID.Hex(), ident.UserID)
	require.Equal(t, "lan", ident.Username)
}

func TestVerify_AdminFallback(t *testing.T) {
	users := newFakeUserRepo()
	admins := newFakeAdminRepo()
	seedAdmin(t, admins, "operator", "hub")

	svc := NewAuthService(users, admins)
	outcome, err := svc.Verify(context.Background(), "operator", "hub")
	require.NoError(t, err)
	require.Equal(t, OutcomeAdmin, outcome.Kind)
	require.Nil(t, outcome.User)

	ident, ok := outcome.Identity()
	require.True(t, ok)
	require.True(t, ident.IsAdmin)
	require.Empty(t, ident.UserID)
	require.Equal(t, model.AdminUsername, ident.Username)
}

func TestVerify_WrongPasswordIsNoMatch(t *testing.T) {
	users := newFakeUserRepo()
	admins := newFakeAdminRepo()
	seedUser(t, users, "lan", "megaman")

	svc := NewAuthService(users, admins)
	outcome, err := svc.Verify(context.Background(), "lan", "wrong")
	require.NoError(t, err)
	require.Equal(t, OutcomeNoMatch, outcome.Kind)

	_, ok := outcome.Identity()
	require.False(t, ok)
}

func TestVerify_UnknownUsernameIsNoMatch(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeAdminRepo())
	outcome, err := svc.Verify(context.Background(), "nobody", "pw")
	require.NoError(t, err)
	require.Equal(t, OutcomeNoMatch, outcome.Kind)
}

func TestVerify_StorageErrorPropagates(t *testing.T) {
	users := newFakeUserRepo()
	users.err = errors.New("connection lost")

	svc := NewAuthService(users, newFakeAdminRepo())
	_, err := svc.Verify(context.Background(), "lan", "megaman")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection lost")
}

func TestVerifyAdmin_NeverMatchesRegularUser(t *testing.T) {
	users := newFakeUserRepo()
	admins := newFakeAdminRepo()
	seedUser(t, users, "lan", "megaman")

	svc := NewAuthService(users, admins)
	outcome, err := svc.VerifyAdmin(context.Background(), "lan", "megaman")
	require.NoError(t, err)
	require.Equal(t, OutcomeNoMatch, outcome.Kind)
}

func TestResolveSession_RefetchesUser(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "lan", "megaman")

	svc := NewAuthService(users, newFakeAdminRepo())
	ident, err := svc.ResolveSession(context.Background(), "lan")
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), ident.UserID)

	_, err = svc.ResolveSession(context.Background(), "ghost")
	require.Error(t, err)
}
