package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"netbattle_api/internal/common/security"

	"github.com/stretchr/testify/require"
)

func newResetFixture(t *testing.T) (*ResetService, *fakeUserRepo, *fakeResetTokenRepo, *fakeMailQueue) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeResetTokenRepo()
	queue := &fakeMailQueue{}
	// Low cost keeps the bcrypt rounds fast under test.
	svc := NewResetService(users, tokens, queue, "http://client.test", 4, slog.Default())
	return svc, users, tokens, queue
}

// rawTokenFromMail digs the raw token out of the reset URL in the
// delivered message, the same way a user would.
func rawTokenFromMail(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "http://client.test")
	require.GreaterOrEqual(t, idx, 0)
	link := strings.Fields(body[idx:])[0]
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestRequest_KnownEmailStoresOneToken(t *testing.T) {
	svc, users, tokens, queue := newResetFixture(t)
	user := seedUser(t, users, "lan", "oldpass")

	require.NoError(t, svc.Request(context.Background(), user.Email))
	require.Len(t, queue.messages, 1)
	require.Equal(t, user.Email, queue.messages[0].To)
	require.Len(t, tokens.tokens, 1)

	record, err := tokens.FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)

	raw := rawTokenFromMail(t, queue.messages[0].Body)
	require.NotEmpty(t, raw)
	require.True(t, security.CheckPasswordHash(raw, record.Token), "stored digest must match the mailed token")
}

func TestRequest_UnknownEmailSucceedsWithoutWrites(t *testing.T) {
	svc, _, tokens, queue := newResetFixture(t)

	require.NoError(t, svc.Request(context.Background(), "nobody@example.com"))
	require.Empty(t, tokens.tokens)
	require.Empty(t, queue.messages)
}

func TestRequest_SecondRequestSupersedesFirst(t *testing.T) {
	svc, users, tokens, queue := newResetFixture(t)
	user := seedUser(t, users, "lan", "oldpass")

	require.NoError(t, svc.Request(context.Background(), user.Email))
	require.NoError(t, svc.Request(context.Background(), user.Email))
	require.Len(t, tokens.tokens, 1)

	firstRaw := rawTokenFromMail(t, queue.messages[0].Body)
	secondRaw := rawTokenFromMail(t, queue.messages[1].Body)
	record, err := tokens.FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, security.CheckPasswordHash(firstRaw, record.Token))
	require.True(t, security.CheckPasswordHash(secondRaw, record.Token))
}

func TestVerify_RotatesPasswordAndConsumesToken(t *testing.T) {
	svc, users, _, queue := newResetFixture(t)
	user := seedUser(t, users, "lan", "oldpass")

	require.NoError(t, svc.Request(context.Background(), user.Email))
	raw := rawTokenFromMail(t, queue.messages[0].Body)

	err := svc.Verify(context.Background(), user.ID.Hex(), raw, "newpass")
	require.NoError(t, err)

	updated, findErr := users.FindByID(context.Background(), user.ID)
	require.NoError(t, findErr)
	require.True(t, security.CheckPasswordHash("newpass", updated.Password))
	require.False(t, security.CheckPasswordHash("oldpass", updated.Password))

	// Token is single use.
	err = svc.Verify(context.Background(), user.ID.Hex(), raw, "anotherpass")
	require.Error(t, err)

	// Confirmation mail followed the request mail.
	require.Len(t, queue.messages, 2)
	require.Equal(t, "Password Confirmation", queue.messages[1].Subject)
}

func TestVerify_WrongTokenDoesNotTouchPassword(t *testing.T) {
	svc, users, _, queue := newResetFixture(t)
	user := seedUser(t, users, "lan", "oldpass")

	require.NoError(t, svc.Request(context.Background(), user.Email))
	require.Len(t, queue.messages, 1)

	err := svc.Verify(context.Background(), user.ID.Hex(), "deadbeef", "newpass")
	require.Error(t, err)

	current, findErr := users.FindByID(context.Background(), user.ID)
	require.NoError(t, findErr)
	require.True(t, security.CheckPasswordHash("oldpass", current.Password))
	require.Len(t, queue.messages, 1, "no confirmation mail on failure")
}

func TestVerify_MissingFieldsRejected(t *testing.T) {
	svc, users, _, _ := newResetFixture(t)
	user := seedUser(t, users, "lan", "oldpass")

	require.Error(t, svc.Verify(context.Background(), user.ID.Hex(), "", "newpass"))
	require.Error(t, svc.Verify(context.Background(), user.ID.Hex(), "sometoken", ""))
	require.Error(t, svc.Verify(context.Background(), "not-an-id", "sometoken", "newpass"))
}
