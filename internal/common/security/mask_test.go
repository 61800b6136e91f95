package security

import (
	"testing"
	"time"

	"netbattle_api/internal/common"

	"github.com/stretchr/testify/require"
)

func TestMask_RoundTrip(t *testing.T) {
	mask := NewMask([]byte("test-signing-key"), time.Minute)

	token, err := mask.Issue("64a2c1f0aa11bb22cc33dd44")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := mask.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "64a2c1f0aa11bb22cc33dd44", subject)
}

func TestMask_ExpiredTokenRejected(t *testing.T) {
	mask := NewMask([]byte("test-signing-key"), -time.Minute)

	token, err := mask.Issue("64a2c1f0aa11bb22cc33dd44")
	require.NoError(t, err)

	_, err = mask.Verify(token)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMask_TamperedTokenRejected(t *testing.T) {
	mask := NewMask([]byte("test-signing-key"), time.Minute)

	token, err := mask.Issue("64a2c1f0aa11bb22cc33dd44")
	require.NoError(t, err)

	// Flip one byte anywhere in the compact form.
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		broken := []byte(token)
		if broken[i] == 'A' {
			broken[i] = 'B'
		} else {
			broken[i] = 'A'
		}
		_, err := mask.Verify(string(broken))
		require.ErrorIs(t, err, common.ErrInvalidToken, "position %d", i)
	}
}

func TestMask_WrongKeyRejected(t *testing.T) {
	issuer := NewMask([]byte("key-one"), time.Minute)
	verifier := NewMask([]byte("key-two"), time.Minute)

	token, err := issuer.Issue("64a2c1f0aa11bb22cc33dd44")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMask_GarbageRejected(t *testing.T) {
	mask := NewMask([]byte("test-signing-key"), time.Minute)

	for _, bad := range []string{"", "abc", "a.b.c", "not a token at all"} {
		_, err := mask.Verify(bad)
		require.ErrorIs(t, err, common.ErrInvalidToken)
	}
}
