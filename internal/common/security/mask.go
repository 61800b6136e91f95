package security

import (
	"time"

	"netbattle_api/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const maskScope = "query"

// Mask issues and checks the short-lived identity tokens users hand to
// third parties instead of credentials.
type Mask struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewMask(signingKey []byte, ttl time.Duration) *Mask {
	return &Mask{
		auth: jwtauth.New("HS256", signingKey, nil),
		ttl:  ttl,
	}
}

// Issue creates a compact token asserting userID for the mask TTL.
func (m *Mask) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"scope": maskScope,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(m.ttl).Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	return tokenString, err
}

// Verify validates signature and expiry and recovers the subject user id.
// Malformed, tampered and expired tokens all come back as the same generic
// invalid-token error.
func (m *Mask) Verify(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(m.auth, tokenString)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	scope, ok := token.Get("scope")
	if !ok || scope != maskScope {
		return "", common.ErrInvalidToken
	}

	sub := token.Subject()
	if sub == "" {
		return "", common.ErrInvalidToken
	}
	return sub, nil
}
