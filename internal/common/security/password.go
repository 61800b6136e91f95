package security

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// HashToken hashes a raw recovery token at the configured cost so only the
// digest is ever persisted.
func HashToken(token string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NewResetToken returns 32 random bytes hex encoded. The raw value goes out
// by mail, only its bcrypt hash is stored.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
