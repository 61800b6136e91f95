package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KV is the minimal keyspace the store needs. RedisKV backs it in
// production; tests swap in a map.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Store keeps server-side session records keyed by an id carried in an
// HMAC-signed cookie. Only regular usernames are ever stored; admin
// principals are re-verified on every request and never get a session.
type Store struct {
	kv         KV
	cookieName string
	secret     []byte
	ttl        time.Duration
}

func NewStore(kv KV, cookieName string, secret []byte, ttl time.Duration) *Store {
	return &Store{
		kv:         kv,
		cookieName: cookieName,
		secret:     secret,
		ttl:        ttl,
	}
}

func (s *Store) CookieName() string {
	return s.cookieName
}

// Create persists a new session for username and sets the signed cookie.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, username string) error {
	id := uuid.NewString()
	if err := s.kv.Set(ctx, sessionKey(id), username, s.ttl); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    s.sign(id),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

// Username resolves the request's session cookie to the serialized
// username. A missing, tampered or expired session is simply "not logged
// in", never an error.
func (s *Store) Username(ctx context.Context, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", false
	}
	id, ok := s.verify(cookie.Value)
	if !ok {
		return "", false
	}
	username, found, err := s.kv.Get(ctx, sessionKey(id))
	if err != nil || !found {
		return "", false
	}
	return username, true
}

// Destroy removes the server-side record and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		if id, ok := s.verify(cookie.Value); ok {
			s.kv.Del(ctx, sessionKey(id))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *Store) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Store) verify(value string) (string, bool) {
	id, _, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(value), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}
