package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"slices"

	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/platform/session"
)

type contextKey string

const IdentityCtxKey contextKey = "identity"

// Auth is the guard pair protecting routes. It is constructed once at
// startup and passed to route registration; nothing about it is ambient.
type Auth struct {
	verifier        *service.AuthService
	sessions        *session.Store
	signupWhiteList []string
	logger          *slog.Logger
}

func NewAuth(verifier *service.AuthService, sessions *session.Store, signupWhiteList []string, logger *slog.Logger) *Auth {
	return &Auth{
		verifier:        verifier,
		sessions:        sessions,
		signupWhiteList: signupWhiteList,
		logger:          logger,
	}
}

// RequireAuthenticated admits regular users and admins. A valid session
// cookie wins; otherwise Basic credentials are verified, and a regular
// user match persists a new session. Admin matches are never persisted.
func (a *Auth) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if username, ok := a.sessions.Username(ctx, r); ok {
			if ident, err := a.verifier.ResolveSession(ctx, username); err == nil {
				next.ServeHTTP(w, r.WithContext(withIdentity(ctx, ident)))
				return
			}
			// Stale session; fall back to credentials.
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			unauthorized(w)
			return
		}

		outcome, err := a.verifier.Verify(ctx, username, password)
		if err != nil {
			// Fail closed: a verifier error is never a successful login.
			a.logger.Error("credential verification failed", "error", err)
			unauthorized(w)
			return
		}
		ident, ok := outcome.Identity()
		if !ok {
			unauthorized(w)
			return
		}

		if outcome.Kind == service.OutcomeUser {
			if err := a.sessions.Create(ctx, w, ident.Username); err != nil {
				a.logger.Error("failed to create session", "username", ident.Username, "error", err)
			}
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(ctx, ident)))
	})
}

// RequireAdmin re-verifies Basic credentials against the admin store on
// every call and never touches the session.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		username, password, ok := r.BasicAuth()
		if !ok {
			unauthorized(w)
			return
		}
		outcome, err := a.verifier.VerifyAdmin(ctx, username, password)
		if err != nil {
			a.logger.Error("admin credential verification failed", "error", err)
			unauthorized(w)
			return
		}
		if outcome.Kind != service.OutcomeAdmin {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(ctx, model.AdminIdentity())))
	})
}

// SignupGate protects account creation: a signed-in regular user must
// log out first, and the caller's address must be on the signup
// allow-list.
func (a *Auth) SignupGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if username, ok := a.sessions.Username(ctx, r); ok {
			if ident, err := a.verifier.ResolveSession(ctx, username); err == nil && !ident.IsAdmin {
				common.RespondWithError(w, http.StatusBadRequest, "Sign out before creating a new account")
				return
			}
		}

		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		if !slices.Contains(a.signupWhiteList, ip) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
	common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
}

func withIdentity(ctx context.Context, ident model.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, ident)
}

// IdentityFromContext returns the principal attached by a guard.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	ident, ok := ctx.Value(IdentityCtxKey).(model.Identity)
	return ident, ok
}
