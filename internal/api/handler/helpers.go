package handler

import (
	"net/http"
	"strconv"
	"time"

	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// callerIdentity pulls the principal a guard attached; a missing one is a
// wiring bug and answers 401 rather than proceeding anonymously.
func callerIdentity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return ident, ok
}

// sinceParam reads the {time} path segment as unix seconds.
func sinceParam(r *http.Request) (time.Time, error) {
	secs, err := strconv.ParseInt(chi.URLParam(r, "time"), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}
