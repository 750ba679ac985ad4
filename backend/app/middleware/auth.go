package middleware

import (
	"errors"
	"net/http"
	"strings"

	"jiansou/backend/app/models"
	"jiansou/backend/app/services"

	"github.com/rs/zerolog"
)

type Auth struct {
	Identity *services.IdentityService
	Log      zerolog.Logger
}

// RequireAuth rejects the request with 401 unless it carries a bearer token
// for an active user.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}
		u, err := a.Identity.ResolveRequired(r.Context(), token)
		if errors.Is(err, services.ErrUnauthorized) {
			unauthorized(w)
			return
		}
		if err != nil {
			a.Log.Error().Err(err).Msg("resolve identity")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// OptionalAuth attaches the user when the token resolves and lets every
// other request through anonymously.
func (a *Auth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var u *models.User
		if token, ok := bearerToken(r); ok {
			u = a.Identity.ResolveOptional(r.Context(), token)
		}
		if u != nil {
			r = r.WithContext(WithUser(r.Context(), u))
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "could not validate credentials")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
