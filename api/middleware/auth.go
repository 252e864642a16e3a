package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/margauxcellars/cellar-backend/api/responses"
	pkgauth "github.com/margauxcellars/cellar-backend/pkg/auth"
	"github.com/margauxcellars/cellar-backend/pkg/auth/session"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
// The session id inside the token must still be live in redis so logout takes
// effect before the JWT expires.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithSessionID(ctx, claims.ID)
			if claims.Email != "" {
				ctx = context.WithValue(ctx, ctxUserEmail, claims.Email)
			}

			if logg != nil {
				ctx = logg.WithUserID(ctx, strconv.FormatUint(uint64(claims.UserID), 10))
				if claims.Email != "" {
					ctx = logg.WithField(ctx, "user_email", claims.Email)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
