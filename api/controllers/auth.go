package controllers

import (
	"net/http"

	"github.com/margauxcellars/cellar-backend/api/middleware"
	"github.com/margauxcellars/cellar-backend/api/responses"
	"github.com/margauxcellars/cellar-backend/api/validators"
	"github.com/margauxcellars/cellar-backend/internal/auth"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the session carried by the presented token.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Logout(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithField(r.Context(), "email", middleware.UserEmailFromContext(r.Context()))
			logg.Info(ctx, "staff logout")
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
