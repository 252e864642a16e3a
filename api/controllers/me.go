package controllers

import (
	"net/http"
	"strings"

	"github.com/margauxcellars/cellar-backend/api/middleware"
	"github.com/margauxcellars/cellar-backend/api/responses"
	"github.com/margauxcellars/cellar-backend/internal/users"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// Me serves the authenticated staff member's profile.
func Me(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetProfile(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// MeLanguage persists the staff member's preferred language and refreshes the
// cookie so the choice survives across sessions and devices.
func MeLanguage(cfg config.PortalConfig, svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := strings.TrimSpace(r.URL.Query().Get("lang"))
		if lang == "" || !cfg.SupportsLanguage(lang) {
			err := pkgerrors.New(pkgerrors.CodeValidation, "unsupported language").
				WithDetails(map[string]any{"supported": cfg.Languages})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.SetLanguage(r.Context(), middleware.UserIDFromContext(r.Context()), lang)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		middleware.SetLanguageCookie(w, lang)
		responses.WriteSuccess(w, profile)
	}
}
