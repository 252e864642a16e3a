package controllers

import (
	"net/http"
	"strings"

	"github.com/margauxcellars/cellar-backend/api/middleware"
	"github.com/margauxcellars/cellar-backend/api/responses"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// SetLanguage stores the caller's UI language choice in a cookie. It serves
// both the portal and the staff console, so it sits outside the auth group.
func SetLanguage(cfg config.PortalConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := strings.TrimSpace(r.URL.Query().Get("lang"))
		if lang == "" || !cfg.SupportsLanguage(lang) {
			err := pkgerrors.New(pkgerrors.CodeValidation, "unsupported language").
				WithDetails(map[string]any{"supported": cfg.Languages})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		middleware.SetLanguageCookie(w, lang)
		responses.WriteSuccess(w, map[string]string{"language": lang})
	}
}
