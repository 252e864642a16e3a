package middleware

import (
	"context"
	"net/http"

	"github.com/margauxcellars/cellar-backend/pkg/config"
)

const languageCookie = "portal_language"

// Language resolves the portal UI language from the cookie, falling back to
// the configured default, and seeds it into the request context.
func Language(cfg config.PortalConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := cfg.DefaultLanguage
			if cookie, err := r.Cookie(languageCookie); err == nil && cfg.SupportsLanguage(cookie.Value) {
				lang = cookie.Value
			}
			ctx := context.WithValue(r.Context(), ctxLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetLanguageCookie persists the chosen language for a year.
func SetLanguageCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     languageCookie,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
