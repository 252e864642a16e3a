package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/margauxcellars/cellar-backend/api/controllers"
	"github.com/margauxcellars/cellar-backend/api/middleware"
	"github.com/margauxcellars/cellar-backend/internal/auth"
	"github.com/margauxcellars/cellar-backend/internal/catalog"
	"github.com/margauxcellars/cellar-backend/internal/importer"
	"github.com/margauxcellars/cellar-backend/internal/offers"
	"github.com/margauxcellars/cellar-backend/internal/users"
	"github.com/margauxcellars/cellar-backend/pkg/auth/session"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       controllers.Pinger
	RedisPinger    controllers.Pinger
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	CatalogService catalog.Service
	OffersService  offers.Service
	UsersService   users.Service
	Importer       *importer.Importer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Get("/api/v1/language", controllers.SetLanguage(cfg.Portal, logg))

	// Staff surface behind JWT auth.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Language(cfg.Portal))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.Me(deps.UsersService, logg))
			r.Post("/language", controllers.MeLanguage(cfg.Portal, deps.UsersService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(deps.CatalogService, logg))
			r.Post("/export", controllers.InventoryExport(deps.CatalogService, logg))
			r.Post("/bulk-edit", controllers.InventoryBulkEdit(deps.CatalogService, logg))
			r.Post("/import", controllers.InventoryImport(deps.Importer, logg))
		})

		r.Route("/wine-lists", func(r chi.Router) {
			r.Get("/", controllers.WineListIndex(deps.OffersService, logg))
			r.Post("/", controllers.WineListCreate(deps.OffersService, logg))
			r.Post("/status", controllers.WineListStatusUpdate(deps.OffersService, logg))
			r.Get("/{uuid}", controllers.WineListDetail(deps.OffersService, logg))
			r.Post("/{uuid}/amend", controllers.WineListAmend(deps.OffersService, logg))
			r.Get("/{uuid}/pdf", controllers.WineListPDF(deps.OffersService, logg))
		})
	})

	// Client portal: the list UUID is the capability token, no auth.
	r.Route("/api/portal/wine-lists/{uuid}", func(r chi.Router) {
		r.Use(middleware.Language(cfg.Portal))
		r.Get("/", controllers.PortalWineList(deps.OffersService, logg))
		r.Post("/submit", controllers.PortalSubmit(deps.OffersService, logg))
	})

	return r
}
