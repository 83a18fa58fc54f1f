package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ferrumtrans/ferrumtrans/internal/analytics"
	"github.com/ferrumtrans/ferrumtrans/internal/applications"
	"github.com/ferrumtrans/ferrumtrans/internal/audit"
	"github.com/ferrumtrans/ferrumtrans/internal/auth"
	"github.com/ferrumtrans/ferrumtrans/internal/contacts"
	"github.com/ferrumtrans/ferrumtrans/internal/mainpage"
	"github.com/ferrumtrans/ferrumtrans/internal/media"
	"github.com/ferrumtrans/ferrumtrans/internal/news"
	"github.com/ferrumtrans/ferrumtrans/internal/pages"
	"github.com/ferrumtrans/ferrumtrans/internal/settings"
	"github.com/ferrumtrans/ferrumtrans/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Middleware []func(http.Handler) http.Handler

	AuthHandler         *auth.Handler
	UsersHandler        *users.Handler
	ApplicationsHandler *applications.Handler
	ContactsHandler     *contacts.Handler
	AnalyticsHandler    *analytics.Handler
	NewsHandler         *news.Handler
	PagesHandler        *pages.Handler
	MainPageHandler     *mainpage.Handler
	MediaHandler        *media.Handler
	SettingsHandler     *settings.Handler
	AuditHandler        *audit.Handler
}

// NewRouter builds the full route tree: the authenticated console API,
// the public read surface and health checks.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range params.Middleware {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/applications", params.ApplicationsHandler.MountRoutes)
		r.Route("/contacts", params.ContactsHandler.MountRoutes)
		r.Route("/analytics/diagrams", params.AnalyticsHandler.MountRoutes)
		r.Route("/news", params.NewsHandler.MountRoutes)
		r.Route("/pages", params.PagesHandler.MountRoutes)
		r.Route("/main-page", params.MainPageHandler.MountRoutes)
		r.Route("/media", params.MediaHandler.MountRoutes)
		r.Route("/settings", params.SettingsHandler.MountRoutes)
		r.Route("/audit", params.AuditHandler.MountRoutes)
	})

	// Public surface: the landing page, published news and the
	// contact form.
	r.Route("/public", func(r chi.Router) {
		r.Route("/main-page", params.MainPageHandler.MountPublicRoutes)
		r.Route("/news", params.NewsHandler.MountPublicRoutes)
		r.Route("/applications", params.ApplicationsHandler.MountPublicRoutes)
	})

	return r
}
