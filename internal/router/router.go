package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"easyimg-web/internal/config"
	"easyimg-web/internal/handler"
	"easyimg-web/internal/middleware"
)

type Handlers struct {
	Home      *handler.HomeHandler
	Login     *handler.LoginHandler
	Dashboard *handler.DashboardHandler
}

func New(cfg *config.Config, handlers Handlers, apiProxy http.Handler, assets fs.FS) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.LoginRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/static/*", http.FileServer(http.FS(assets)))

	// All backend traffic from the browser stays same-origin.
	r.Handle("/api/*", apiProxy)

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.Timeout(cfg.RequestTimeout))

		pages.Get("/", handlers.Home.Page)
		pages.Post("/upload", handlers.Home.Upload)

		pages.Get("/login", handlers.Login.Page)
		pages.Post("/login", handlers.Login.Submit)
		pages.Post("/logout", handlers.Login.Logout)

		pages.Route("/dashboard", func(dashboard chi.Router) {
			dashboard.Use(middleware.RequireAuthCookie)

			dashboard.Get("/", handlers.Dashboard.Page)
			dashboard.Post("/open", handlers.Dashboard.Open)
			dashboard.Post("/up", handlers.Dashboard.Up)
			dashboard.Post("/home", handlers.Dashboard.Home)
			dashboard.Post("/jump", handlers.Dashboard.Jump)
			dashboard.Post("/page", handlers.Dashboard.GoToPage)
			dashboard.Post("/upload", handlers.Dashboard.Upload)
			dashboard.Post("/mkdir", handlers.Dashboard.Mkdir)
			dashboard.Post("/rename", handlers.Dashboard.Rename)
			dashboard.Post("/delete", handlers.Dashboard.AskDelete)
			dashboard.Post("/delete/confirm", handlers.Dashboard.ConfirmDelete)
			dashboard.Post("/delete/cancel", handlers.Dashboard.CancelDelete)
		})
	})

	return r
}
