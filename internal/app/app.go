package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"easyimg-web/internal/config"
	"easyimg-web/internal/easyimg"
	"easyimg-web/internal/handler"
	"easyimg-web/internal/listing"
	"easyimg-web/internal/proxy"
	"easyimg-web/internal/router"
	"easyimg-web/internal/session"
	"easyimg-web/web"
)

type App struct {
	server *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := easyimg.New(easyimg.Config{
		BaseURL: cfg.APIHost,
		Timeout: cfg.BackendTimeout,
	})

	apiProxy, err := proxy.New(cfg.APIHost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize api proxy: %w", err)
	}

	renderer, err := handler.NewRenderer(web.Assets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.CookieSecure)
	listings := listing.NewStore(client, cfg.PerPage)

	homeHandler := handler.NewHomeHandler(client, renderer, cfg.MaxUploadSize)
	loginHandler := handler.NewLoginHandler(client, sessions, listings, renderer, cfg.TurnstileSiteKey)
	dashboardHandler := handler.NewDashboardHandler(client, sessions, listings, renderer, cfg.MaxUploadSize)

	appRouter := router.New(cfg, router.Handlers{
		Home:      homeHandler,
		Login:     loginHandler,
		Dashboard: dashboardHandler,
	}, apiProxy, web.Assets)

	slog.Info("backend configured", "api_host", cfg.APIHost)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
