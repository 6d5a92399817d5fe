package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/equipment-registry/internal/config"
	"github.com/crucial707/equipment-registry/internal/db"
	"github.com/crucial707/equipment-registry/internal/handlers"
	"github.com/crucial707/equipment-registry/internal/logging"
	"github.com/crucial707/equipment-registry/internal/middleware"
	"github.com/crucial707/equipment-registry/internal/repo"
	"github.com/crucial707/equipment-registry/internal/service"
	"github.com/crucial707/equipment-registry/internal/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cfg.DBOptions()
	conn, err := db.Connect(ctx, opts)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.MigrateOnStart {
		if err := db.Migrate(opts.URL()); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	router, err := newRouter(conn, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if cfg.TLSEnabled() {
			logger.Info("listening", "addr", srv.Addr, "tls", true)
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			logger.Info("listening", "addr", srv.Addr, "tls", false)
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter wires the equipment pages plus /health, /ready and /metrics.
func newRouter(conn *sql.DB, cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	views, err := web.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	svc := service.NewEquipmentService(conn, repo.NewEquipmentRepo(), logger)
	h := &handlers.EquipmentHandler{Service: svc, Views: views, Logger: logger}

	errorPage := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, http.StatusInternalServerError, web.PageError, map[string]interface{}{})
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Prometheus)
	r.Use(middleware.Recoverer(logger, errorPage))
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))

	r.NotFound(h.NotFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := conn.PingContext(ctx); err != nil {
			logger.WarnContext(r.Context(), "readiness check failed", "error", err)
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Index)
	r.Get("/add", h.AddForm)
	r.Get("/edit/{id}", h.EditForm)
	r.Get("/view/{id}", h.View)

	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))
		r.Use(middleware.WriteRateLimiter(cfg.WriteRatePerMin).Middleware)
		r.Post("/add", h.Add)
		r.Post("/edit/{id}", h.Edit)
		r.Post("/delete/{id}", h.Delete)
	})

	return r, nil
}
