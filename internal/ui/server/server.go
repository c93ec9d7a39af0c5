package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	komfort "github.com/komfort-mfg/komfort-admin"
	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/middleware"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/config"
	"github.com/komfort-mfg/komfort-admin/internal/ui/handlers"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
)

type Server struct {
	router         *chi.Mux
	config         *config.Config
	logger         *slog.Logger
	handlerService *handlers.HandlerService
	cors           *cors.Middleware
	apiProxy       http.Handler
	static         fs.FS
}

// NewServer creates the ui server. The api client, CORS policy and proxy are built from cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	corsMiddleware, err := config.NewCORSMiddleware(cfg)
	if err != nil {
		return nil, err
	}

	apiProxy, err := newAPIProxy(cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}

	apiClient := client.NewClient(cfg.APIBaseURL, client.WithLogger(logger))

	s := &Server{
		router:         chi.NewRouter(),
		config:         cfg,
		logger:         logger,
		handlerService: handlers.NewHandlerService(apiClient, cfg.Environment),
		cors:           corsMiddleware,
		apiProxy:       apiProxy,
		static:         templates.Static(),
	}

	s.setupMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler exposes the router (tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
}

func (s *Server) registerRoutes() error {
	h := s.handlerService

	s.router.Get("/health/live", h.HandleLiveness)
	s.router.Get("/health/ready", h.HandleReadiness)

	if s.config.ExposeMetrics {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))

	// same-origin access to the backend for browser scripts
	s.router.Route(komfort.APIPathPrefix, func(r chi.Router) {
		r.Use(middleware.CORS(s.cors))
		r.Use(middleware.RequestSizeLimit(komfort.MaxAPIProxyRequestSize))
		r.Use(chimiddleware.Timeout(komfort.RequestTimeout))
		r.Handle("/*", s.apiProxy)
	})

	// dialog store endpoints
	s.router.Route(templates.DialogPath, func(r chi.Router) {
		r.Get("/", h.DialogFragment)
		r.Get("/events", h.DialogEvents)
		r.Post("/{id}/confirm", h.ConfirmDialog)
		r.Post("/{id}/cancel", h.CancelDialog)
		r.Post("/{id}/dismiss", h.DismissDialog)
	})

	var mountErr error
	s.router.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(komfort.RequestTimeout))
		r.Use(middleware.RequestSizeLimit(s.config.MaxFormSize))

		r.Get("/products/export", h.HandleExportProducts)
		r.Get("/partners/export", h.HandleExportPartners)
		r.Get("/warehouse/materials/export", h.HandleExportMaterials)
		r.Get("/staff/export", h.HandleExportEmployees)

		mountErr = routes.Mount(r, h.Views())
	})
	return mountErr
}

// newAPIProxy forwards /api/* unchanged to the backend
func newAPIProxy(apiBaseURL string) (http.Handler, error) {
	target, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			reqLogger := logger.ContextRequestLogger(r.Context())
			reqLogger.Error("api proxy error", slog.String("error", err.Error()))
			middleware.RespondWithError(w, r, http.StatusBadGateway, client.ConnectionErrorMessage)
		},
	}, nil
}

// Start runs the server until ctx is cancelled, then shuts it down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.ListenAddr()

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("UI server listening", slog.String("address", addr), slog.String("api", s.config.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), komfort.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
