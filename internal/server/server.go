// Package server serves the catalog page and the host side of its links.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shellmarks/catalog/internal/db"
	"github.com/shellmarks/catalog/internal/history"
	"github.com/shellmarks/catalog/internal/linkrouter"
	"github.com/shellmarks/catalog/internal/livereload"
	"github.com/shellmarks/catalog/internal/logging"
	"github.com/shellmarks/catalog/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the catalog server.
type Server struct {
	cfg        Config
	db         *db.DB
	history    *history.Store
	generator  *site.Generator
	links      *linkrouter.Router
	reload     *livereload.Hub
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a catalog server. database and hub may be nil, which
// disables the history endpoints and live reload respectively.
func New(cfg Config, database *db.DB, gen *site.Generator, links *linkrouter.Router, hub *livereload.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		cfg:       cfg,
		db:        database,
		generator: gen,
		links:     links,
		reload:    hub,
		logger:    logger,
	}
	if database != nil {
		s.history = history.NewStore(database)
	}
	if hub != nil && hub.CheckOrigin == nil {
		hub.CheckOrigin = func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		}
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Live reload connections outlive the request timeout.
	if s.reload != nil {
		r.Get("/ws/reload", s.reload.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handlePage)
		r.Get("/style.css", s.handleAsset("text/css; charset=utf-8", site.Stylesheet))
		r.Get("/script.js", s.handleAsset("application/javascript; charset=utf-8", site.Script))
		r.Get("/search-index.json", s.handleSearchIndex)

		r.Post("/api/links", s.handleLink)
		r.Get("/api/sections", s.handleSections)
		r.Get("/api/sections/{name}", s.handleSection)

		if s.history != nil {
			history.RegisterRoutes(r, s.history)
		}
	})

	return r
}

// originAllowed reports whether a browser page at origin may use the host
// side of the server. It accepts the same origins as the CORS policy.
// Requests without an Origin header come from non-browser clients.
func (s *Server) originAllowed(origin string) bool {
	if origin == "" || s.cfg.AllowAll {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "http" {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("catalog server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and disconnects live reload
// clients.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
