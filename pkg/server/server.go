package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/matchday-lens/core/internal/config"
	"github.com/matchday-lens/core/pkg/database/pool"
	"github.com/matchday-lens/core/pkg/handlers/favorites"
	"github.com/matchday-lens/core/pkg/handlers/fixtures"
	"github.com/matchday-lens/core/pkg/handlers/health"
	"github.com/matchday-lens/core/pkg/handlers/leagues"
	"github.com/matchday-lens/core/pkg/handlers/matches"
	"github.com/matchday-lens/core/pkg/handlers/standings"
	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/middleware"
	"github.com/matchday-lens/core/pkg/prefs"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/services"
)

// Server represents the API server
type Server struct {
	router   *http.ServeMux
	port     string
	logger   *logger.Logger
	store    prefs.Store
	handlers struct {
		health    *health.Handler
		matches   *matches.Handler
		fixtures  *fixtures.Handler
		leagues   *leagues.Handler
		standings *standings.Handler
		favorites *favorites.Handler
	}
}

// New creates a new server instance. Without DATABASE_URL the preference
// store runs in memory, so the service works against the provider alone.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	store, err := newStore(cfg, log)
	if err != nil {
		return nil, err
	}

	client := provider.NewClient(cfg, log)
	views := services.NewViewService(client, store, log)

	server := &Server{
		router: http.NewServeMux(),
		port:   port,
		logger: log,
		store:  store,
	}

	server.handlers.health = health.NewHandler(log)
	server.handlers.matches = matches.NewHandler(views, log)
	server.handlers.fixtures = fixtures.NewHandler(views, log)
	server.handlers.leagues = leagues.NewHandler(views, log)
	server.handlers.standings = standings.NewHandler(views, log)
	server.handlers.favorites = favorites.NewHandler(store, log)

	server.setupRoutes()

	return server, nil
}

func newStore(cfg *config.Config, log *logger.Logger) (prefs.Store, error) {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		log.Info().
			Str("action", "store_memory").
			Msg("No database configured, using in-memory preference store")
		return prefs.NewMemoryStore(), nil
	}

	ctx := context.Background()
	dbPool, err := pool.New(ctx, cfg.DatabaseURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := prefs.NewPostgresStore(dbPool, log)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	log.Info().
		Str("action", "db_connected").
		Msg("Database connection pool established")
	return store, nil
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.CORS(middleware.RequestID(s.logger, h))
	}

	// Health check endpoint
	s.router.HandleFunc("/health", wrap(s.handlers.health.HealthCheck))

	// Simple root endpoint
	s.router.HandleFunc("/", wrap(func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintf(w, "Matchday API Service - OK"); err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	}))

	// Match endpoints
	s.router.HandleFunc("/api/matches/h2h", wrap(s.handlers.matches.HeadToHead))
	s.router.HandleFunc("/api/matches/", wrap(s.handlers.matches.Detail)) // handles /api/matches/{id}

	// Fixture endpoints
	s.router.HandleFunc("/api/fixtures", wrap(s.handlers.fixtures.Window))

	// League endpoints
	s.router.HandleFunc("/api/leagues", wrap(s.handlers.leagues.Detail))

	// League table on its own
	s.router.HandleFunc("/api/standings", wrap(s.handlers.standings.Table))

	// Preference endpoints
	s.router.HandleFunc("/api/favorites", wrap(s.handlers.favorites.Handle))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().
		Str("action", "server_start").
		Str("port", s.port).
		Msg("Starting API server")

	if err := http.ListenAndServe(":"+s.port, s.router); err != nil {
		return fmt.Errorf("server failed to start on port %s: %w", s.port, err)
	}

	return nil
}

// Close gracefully shuts down the server and closes the preference store
func (s *Server) Close() {
	if s.store != nil {
		s.store.Close()
		s.logger.Info().Msg("Preference store closed")
	}
}
