// Package server wires the HTTP router, handlers, and their dependencies,
// and owns startup and graceful shutdown. It is the composition root: every
// layer is constructed here and receives only the interfaces it needs.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/dev-network/internal/auth"
	"github.com/sakif/dev-network/internal/handler"
	"github.com/sakif/dev-network/internal/middleware"
	sqliteRepo "github.com/sakif/dev-network/internal/repository/sqlite"
	"github.com/sakif/dev-network/internal/service"
)

// Config holds server configuration, loaded from the environment by main.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// GitHub OAuth is optional; when the client ID is empty the OAuth
	// routes are not mounted.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server holds the router and the resources it owns. The database
// connection is closed during shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency chain: database → services → handlers →
// routes. Handlers never touch the database; services never touch HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and mounts every route at the top
// level, so the full API surface is visible in one place.
//
//	POST   /api/users                  → register
//	POST   /api/auth                   → login
//	GET    /api/auth                   → current user            (auth)
//	GET    /auth/github/login          → start GitHub OAuth
//	GET    /auth/github/callback       → finish GitHub OAuth
//	POST   /auth/logout                → clear session cookie
//	GET    /api/profile                → list all profiles
//	GET    /api/profile/user/{userID}  → one profile by owner
//	GET    /api/profile/me             → caller's profile        (auth)
//	POST   /api/profile                → create-or-merge profile (auth)
//	DELETE /api/profile                → delete profile+account  (auth)
func (s *Server) setupRoutes() error {
	// Middleware order matters: request ID and real IP first so the
	// logger sees them, recoverer outermost-but-one so panics still log.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	} else {
		s.logger.Warn("GitHub OAuth not configured, /auth/github routes disabled")
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	// No content repository yet; account deletion removes profile and user.
	profileService := service.NewProfileService(s.db, s.db, nil, s.logger)

	authHandler := handler.NewAuthHandler(authService, github, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)

	s.router.Post("/api/users", authHandler.HandleRegister)
	s.router.Post("/api/auth", authHandler.HandleLogin)
	s.router.Post("/auth/logout", authHandler.HandleLogout)

	if github != nil {
		s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
	}

	// Public profile reads. The static routes /api/profile/me registers
	// below take precedence over the {userID} wildcard in chi.
	s.router.Get("/api/profile", profileHandler.HandleList)
	s.router.Get("/api/profile/user/{userID}", profileHandler.HandleGetByUser)

	// Authenticated routes.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/api/auth", authHandler.HandleMe)
		r.Get("/api/profile/me", profileHandler.HandleGetMe)
		r.Post("/api/profile", profileHandler.HandleUpsert)
		r.Delete("/api/profile", profileHandler.HandleDelete)
	})

	return nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
