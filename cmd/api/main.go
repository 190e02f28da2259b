package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/swingnotes/api/internal/config"
	"github.com/swingnotes/api/internal/email"
	"github.com/swingnotes/api/internal/handler"
	"github.com/swingnotes/api/internal/metrics"
	"github.com/swingnotes/api/internal/middleware"
	"github.com/swingnotes/api/internal/repository"
	"github.com/swingnotes/api/internal/service"
	"github.com/swingnotes/api/internal/token"
	"github.com/swingnotes/api/web"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	if err := runMigrations(cfg.DBConn); err != nil {
		logger.Fatalf("Migration error: %v", err)
	}

	metrics.Init()

	// Initialize layers
	repo := repository.NewRepository(db)
	tokens := token.NewManager(cfg.JWTSecret)
	var mail service.Mailer
	if cfg.MailEnabled() {
		mail = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, repo, tokens, mail, logger)
	h := handler.NewHandler(svc, svc, logger)

	rateLimiter := middleware.NewRateLimiter(logger)
	defer rateLimiter.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Use(rateLimiter.Middleware)

	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "Swing Notes API is running")
	}).Methods("GET")

	// Public routes
	r.HandleFunc("/users/register", h.Register).Methods("POST")
	r.HandleFunc("/users/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/notes").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(tokens))
	authRouter.HandleFunc("", h.ListNotes).Methods("GET")
	authRouter.HandleFunc("/search", h.SearchNotes).Methods("GET")
	authRouter.HandleFunc("/{id}", h.GetNote).Methods("GET")
	authRouter.HandleFunc("", h.CreateNote).Methods("POST")
	authRouter.HandleFunc("/{id}", h.UpdateNote).Methods("PUT")
	authRouter.HandleFunc("/{id}", h.DeleteNote).Methods("DELETE")

	// Static client
	r.PathPrefix("/").Handler(web.Handler()).Methods("GET")

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
	)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      cors(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

// runMigrations applies pending schema migrations. DB_CONN must be a
// postgres:// URL, which both lib/pq and migrate accept.
func runMigrations(dbConn string) error {
	m, err := migrate.New("file://migrations", dbConn)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
