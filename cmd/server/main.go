package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "campus-events-backend/internal/api/http"
	"campus-events-backend/internal/config"
	"campus-events-backend/internal/jobs"
	"campus-events-backend/internal/logger"
	"campus-events-backend/internal/repository/postgres"
	"campus-events-backend/internal/scheduler"
	"campus-events-backend/internal/security"
	"campus-events-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Campus Events Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Repositories
	store := postgres.NewStore(db)

	// Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Services
	queryTimeout := cfg.QueryTimeout()
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	credSvc := service.NewCredentialService(store.CredentialRepository, queryTimeout)
	eventSvc := service.NewEventService(store.EventRepository, store.RegistrationRepository, store.NotificationRepository, emailSvc, queryTimeout)
	regSvc := service.NewRegistrationService(store.RegistrationRepository, store.EventRepository, credSvc, store.NotificationRepository, emailSvc, queryTimeout)
	noteSvc := service.NewNotificationService(store.NotificationRepository, queryTimeout)

	// HTTP handlers
	eventHandler := httpapi.NewEventHandler(eventSvc)
	regHandler := httpapi.NewRegistrationHandler(regSvc)
	checkInHandler := httpapi.NewCheckInHandler(credSvc)
	noteHandler := httpapi.NewNotificationHandler(noteSvc)

	router := httpapi.NewRouter(tokenManager, eventHandler, regHandler, checkInHandler, noteHandler)

	// Scheduler for lifecycle jobs (APPROVED -> LIVE, LIVE -> CLOSED)
	jobRunner := jobs.NewJobRunner(store, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
