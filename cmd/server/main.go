package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fintrackapp/fintrack/internal/config"
	"github.com/fintrackapp/fintrack/internal/handler"
	"github.com/fintrackapp/fintrack/internal/repository"
	"github.com/fintrackapp/fintrack/internal/service"
	"github.com/fintrackapp/fintrack/pkg/response"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	billRepo := repository.NewBillRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)

	// Initialize service and handlers
	plannerService := service.NewPlannerService(accountRepo, txRepo, recurringRepo, goalRepo, billRepo, overrideRepo, redisClient, cfg)
	plannerHandler := handler.NewPlannerHandler(plannerService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout)

	// Setup routes
	router := setupRoutes(plannerHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(plannerHandler *handler.PlannerHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/accounts", plannerHandler.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts", plannerHandler.ListAccounts).Methods("GET")
	api.HandleFunc("/accounts/{accountId}/schedule", plannerHandler.GetSchedule).Methods("GET")
	api.HandleFunc("/accounts/{accountId}/schedule/{paymentNumber}/override", plannerHandler.SetOverride).Methods("PUT")
	api.HandleFunc("/accounts/{accountId}/schedule/{paymentNumber}/override", plannerHandler.ClearOverride).Methods("DELETE")
	api.HandleFunc("/forecast", plannerHandler.GetForecast).Methods("GET")
	api.HandleFunc("/transactions", plannerHandler.CreateTransaction).Methods("POST")
	api.HandleFunc("/recurring", plannerHandler.CreateRecurring).Methods("POST")
	api.HandleFunc("/goals", plannerHandler.CreateGoal).Methods("POST")
	api.HandleFunc("/bills", plannerHandler.CreateBill).Methods("POST")

	return router
}
