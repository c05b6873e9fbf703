package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fintrackapp/fintrack/internal/config"
	"github.com/fintrackapp/fintrack/internal/domain"
	"github.com/fintrackapp/fintrack/internal/repository"
	"github.com/fintrackapp/fintrack/internal/service"
)

func main() {
	_ = godotenv.Load()

	logrus.Info("Starting planner scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(level)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	plannerService := service.NewPlannerService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewRecurringRepository(db),
		repository.NewGoalRepository(db),
		repository.NewBillRepository(db),
		repository.NewOverrideRepository(db),
		nil, // no cache involvement for batch jobs
		cfg,
	)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.SchedulerLocation()))

	// Schedule tasks
	setupCronJobs(c, plannerService)

	// Start the scheduler
	c.Start()
	logrus.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down scheduler...")
	c.Stop()
	logrus.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, plannerService *service.PlannerService) {
	// Daily job to mark overdue bills (runs at midnight)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		markOverdueBills(plannerService)
	})
	if err != nil {
		logrus.Errorf("Error scheduling overdue bill job: %v", err)
	}

	// Daily job to advance lapsed recurring due dates (runs just after midnight)
	_, err = c.AddFunc("0 5 0 * * *", func() {
		advanceRecurring(plannerService)
	})
	if err != nil {
		logrus.Errorf("Error scheduling recurring advancement job: %v", err)
	}

	logrus.Info("Cron jobs scheduled successfully")
}

func markOverdueBills(plannerService *service.PlannerService) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := plannerService.MarkOverdueBills(ctx, domain.Today())
	if err != nil {
		logrus.WithError(err).Error("marking overdue bills")
		return
	}
	logrus.WithField("bills", count).Info("overdue bill update finished")
}

func advanceRecurring(plannerService *service.PlannerService) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := plannerService.AdvanceRecurringDueDates(ctx, domain.Today())
	if err != nil {
		logrus.WithError(err).Error("advancing recurring due dates")
		return
	}
	logrus.WithField("templates", count).Info("recurring due date advancement finished")
}
