package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"railcare/config"
	"railcare/logger"
	"railcare/repository"
	"railcare/routes"
	"railcare/schema"
	"railcare/service"
	"railcare/worker"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()
	slog := zlog.Sugar()

	// Initialize database connection
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		slog.Fatalf("failed to open database connection: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		slog.Fatalf("failed to ping database: %v", err)
	}
	slog.Info("database connection established")

	schema.InitializeDatabase(db, slog)

	// Initialize repositories
	complaintRepo := repository.NewComplaintRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	templateRepo := repository.NewEmailTemplateRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, slog)
	notificationService := service.NewNotificationService(
		notificationRepo,
		userRepo,
		cfg.Portal.NotificationRetentionDays,
		slog,
	)
	complaintService := service.NewComplaintService(complaintRepo, categoryRepo, userRepo, notificationService, slog)
	lifecycleService := service.NewLifecycleService(complaintRepo, userRepo, notificationService, slog)
	categoryService := service.NewCategoryService(categoryRepo)
	emailTemplateService := service.NewEmailTemplateService(
		templateRepo,
		userRepo,
		notificationService,
		cfg.Portal.BaseURL,
		slog,
	)
	reportService := service.NewReportService(reportRepo)

	// Background cleanup of expired notifications
	cleanupWorker := worker.NewCleanupWorker(
		notificationService,
		time.Duration(cfg.Portal.CleanupIntervalHours)*time.Hour,
		slog,
	)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// Setup routes
	router := routes.SetupRoutes(
		complaintService,
		lifecycleService,
		categoryService,
		notificationService,
		emailTemplateService,
		userService,
		reportService,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTLHours,
	)

	// Add CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	slog.Infow("server starting", "addr", addr)
	slog.Fatal(http.ListenAndServe(addr, corsHandler(router)))
}
