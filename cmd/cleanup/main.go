// cleanup runs one notification retention pass and exits.
// Usage: from project root, run: go run ./cmd/cleanup
// Requires .env (or env) with RAILCARE_DATABASE_* and RAILCARE_AUTH_JWT_SECRET.
package main

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"railcare/config"
	"railcare/logger"
	"railcare/repository"
	"railcare/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()
	slog := zlog.Sugar()

	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		slog.Fatalf("DB open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		slog.Fatalf("DB ping: %v", err)
	}

	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationService := service.NewNotificationService(
		notificationRepo,
		userRepo,
		cfg.Portal.NotificationRetentionDays,
		slog,
	)

	deleted, err := notificationService.CleanupOldNotifications()
	if err != nil {
		slog.Fatalf("cleanup failed: %v", err)
	}
	slog.Infow("cleanup completed",
		"deleted", deleted,
		"retention_days", cfg.Portal.NotificationRetentionDays)
}
