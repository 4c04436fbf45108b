package worker

import (
	"time"

	"go.uber.org/zap"

	"railcare/service"
)

// CleanupWorker is a background worker that periodically purges old notifications
type CleanupWorker struct {
	notificationService *service.NotificationService
	interval            time.Duration
	stopChan            chan struct{}
	running             bool
	log                 *zap.SugaredLogger
}

// NewCleanupWorker creates a new cleanup worker
func NewCleanupWorker(
	notificationService *service.NotificationService,
	interval time.Duration,
	log *zap.SugaredLogger,
) *CleanupWorker {
	return &CleanupWorker{
		notificationService: notificationService,
		interval:            interval,
		stopChan:            make(chan struct{}),
		running:             false,
		log:                 log,
	}
}

// Start starts the cleanup worker in its own goroutine
func (w *CleanupWorker) Start() {
	if w.running {
		w.log.Warn("cleanup worker is already running")
		return
	}

	w.running = true
	w.log.Infow("cleanup worker started", "interval", w.interval)

	go w.run()
}

// Stop stops the cleanup worker
func (w *CleanupWorker) Stop() {
	if !w.running {
		return
	}

	close(w.stopChan)
	w.running = false
	w.log.Info("cleanup worker stopped")
}

// run is the main worker loop
func (w *CleanupWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once immediately on start
	w.cleanup()

	for {
		select {
		case <-ticker.C:
			w.cleanup()
		case <-w.stopChan:
			return
		}
	}
}

// cleanup purges expired notifications. Safe to call multiple times.
func (w *CleanupWorker) cleanup() {
	startTime := time.Now()

	deleted, err := w.notificationService.CleanupOldNotifications()
	if err != nil {
		w.log.Errorw("notification cleanup failed", "error", err)
		return
	}

	w.log.Infow("notification cleanup completed",
		"deleted", deleted,
		"duration", time.Since(startTime))
}
