package worker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ormanet/lumeo-api/internal/service"
)

// OrderSyncWorker imports the latest order export dropped by the management
// system on a fixed interval. The file is re-read wholesale each run; imports
// are idempotent at the store level, so a re-run of the same export is safe.
type OrderSyncWorker struct {
	orderService *service.OrderService
	dropDir      string
	interval     time.Duration

	lastModTime time.Time
}

// NewOrderSyncWorker constructs an OrderSyncWorker.
func NewOrderSyncWorker(orderService *service.OrderService, dropDir string, interval time.Duration) *OrderSyncWorker {
	return &OrderSyncWorker{
		orderService: orderService,
		dropDir:      dropDir,
		interval:     interval,
	}
}

// Start begins the sync loop and listens for context cancellation.
func (w *OrderSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Str("dir", w.dropDir).Msg("Starting order sync worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Order sync worker stopped")
			return
		}
	}
}

// candidate export filenames, preferred order.
var dropFileNames = []string{"orders_latest.csv", "orders_latest.xlsx"}

func (w *OrderSyncWorker) run() {
	path, info := w.findDropFile()
	if path == "" {
		return
	}

	// Skip unchanged files so the hourly tick does not re-import the same
	// export over and over.
	if !info.ModTime().After(w.lastModTime) {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to read order export")
		return
	}

	result, err := w.orderService.Import(data, filepath.Base(path))
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Order sync import failed")
		return
	}
	w.lastModTime = info.ModTime()

	log.Info().
		Str("file", path).
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Int64("removed", result.RemovedOlderThan).
		Msg("Order sync complete")
}

func (w *OrderSyncWorker) findDropFile() (string, os.FileInfo) {
	for _, name := range dropFileNames {
		path := filepath.Join(w.dropDir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, info
		}
	}
	return "", nil
}
