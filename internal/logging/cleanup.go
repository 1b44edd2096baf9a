package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes system_logs older than
// retention.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Cleanup(db, retention, time.Now())
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// Cleanup deletes every system log recorded before now minus retention.
func Cleanup(db *gorm.DB, retention time.Duration, now time.Time) (int64, error) {
	result := db.Where("timestamp < ?", now.Add(-retention)).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
