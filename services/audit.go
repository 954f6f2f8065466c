package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// AuditLog writes override-log entries. Entries are auxiliary: a failed
// write is logged as a warning and never blocks the primary action.
type AuditLog struct {
	DB *gorm.DB
}

func NewAuditLog(db *gorm.DB) *AuditLog {
	return &AuditLog{DB: db}
}

// Record appends one entry, stamping the timestamp if unset.
func (a *AuditLog) Record(entry models.OverrideLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := a.DB.Create(&entry).Error; err != nil {
		utils.ErrorLogger.Printf("override log write failed (action=%s employee=%d): %v",
			entry.Action, entry.EmployeeID, err)
	}
}

// List returns the audit trail, newest first.
func (a *AuditLog) List(limit int) ([]models.OverrideLog, error) {
	var entries []models.OverrideLog
	q := a.DB.Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
