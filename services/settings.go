package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-pos/models"
)

// SettingsService reads and writes keyed terminal settings.
type SettingsService struct {
	DB    *gorm.DB
	Audit *AuditLog
}

func NewSettingsService(db *gorm.DB, audit *AuditLog) *SettingsService {
	return &SettingsService{DB: db, Audit: audit}
}

// OnlineOrderingEnabled reads the flag; a missing row means disabled.
func (s *SettingsService) OnlineOrderingEnabled() (bool, error) {
	var setting models.Setting
	err := s.DB.Where("setting_key = ?", models.SettingOnlineOrdering).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return setting.Value == "true", nil
}

// SetOnlineOrdering upserts the flag and audits who flipped it.
func (s *SettingsService) SetOnlineOrdering(enabled bool, actor models.Employee) error {
	value := "false"
	action := models.ActionDisableOnlineOrdering
	if enabled {
		value = "true"
		action = models.ActionEnableOnlineOrdering
	}

	setting := models.Setting{
		Key:   models.SettingOnlineOrdering,
		Value: value,
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error; err != nil {
		return err
	}

	s.Audit.Record(models.OverrideLog{
		EmployeeID: actor.ID,
		Action:     action,
		ShiftID:    actor.CurrentShiftID,
	})
	return nil
}
