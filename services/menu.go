package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/models"
)

// MenuService covers the availability mutations the register performs.
// Catalog CRUD stays in the controllers; sold-out is here because the
// authorization gate executes it.
type MenuService struct {
	DB    *gorm.DB
	Audit *AuditLog
}

func NewMenuService(db *gorm.DB, audit *AuditLog) *MenuService {
	return &MenuService{DB: db, Audit: audit}
}

// MarkSoldOut flips a menu item unavailable and appends the audit
// entry. The availability update is the primary action and must
// persist; the audit write is best-effort.
func (s *MenuService) MarkSoldOut(menuID uint, actor models.Employee) (*models.Menu, error) {
	var menu models.Menu
	if err := s.DB.First(&menu, menuID).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&menu).Update("is_available", false).Error; err != nil {
		return nil, fmt.Errorf("mark sold out: %w", err)
	}
	menu.IsAvailable = false

	s.Audit.Record(models.OverrideLog{
		EmployeeID: actor.ID,
		Action:     models.ActionMarkSoldOut,
		ItemID:     &menuID,
		ShiftID:    actor.CurrentShiftID,
	})

	events.BroadcastMenuUpdate(menu)
	return &menu, nil
}
