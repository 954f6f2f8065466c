package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestMarkSoldOut(t *testing.T) {
	db := openTestDB(t)
	manager := seedEmployee(t, db, "Morgan", models.RoleManager, "4321")
	svc := NewMenuService(db, NewAuditLog(db))

	category := models.MenuCategory{Name: "Food"}
	assert.NoError(t, db.Create(&category).Error)
	menu := models.Menu{CategoryID: category.ID, Name: "Burger", Price: 8.00, IsAvailable: true}
	assert.NoError(t, db.Create(&menu).Error)

	updated, err := svc.MarkSoldOut(menu.ID, manager)
	assert.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	var reloaded models.Menu
	assert.NoError(t, db.First(&reloaded, menu.ID).Error)
	assert.False(t, reloaded.IsAvailable)

	var entry models.OverrideLog
	assert.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.ActionMarkSoldOut, entry.Action)
	assert.Equal(t, manager.ID, entry.EmployeeID)
	assert.NotNil(t, entry.ItemID)
	assert.Equal(t, menu.ID, *entry.ItemID)
}

func TestMarkSoldOutUnknownMenu(t *testing.T) {
	db := openTestDB(t)
	manager := seedEmployee(t, db, "Morgan", models.RoleManager, "4321")
	svc := NewMenuService(db, NewAuditLog(db))

	_, err := svc.MarkSoldOut(99, manager)
	assert.Error(t, err)
}
