package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestComputeZeroHoursIsZero(t *testing.T) {
	db := openTestDB(t)
	monitor := NewSPLHMonitor(db, time.Minute, []models.Role{models.RoleCashier})

	// Sales exist but no eligible labor hours today.
	db.Create(&models.Order{EmployeeID: 1, Items: "[]", Total: 120, PaymentType: "cash", Timestamp: time.Now()})

	snapshot, err := monitor.Compute(time.Now())
	assert.NoError(t, err)
	assert.Zero(t, snapshot.SPLH)
	assert.Equal(t, 120.0, snapshot.SalesTotal)
	assert.Zero(t, snapshot.HoursWorked)
}

func TestComputeDividesSalesByHours(t *testing.T) {
	db := openTestDB(t)
	monitor := NewSPLHMonitor(db, time.Minute, []models.Role{models.RoleCashier})

	now := time.Now()
	cashier := seedEmployee(t, db, "Casey", models.RoleCashier, "1111")

	clockOut := now
	db.Create(&models.Shift{
		EmployeeID: cashier.ID,
		ClockIn:    now.Add(-2 * time.Hour),
		ClockOut:   &clockOut,
	})
	db.Create(&models.Order{EmployeeID: cashier.ID, Items: "[]", Total: 100, PaymentType: "cash", Timestamp: now.Add(-time.Hour)})
	db.Create(&models.Order{EmployeeID: cashier.ID, Items: "[]", Total: 60, PaymentType: "card", Timestamp: now.Add(-30 * time.Minute)})

	snapshot, err := monitor.Compute(now)
	assert.NoError(t, err)
	assert.Equal(t, 160.0, snapshot.SalesTotal)
	assert.InDelta(t, 2.0, snapshot.HoursWorked, 0.01)
	assert.InDelta(t, 80.0, snapshot.SPLH, 0.5)
}

func TestComputeCountsOpenShiftsUpToNow(t *testing.T) {
	db := openTestDB(t)
	monitor := NewSPLHMonitor(db, time.Minute, []models.Role{models.RoleCashier})

	now := time.Now()
	cashier := seedEmployee(t, db, "Casey", models.RoleCashier, "1111")
	db.Create(&models.Shift{EmployeeID: cashier.ID, ClockIn: now.Add(-90 * time.Minute)})

	snapshot, err := monitor.Compute(now)
	assert.NoError(t, err)
	assert.InDelta(t, 1.5, snapshot.HoursWorked, 0.01)
}

func TestComputeExcludesIneligibleRoles(t *testing.T) {
	db := openTestDB(t)
	monitor := NewSPLHMonitor(db, time.Minute, []models.Role{models.RoleCashier})

	now := time.Now()
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	db.Create(&models.Shift{EmployeeID: cook.ID, ClockIn: now.Add(-4 * time.Hour)})

	snapshot, err := monitor.Compute(now)
	assert.NoError(t, err)
	assert.Zero(t, snapshot.HoursWorked)
}

func TestComputeIgnoresYesterday(t *testing.T) {
	db := openTestDB(t)
	monitor := NewSPLHMonitor(db, time.Minute, []models.Role{models.RoleCashier})

	now := time.Now()
	cashier := seedEmployee(t, db, "Casey", models.RoleCashier, "1111")

	yesterday := now.Add(-26 * time.Hour)
	yesterdayOut := now.Add(-18 * time.Hour)
	db.Create(&models.Shift{EmployeeID: cashier.ID, ClockIn: yesterday, ClockOut: &yesterdayOut})
	db.Create(&models.Order{EmployeeID: cashier.ID, Items: "[]", Total: 500, PaymentType: "cash", Timestamp: yesterday})

	snapshot, err := monitor.Compute(now)
	assert.NoError(t, err)
	assert.Zero(t, snapshot.SalesTotal)
	assert.Zero(t, snapshot.HoursWorked)
	assert.Zero(t, snapshot.SPLH)
}
