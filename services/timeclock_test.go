package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestClockInOpensShift(t *testing.T) {
	db := openTestDB(t)
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	svc := NewTimeclockService(db)

	shift, err := svc.ClockIn(cook.ID)
	assert.NoError(t, err)
	assert.Nil(t, shift.ClockOut)

	var reloaded models.Employee
	assert.NoError(t, db.First(&reloaded, cook.ID).Error)
	assert.True(t, reloaded.IsClockedIn)
	assert.NotNil(t, reloaded.CurrentShiftID)
	assert.Equal(t, shift.ID, *reloaded.CurrentShiftID)
}

func TestClockInTwice(t *testing.T) {
	db := openTestDB(t)
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	svc := NewTimeclockService(db)

	_, err := svc.ClockIn(cook.ID)
	assert.NoError(t, err)
	_, err = svc.ClockIn(cook.ID)
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
}

func TestClockOutClosesShift(t *testing.T) {
	db := openTestDB(t)
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	svc := NewTimeclockService(db)

	_, err := svc.ClockIn(cook.ID)
	assert.NoError(t, err)

	shift, err := svc.ClockOut(cook.ID)
	assert.NoError(t, err)
	assert.NotNil(t, shift.ClockOut)
	assert.NotNil(t, shift.TotalHours)

	var reloaded models.Employee
	assert.NoError(t, db.First(&reloaded, cook.ID).Error)
	assert.False(t, reloaded.IsClockedIn)
	assert.Nil(t, reloaded.CurrentShiftID)
}

func TestClockOutWithoutShift(t *testing.T) {
	db := openTestDB(t)
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	svc := NewTimeclockService(db)

	_, err := svc.ClockOut(cook.ID)
	assert.ErrorIs(t, err, ErrNotClockedIn)
}

func TestBreakStamps(t *testing.T) {
	db := openTestDB(t)
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	svc := NewTimeclockService(db)

	assert.ErrorIs(t, svc.StartBreak(cook.ID), ErrNotClockedIn)

	shift, err := svc.ClockIn(cook.ID)
	assert.NoError(t, err)
	assert.NoError(t, svc.StartBreak(cook.ID))
	assert.NoError(t, svc.EndBreak(cook.ID))

	var reloaded models.Shift
	assert.NoError(t, db.First(&reloaded, shift.ID).Error)
	assert.NotNil(t, reloaded.BreakStart)
	assert.NotNil(t, reloaded.BreakEnd)
}

func TestAutoClockOutIfOverdue(t *testing.T) {
	db := openTestDB(t)
	cook := seedEmployee(t, db, "Jordan", models.RoleCook, "3333")
	svc := NewTimeclockService(db)

	shift, err := svc.ClockIn(cook.ID)
	assert.NoError(t, err)

	// Backdate the clock-in past the limit.
	stale := time.Now().Add(-10 * time.Hour)
	assert.NoError(t, db.Model(shift).Update("clock_in", stale).Error)

	var employee models.Employee
	assert.NoError(t, db.First(&employee, cook.ID).Error)

	closed, err := svc.AutoClockOutIfOverdue(&employee, 9*time.Hour)
	assert.NoError(t, err)
	assert.True(t, closed)
	assert.False(t, employee.IsClockedIn)

	// A fresh shift within the limit stays open.
	shift2, err := svc.ClockIn(cook.ID)
	assert.NoError(t, err)
	assert.NoError(t, db.First(&employee, cook.ID).Error)
	closed, err = svc.AutoClockOutIfOverdue(&employee, 9*time.Hour)
	assert.NoError(t, err)
	assert.False(t, closed)

	var open models.Shift
	assert.NoError(t, db.First(&open, shift2.ID).Error)
	assert.Nil(t, open.ClockOut)
}
