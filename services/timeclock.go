package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var (
	ErrAlreadyClockedIn = errors.New("employee is already clocked in")
	ErrNotClockedIn     = errors.New("employee is not clocked in")
)

// TimeclockService manages shift records. Every role uses the
// timeclock, even ones that never open the register.
type TimeclockService struct {
	DB *gorm.DB
}

func NewTimeclockService(db *gorm.DB) *TimeclockService {
	return &TimeclockService{DB: db}
}

// ClockIn opens a shift. The shift row must persist first: the employee
// is only marked clocked-in once a shift id exists to point at.
func (s *TimeclockService) ClockIn(employeeID uint) (*models.Shift, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		return nil, err
	}
	if employee.IsClockedIn {
		return nil, ErrAlreadyClockedIn
	}

	shift := models.Shift{
		EmployeeID: employeeID,
		ClockIn:    time.Now(),
	}
	if err := s.DB.Create(&shift).Error; err != nil {
		return nil, fmt.Errorf("persist shift: %w", err)
	}

	if err := s.DB.Model(&employee).Updates(map[string]interface{}{
		"is_clocked_in":    true,
		"current_shift_id": shift.ID,
	}).Error; err != nil {
		return nil, fmt.Errorf("mark clocked in: %w", err)
	}

	utils.InfoLogger.Printf("employee %d clocked in (shift %d)", employeeID, shift.ID)
	return &shift, nil
}

// ClockOut closes the employee's current shift and stamps total hours.
func (s *TimeclockService) ClockOut(employeeID uint) (*models.Shift, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		return nil, err
	}
	if !employee.IsClockedIn || employee.CurrentShiftID == nil {
		return nil, ErrNotClockedIn
	}

	var shift models.Shift
	if err := s.DB.First(&shift, *employee.CurrentShiftID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	return s.closeShift(&employee, &shift, now)
}

// StartBreak stamps the break start on the open shift.
func (s *TimeclockService) StartBreak(employeeID uint) error {
	return s.stampBreak(employeeID, "break_start")
}

// EndBreak stamps the break end on the open shift.
func (s *TimeclockService) EndBreak(employeeID uint) error {
	return s.stampBreak(employeeID, "break_end")
}

func (s *TimeclockService) stampBreak(employeeID uint, column string) error {
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		return err
	}
	if !employee.IsClockedIn || employee.CurrentShiftID == nil {
		return ErrNotClockedIn
	}

	return s.DB.Model(&models.Shift{}).
		Where("id = ?", *employee.CurrentShiftID).
		Update(column, time.Now()).Error
}

// AutoClockOutIfOverdue force-closes a shift that has run longer than
// the configured limit. Called at login so a forgotten clock-out from
// yesterday does not bleed into today's labor hours.
func (s *TimeclockService) AutoClockOutIfOverdue(employee *models.Employee, limit time.Duration) (bool, error) {
	if !employee.IsClockedIn || employee.CurrentShiftID == nil {
		return false, nil
	}

	var shift models.Shift
	if err := s.DB.First(&shift, *employee.CurrentShiftID).Error; err != nil {
		return false, err
	}

	now := time.Now()
	if now.Sub(shift.ClockIn) <= limit {
		return false, nil
	}

	if _, err := s.closeShift(employee, &shift, now); err != nil {
		return false, err
	}
	utils.InfoLogger.Printf("employee %d auto clocked out after %.1fh", employee.ID, now.Sub(shift.ClockIn).Hours())
	return true, nil
}

func (s *TimeclockService) closeShift(employee *models.Employee, shift *models.Shift, now time.Time) (*models.Shift, error) {
	totalHours := now.Sub(shift.ClockIn).Hours()

	if err := s.DB.Model(shift).Updates(map[string]interface{}{
		"clock_out":   now,
		"total_hours": totalHours,
	}).Error; err != nil {
		return nil, fmt.Errorf("close shift: %w", err)
	}

	if err := s.DB.Model(employee).Updates(map[string]interface{}{
		"is_clocked_in":    false,
		"current_shift_id": nil,
	}).Error; err != nil {
		return nil, fmt.Errorf("mark clocked out: %w", err)
	}

	shift.ClockOut = &now
	shift.TotalHours = &totalHours
	employee.IsClockedIn = false
	employee.CurrentShiftID = nil
	return shift, nil
}
