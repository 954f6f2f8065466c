package models

import "time"

// Shift is one timeclock record. ClockOut stays nil while the shift is
// open; TotalHours is stamped at clock-out.
type Shift struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"not null;index" json:"employee_id"`
	Employee   Employee   `gorm:"foreignKey:EmployeeID" json:"-"`
	ClockIn    time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	BreakStart *time.Time `json:"break_start,omitempty"`
	BreakEnd   *time.Time `json:"break_end,omitempty"`
	TotalHours *float64   `gorm:"type:decimal(6,2)" json:"total_hours,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
