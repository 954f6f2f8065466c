package models

import "time"

type Employee struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"type:varchar(255); not null" json:"name"`
	// PINHash holds a bcrypt hash; the raw PIN is never stored.
	PINHash        string    `gorm:"type:varchar(255); not null; column:pin_hash" json:"-"`
	Role           Role      `gorm:"type:varchar(20); not null" json:"role"`
	IsClockedIn    bool      `gorm:"not null; default:false" json:"is_clocked_in"`
	CurrentShiftID *uint     `gorm:"index" json:"current_shift_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
