package models

import "time"

// HeldOrder is a parked ticket snapshot. It is owned by the employee
// who parked it and disappears when resumed or deleted.
type HeldOrder struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	Items      string    `gorm:"type:text; not null" json:"items"`
	Subtotal   float64   `gorm:"type:decimal(10,2); not null" json:"subtotal"`
	Tax        float64   `gorm:"type:decimal(10,2); not null" json:"tax"`
	Total      float64   `gorm:"type:decimal(10,2); not null" json:"total"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
