package models

import "time"

// Order is the finalized record written at payment completion. Line
// detail travels as a JSON snapshot so the record stays immutable even
// if the menu changes later.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EmployeeID      uint      `gorm:"not null;index" json:"employee_id"`
	Employee        Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	ShiftID         *uint     `gorm:"index" json:"shift_id,omitempty"`
	Items           string    `gorm:"type:text; not null" json:"items"`
	Subtotal        float64   `gorm:"type:decimal(10,2); not null" json:"subtotal"`
	Tax             float64   `gorm:"type:decimal(10,2); not null" json:"tax"`
	DiscountPercent float64   `gorm:"type:decimal(5,2); not null; default:0" json:"discount_percent"`
	Tip             float64   `gorm:"type:decimal(10,2); not null; default:0" json:"tip"`
	Total           float64   `gorm:"type:decimal(10,2); not null" json:"total"`
	PaymentType     string    `gorm:"type:varchar(10); not null" json:"payment_type"`
	CashAmount      float64   `gorm:"type:decimal(10,2); not null; default:0" json:"cash_amount"`
	CardAmount      float64   `gorm:"type:decimal(10,2); not null; default:0" json:"card_amount"`
	ChangeDue       float64   `gorm:"type:decimal(10,2); not null; default:0" json:"change_due"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
