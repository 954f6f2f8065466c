package models

import "time"

// Override actions recorded in the audit trail.
const (
	ActionVoid                  = "void"
	ActionMarkSoldOut           = "mark_sold_out"
	ActionHighDiscount          = "high_discount"
	ActionDiscountApplied       = "discount_applied"
	ActionEnableOnlineOrdering  = "enable_online_ordering"
	ActionDisableOnlineOrdering = "disable_online_ordering"
)

// OverrideLog is an append-only audit record for manager-gated actions.
// Rows are only ever inserted, never updated or deleted.
type OverrideLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EmployeeID      uint      `gorm:"not null;index" json:"employee_id"`
	Employee        Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	Action          string    `gorm:"type:varchar(40); not null" json:"action"`
	ItemID          *uint     `json:"item_id,omitempty"`
	DiscountPercent *float64  `gorm:"type:decimal(5,2)" json:"discount_percent,omitempty"`
	Amount          *float64  `gorm:"type:decimal(10,2)" json:"amount,omitempty"`
	Reason          string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
	ShiftID         *uint     `json:"shift_id,omitempty"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
}
