package models

import "time"

// Keys for the settings table.
const (
	SettingOnlineOrdering = "online_ordering"
)

// Setting is a keyed terminal setting, e.g. the online-ordering flag.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;type:varchar(64);uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:varchar(255); not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
