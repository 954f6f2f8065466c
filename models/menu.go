package models

import "time"

type Menu struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CategoryID     uint            `gorm:"not null" json:"category_id"`
	Category       MenuCategory    `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name           string          `gorm:"type:varchar(255); not null" json:"name"`
	Price          float64         `gorm:"type:decimal(10,2); not null" json:"price"`
	IsAvailable    bool            `gorm:"not null; default:true" json:"is_available"`
	ModifierGroups []ModifierGroup `gorm:"foreignKey:MenuID" json:"modifier_groups"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// HasModifiers reports whether ringing this item up needs the modifier
// dialog at all. Items without groups confirm immediately.
func (m Menu) HasModifiers() bool {
	return len(m.ModifierGroups) > 0
}

// GroupCardinality distinguishes the two selection behaviors a group
// can have instead of leaving callers to infer them from MaxSelections.
type GroupCardinality int

const (
	// ExclusiveChoice replaces any prior selection (radio semantics).
	ExclusiveChoice GroupCardinality = iota
	// MultiSelect allows up to MaxSelections options (checkbox semantics).
	MultiSelect
)

type ModifierGroup struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	MenuID        uint             `gorm:"not null;index" json:"menu_id"`
	Name          string           `gorm:"type:varchar(255); not null" json:"name"`
	MaxSelections int              `gorm:"not null; default:1" json:"max_selections"`
	Required      bool             `gorm:"not null; default:false" json:"required"`
	SortOrder     int              `gorm:"not null; default:0" json:"sort_order"`
	Options       []ModifierOption `gorm:"foreignKey:GroupID" json:"options"`
}

func (g ModifierGroup) Cardinality() GroupCardinality {
	if g.MaxSelections <= 1 {
		return ExclusiveChoice
	}
	return MultiSelect
}

type ModifierOption struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	GroupID    uint    `gorm:"not null;index" json:"group_id"`
	Name       string  `gorm:"type:varchar(255); not null" json:"name"`
	PriceDelta float64 `gorm:"type:decimal(10,2); not null; default:0" json:"price_delta"`
}
