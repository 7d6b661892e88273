package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Category groups menu items. SellBeforeHour/SellAfterHour bound the hours
// (store-local time) during which the category's items may be ordered:
// breakfast categories close after SellBeforeHour, lunch categories open at
// SellAfterHour. Nil means no restriction.
type Category struct {
	BaseModel
	Name           string     `json:"name"`
	Slug           string     `gorm:"uniqueIndex" json:"slug"`
	SortOrder      int        `json:"sort_order"`
	SellBeforeHour *int       `json:"sell_before_hour"`
	SellAfterHour  *int       `json:"sell_after_hour"`
	Items          []MenuItem `json:"items,omitempty"`
}

// MenuItem is one orderable product from the catalog.
type MenuItem struct {
	BaseModel
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	BasePrice         float64        `gorm:"type:decimal(12,2)" json:"base_price"`
	CategoryID        *uuid.UUID     `gorm:"type:uuid" json:"category_id"`
	Category          *Category      `json:"category,omitempty"`
	Available         bool           `gorm:"default:true" json:"available"`
	AllowExtras       bool           `json:"allow_extras"`
	AllowQuantity     bool           `gorm:"default:true" json:"allow_quantity"`
	AllowWet          bool           `json:"allow_wet"`
	WetByDefault      bool           `json:"wet_by_default"`
	RequiresVariation bool           `json:"requires_variation"`
	Variations        pq.StringArray `gorm:"type:text[]" json:"variations"`
	Image             string         `json:"image"`
}

// Extra is a priced add-on. Scoped to one item via ItemID, to every item of
// a category via CategoryID, or global when both are nil.
type Extra struct {
	BaseModel
	Name       string     `json:"name"`
	Price      float64    `gorm:"type:decimal(12,2)" json:"price"`
	ItemID     *uuid.UUID `gorm:"type:uuid" json:"item_id"`
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id"`
}
