package models

// DeliveryZone maps a neighborhood to its delivery fee. Neighborhood names
// are matched case-insensitively when pricing an order.
type DeliveryZone struct {
	BaseModel
	Neighborhood string   `gorm:"uniqueIndex" json:"neighborhood"`
	Fee          float64  `gorm:"type:decimal(12,2)" json:"fee"`
	DistanceKm   *float64 `json:"distance_km"`
	IsActive     bool     `gorm:"default:true" json:"is_active"`
}
