package models

// LunchBase is one base option of the daily lunch plate. PriceTwoMeats is
// charged when the plate carries two included meats, PriceOneMeat when only
// one.
type LunchBase struct {
	BaseModel
	Name          string  `json:"name"`
	PriceTwoMeats float64 `gorm:"type:decimal(12,2)" json:"price_two_meats"`
	PriceOneMeat  float64 `gorm:"type:decimal(12,2)" json:"price_one_meat"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`
}

// LunchMeat is an included meat offered on a given weekday (0 = Sunday).
type LunchMeat struct {
	BaseModel
	Name    string `json:"name"`
	Weekday int    `gorm:"index" json:"weekday"`
}

// ExtraMeat is a meat that can be added to the plate for a surcharge.
type ExtraMeat struct {
	BaseModel
	Name  string  `json:"name"`
	Price float64 `gorm:"type:decimal(12,2)" json:"price"`
}

// LunchSide is a side dish; Price zero means it is included for free.
type LunchSide struct {
	BaseModel
	Name  string  `json:"name"`
	Price float64 `gorm:"type:decimal(12,2)" json:"price"`
}
