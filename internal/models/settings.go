package models

// Settings is the single configuration row controlling whether the store
// currently accepts orders and how new orders are announced.
type Settings struct {
	BaseModel
	IsOpen           bool   `gorm:"default:true" json:"is_open"`
	AutoPrintEnabled bool   `json:"auto_print_enabled"`
	WebhookURL       string `json:"webhook_url"`
	WhatsAppEnabled  bool   `json:"whatsapp_enabled"`
}
