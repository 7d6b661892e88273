package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/tapiocaria/internal/models"
)

// SettingsHandler manages the singleton settings row.
type SettingsHandler struct {
	db *gorm.DB
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings returns the full settings row (admin endpoint). A missing row
// reads as the defaults.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := h.db.First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"success": true, "data": models.Settings{IsOpen: true}})
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": settings})
}

// GetPublicSettings exposes only the flags the ordering and kitchen fronts
// need, without the webhook configuration.
func (h *SettingsHandler) GetPublicSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := h.db.First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			settings = models.Settings{IsOpen: true}
		} else {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"is_open":            settings.IsOpen,
			"auto_print_enabled": settings.AutoPrintEnabled,
		},
	})
}

// UpdateSettings creates or updates the singleton settings row (admin
// endpoint).
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var input models.Settings
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if url := strings.TrimSpace(input.WebhookURL); url != "" {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fiber.NewError(fiber.StatusBadRequest, "URL de webhook inválida")
		}
		input.WebhookURL = url
	}

	var existing models.Settings
	result := h.db.First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		if err := h.db.Create(&input).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": input})
	} else if result.Error != nil {
		return result.Error
	}

	// Explicit field-by-field update so false flags are persisted and
	// created_at is never overwritten by a zero value from the payload.
	existing.IsOpen = input.IsOpen
	existing.AutoPrintEnabled = input.AutoPrintEnabled
	existing.WebhookURL = input.WebhookURL
	existing.WhatsAppEnabled = input.WhatsAppEnabled

	if err := h.db.Model(&existing).Select("is_open", "auto_print_enabled", "webhook_url", "whats_app_enabled").
		Updates(&existing).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": existing})
}
