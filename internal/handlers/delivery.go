package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tapiocaria/internal/models"
)

// DeliveryHandler manages the neighborhood fee table.
type DeliveryHandler struct {
	db *gorm.DB
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(db *gorm.DB) *DeliveryHandler {
	return &DeliveryHandler{db: db}
}

// ListZones returns delivery zones. ?neighborhood= filters by name
// (case-insensitive), which the checkout uses to preview the fee.
func (h *DeliveryHandler) ListZones(c *fiber.Ctx) error {
	query := h.db.Model(&models.DeliveryZone{})

	if neighborhood := c.Query("neighborhood"); neighborhood != "" {
		query = query.Where("LOWER(neighborhood) = LOWER(?)", strings.TrimSpace(neighborhood))
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var zones []models.DeliveryZone
	if err := query.Order("neighborhood asc").Find(&zones).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": zones})
}

// CreateZone persists a new delivery zone.
func (h *DeliveryHandler) CreateZone(c *fiber.Ctx) error {
	var payload models.DeliveryZone
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.Neighborhood = strings.TrimSpace(payload.Neighborhood)
	if payload.Neighborhood == "" {
		return fiber.NewError(fiber.StatusBadRequest, "informe o bairro")
	}
	if payload.Fee < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "taxa inválida")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateZone updates an existing delivery zone.
func (h *DeliveryHandler) UpdateZone(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var zone models.DeliveryZone
	if err := h.db.First(&zone, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bairro não encontrado")
		}
		return err
	}

	var payload models.DeliveryZone
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = zone.ID
	if err := h.db.Model(&zone).Select("*").Omit("id", "created_at").Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": zone})
}

// DeleteZone removes a delivery zone by ID.
func (h *DeliveryHandler) DeleteZone(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.DeliveryZone{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
