package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tapiocaria/internal/config"
	"github.com/example/tapiocaria/internal/models"
)

// LunchHandler manages the daily lunch-plate configuration: bases, included
// meats per weekday, extra meats and side dishes.
type LunchHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewLunchHandler constructs LunchHandler.
func NewLunchHandler(db *gorm.DB, cfg *config.Config) *LunchHandler {
	return &LunchHandler{db: db, cfg: cfg}
}

// GetConfiguration returns the full lunch configuration plus the meats
// included today (store-local weekday).
func (h *LunchHandler) GetConfiguration(c *fiber.Ctx) error {
	var bases []models.LunchBase
	if err := h.db.Order("name asc").Find(&bases).Error; err != nil {
		return err
	}

	var meats []models.LunchMeat
	if err := h.db.Order("weekday asc, name asc").Find(&meats).Error; err != nil {
		return err
	}

	var extraMeats []models.ExtraMeat
	if err := h.db.Order("name asc").Find(&extraMeats).Error; err != nil {
		return err
	}

	var sides []models.LunchSide
	if err := h.db.Order("name asc").Find(&sides).Error; err != nil {
		return err
	}

	today := int(time.Now().In(h.cfg.StoreLocation()).Weekday())
	todayMeats := make([]models.LunchMeat, 0)
	for _, meat := range meats {
		if meat.Weekday == today {
			todayMeats = append(todayMeats, meat)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"bases":       bases,
			"meats":       meats,
			"today_meats": todayMeats,
			"extra_meats": extraMeats,
			"sides":       sides,
		},
	})
}

// CreateBase persists a new lunch base option.
func (h *LunchHandler) CreateBase(c *fiber.Ctx) error {
	var payload models.LunchBase
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "informe o nome da base")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateBase updates a lunch base option.
func (h *LunchHandler) UpdateBase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var base models.LunchBase
	if err := h.db.First(&base, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "base não encontrada")
		}
		return err
	}

	var payload models.LunchBase
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = base.ID
	if err := h.db.Model(&base).Select("*").Omit("id", "created_at").Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": base})
}

// DeleteBase removes a lunch base option.
func (h *LunchHandler) DeleteBase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.LunchBase{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateMeat persists an included meat for a weekday.
func (h *LunchHandler) CreateMeat(c *fiber.Ctx) error {
	var payload models.LunchMeat
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "informe o nome da carne")
	}
	if payload.Weekday < 0 || payload.Weekday > 6 {
		return fiber.NewError(fiber.StatusBadRequest, "dia da semana inválido")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteMeat removes an included meat.
func (h *LunchHandler) DeleteMeat(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.LunchMeat{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateExtraMeat persists an extra-cost meat.
func (h *LunchHandler) CreateExtraMeat(c *fiber.Ctx) error {
	var payload models.ExtraMeat
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "informe o nome da carne")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteExtraMeat removes an extra-cost meat.
func (h *LunchHandler) DeleteExtraMeat(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.ExtraMeat{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSide persists a side dish. Price zero marks a free side.
func (h *LunchHandler) CreateSide(c *fiber.Ctx) error {
	var payload models.LunchSide
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "informe o nome do acompanhamento")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteSide removes a side dish.
func (h *LunchHandler) DeleteSide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.LunchSide{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
