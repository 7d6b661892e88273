package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/tapiocaria/internal/config"
	"github.com/example/tapiocaria/internal/middleware"
	"github.com/example/tapiocaria/internal/models"
	"github.com/example/tapiocaria/internal/pricing"
	"github.com/example/tapiocaria/internal/services"
	"github.com/example/tapiocaria/internal/utils"
)

// OrderHandler manages order endpoints: submission, kanban listing, status
// advancement, cancellation and editing.
type OrderHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier *services.Notifier
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, cfg *config.Config, notifier *services.Notifier) *OrderHandler {
	return &OrderHandler{db: db, cfg: cfg, notifier: notifier}
}

// CreateOrder accepts a proposed order, recomputes every price from
// reference data and persists the order with its line items in one
// transaction. Open to anonymous callers; an authenticated session gets the
// order attached to its account.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var in pricing.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := in.Validate(); err != nil {
		return err
	}

	var scheduledFor *time.Time
	if in.ScheduledFor != "" {
		parsed, err := time.Parse(time.RFC3339, in.ScheduledFor)
		if err != nil {
			return pricing.NewError(pricing.CodeValidation, "data de agendamento inválida")
		}
		scheduledFor = &parsed
	}

	settings, err := h.loadSettings()
	if err != nil {
		return err
	}

	bypass := in.BypassStoreCheck && h.sessionIsStaff(c)
	if err := pricing.CheckStoreOpen(settings, bypass); err != nil {
		return err
	}

	ref, err := h.loadReference(&in)
	if err != nil {
		return err
	}
	// the store-closed bypass also clears category time windows
	ref.SkipTimeWindows = bypass

	quote, err := pricing.Compute(&in, ref)
	if err != nil {
		return err
	}

	order := models.Order{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		OrderType:     in.OrderType,
		Street:        in.Street,
		Neighborhood:  in.Neighborhood,
		PostalCode:    in.PostalCode,
		Reference:     in.Reference,
		Observations:  in.Observations,
		Subtotal:      quote.Subtotal,
		DeliveryFee:   quote.DeliveryFee,
		ExtrasFee:     quote.ExtrasFee,
		Total:         quote.Total,
		Status:        models.StatusPending,
		ScheduledFor:  scheduledFor,
	}

	// The verified session identity wins over anything the client declared.
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		order.UserID = &userID
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		items := buildOrderItems(order.ID, quote)
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("order persistence failed")
		return err
	}

	if settings.WhatsAppEnabled && settings.WebhookURL != "" {
		go h.notifier.NotifyNewOrder(settings.WebhookURL, order)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    order,
		"summary": fiber.Map{
			"subtotal":     order.Subtotal,
			"extras_fee":   order.ExtrasFee,
			"delivery_fee": order.DeliveryFee,
			"total":        order.Total,
		},
	})
}

// GetOrders returns a single order with items when ?id= is given, otherwise
// a paginated listing for the kitchen board.
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	if idParam := c.Query("id"); idParam != "" {
		id, err := uuid.Parse(idParam)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}

		var order models.Order
		if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "pedido não encontrado")
			}
			return err
		}

		return c.JSON(fiber.Map{"success": true, "data": order})
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order forward on the kanban board. Stages cannot be
// skipped or reverted; asking to advance an already delivered order is a
// no-op, not an error.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	order, err := h.orderByQueryID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Status {
	case models.StatusPending, models.StatusPreparing, models.StatusReady, models.StatusDelivered:
	case models.StatusCancelled:
		return fiber.NewError(fiber.StatusBadRequest, "cancelamento deve usar o endpoint próprio")
	default:
		return fiber.NewError(fiber.StatusBadRequest, "status inválido")
	}

	if order.Status == models.StatusCancelled {
		return pricing.NewError(pricing.CodeOrderCancelled, "pedido cancelado não pode ser alterado")
	}

	if order.Status == models.StatusDelivered && req.Status == models.StatusDelivered {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    order,
			"message": "pedido já está na etapa final",
		})
	}

	if !models.ValidStatusTransition(order.Status, req.Status) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("transição de %s para %s não é permitida", order.Status, req.Status))
	}

	if err := h.db.Model(order).Update("status", req.Status).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("status update failed")
		return err
	}
	order.Status = req.Status

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels a pending order inside the cancellation window. The
// window is checked against the persisted creation time on the server
// clock, never a client-supplied flag.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	order, err := h.orderByQueryID(c)
	if err != nil {
		return err
	}

	var req cancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	if order.Status == models.StatusCancelled {
		return pricing.NewError(pricing.CodeOrderCancelled, "pedido já está cancelado")
	}
	if order.Status != models.StatusPending {
		return fiber.NewError(fiber.StatusBadRequest, "apenas pedidos pendentes podem ser cancelados")
	}

	now := time.Now()
	if !order.WithinCancelWindow(now) {
		return pricing.NewError(pricing.CodeCancelWindowExpired,
			"o prazo de cancelamento deste pedido expirou")
	}

	updates := map[string]interface{}{
		"status":        models.StatusCancelled,
		"cancel_reason": req.Reason,
		"cancelled_at":  &now,
	}
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		updates["cancelled_by"] = &userID
	}

	if err := h.db.Model(order).Updates(updates).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("cancellation failed")
		return err
	}

	order.Status = models.StatusCancelled
	order.CancelReason = req.Reason
	order.CancelledAt = &now

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateOrderRequest struct {
	ID           string              `json:"id"`
	Items        []pricing.ItemInput `json:"items"`
	Observations string              `json:"observations"`
}

// UpdateOrder replaces the item set of an existing order and recomputes its
// totals with the same pricing rules as creation; the stored delivery fee
// is preserved. Concurrent edits are last-write-wins; nothing compares a
// version stamp before the write.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "pedido não encontrado")
		}
		return err
	}

	if order.Status == models.StatusCancelled {
		return pricing.NewError(pricing.CodeOrderCancelled, "pedido cancelado não pode ser editado")
	}

	// Reprice with the order typed as local so the delivery zone is not
	// re-resolved; the stored fee is kept as-is.
	in := pricing.OrderInput{
		CustomerName: order.CustomerName,
		OrderType:    models.OrderTypeLocal,
		Items:        req.Items,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	ref, err := h.loadReference(&in)
	if err != nil {
		return err
	}
	// availability and time windows gated the original submission; an
	// accepted order is repriced without re-gating
	ref.SkipAvailability = true
	ref.SkipTimeWindows = true

	quote, err := pricing.Compute(&in, ref)
	if err != nil {
		return err
	}

	now := time.Now()
	actorID, _ := middleware.GetCurrentUserID(c)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}

		items := buildOrderItems(order.ID, quote)
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"subtotal":         quote.Subtotal,
			"extras_fee":       quote.ExtrasFee,
			"total":            utils.Round2(quote.Subtotal + order.DeliveryFee),
			"observations":     req.Observations,
			"last_modified_at": &now,
			"last_modified_by": &actorID,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("order edit failed")
		return err
	}

	order.Subtotal = quote.Subtotal
	order.ExtrasFee = quote.ExtrasFee
	order.Total = utils.Round2(quote.Subtotal + order.DeliveryFee)
	order.Observations = req.Observations
	order.LastModifiedAt = &now
	order.LastModifiedBy = &actorID

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
		"summary": fiber.Map{
			"subtotal":     order.Subtotal,
			"extras_fee":   order.ExtrasFee,
			"delivery_fee": order.DeliveryFee,
			"total":        order.Total,
		},
	})
}

func (h *OrderHandler) orderByQueryID(c *fiber.Ctx) (*models.Order, error) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "pedido não encontrado")
		}
		return nil, err
	}

	return &order, nil
}

func (h *OrderHandler) loadSettings() (*models.Settings, error) {
	var settings models.Settings
	if err := h.db.First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.Settings{IsOpen: true}, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (h *OrderHandler) sessionIsStaff(c *fiber.Ctx) bool {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return false
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return user.IsActive && user.IsStaff()
}

// loadReference fetches the reference rows a quote needs, fresh on every
// request so pricing always reflects the current menu.
func (h *OrderHandler) loadReference(in *pricing.OrderInput) (*pricing.Reference, error) {
	ref := &pricing.Reference{
		Items: make(map[uuid.UUID]*models.MenuItem),
		Now:   time.Now().In(h.cfg.StoreLocation()),
	}

	var ids []uuid.UUID
	hasLunch := false
	for _, item := range in.Items {
		if item.Lunch != nil {
			hasLunch = true
			continue
		}
		if id, err := uuid.Parse(item.ItemID); err == nil {
			ids = append(ids, id)
		}
	}

	if len(ids) > 0 {
		var items []models.MenuItem
		if err := h.db.Preload("Category").Find(&items, "id IN ?", ids).Error; err != nil {
			return nil, err
		}
		for i := range items {
			ref.Items[items[i].ID] = &items[i]
		}

		if err := h.db.Find(&ref.Extras).Error; err != nil {
			return nil, err
		}
	}

	if in.OrderType == models.OrderTypeDelivery {
		if err := h.db.Find(&ref.Zones).Error; err != nil {
			return nil, err
		}
	}

	if hasLunch {
		if err := h.db.Find(&ref.LunchBases).Error; err != nil {
			return nil, err
		}
		if err := h.db.Where("weekday = ?", int(ref.Now.Weekday())).Find(&ref.LunchMeats).Error; err != nil {
			return nil, err
		}
		if err := h.db.Find(&ref.ExtraMeats).Error; err != nil {
			return nil, err
		}
		if err := h.db.Find(&ref.LunchSides).Error; err != nil {
			return nil, err
		}
	}

	return ref, nil
}

func buildOrderItems(orderID uuid.UUID, quote *pricing.Quote) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		item := models.OrderItem{
			OrderID:  orderID,
			ItemID:   line.ItemID,
			ItemName: line.Name,
			Quantity: line.Quantity,
			Price:    utils.Round2(line.UnitPrice),
			Wet:      line.Wet,
		}
		if line.Lunch != nil {
			item.Extras = models.ExtrasPayload(line.Lunch)
		} else if len(line.Extras) > 0 {
			item.Extras = models.ExtrasPayload(line.Extras)
		}
		items = append(items, item)
	}
	return items
}
