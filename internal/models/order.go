package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Order types accepted on submission.
const (
	OrderTypeLocal    = "local"
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Order lifecycle statuses. Orders move strictly forward through the kanban
// columns; cancelled is terminal and reachable only from pending.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// CancellationWindow bounds how long after creation a pending order may
// still be cancelled.
const CancellationWindow = 10 * time.Minute

// Order is one customer transaction. Total always equals subtotal plus
// delivery fee; extras are already folded into subtotal per item.
type Order struct {
	BaseModel
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	OrderType     string     `json:"order_type"`
	Street        string     `json:"street"`
	Neighborhood  string     `json:"neighborhood"`
	PostalCode    string     `json:"postal_code"`
	Reference     string     `json:"reference"`
	Subtotal      float64    `gorm:"type:decimal(12,2)" json:"subtotal"`
	DeliveryFee   float64    `gorm:"type:decimal(12,2)" json:"delivery_fee"`
	ExtrasFee     float64    `gorm:"type:decimal(12,2)" json:"extras_fee"`
	Total         float64    `gorm:"type:decimal(12,2)" json:"total"`
	Status        string     `gorm:"index;default:pending" json:"status"`
	Observations  string     `json:"observations"`
	ScheduledFor  *time.Time `json:"scheduled_for"`

	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User   *User      `json:"user,omitempty"`

	LastModifiedAt *time.Time `json:"last_modified_at"`
	LastModifiedBy *uuid.UUID `gorm:"type:uuid" json:"last_modified_by"`

	CancelReason string     `json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CancelledBy  *uuid.UUID `gorm:"type:uuid" json:"cancelled_by"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line within an order. Price is always the amount for a
// single unit, including the line's own extras and modifiers; the line
// total is Price * Quantity and is never stored.
type OrderItem struct {
	BaseModel
	OrderID  uuid.UUID      `gorm:"type:uuid;index" json:"order_id"`
	ItemID   *uuid.UUID     `gorm:"type:uuid" json:"item_id"`
	ItemName string         `json:"item_name"`
	Quantity int            `json:"quantity"`
	Price    float64        `gorm:"type:decimal(12,2)" json:"price"`
	Wet      bool           `json:"wet"`
	Extras   datatypes.JSON `json:"extras"`
}

// ExtraSelection is one resolved extra as persisted on an order item.
type ExtraSelection struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LunchSelection is the structured extras payload of a lunch-combo line.
// Consumers must branch on Type ("lunch") to tell it apart from the plain
// extras array.
type LunchSelection struct {
	Type       string           `json:"type"`
	Base       string           `json:"base"`
	Meats      []string         `json:"meats"`
	ExtraMeats []string         `json:"extraMeats"`
	Sides      []string         `json:"sides"`
	PaidSides  []ExtraSelection `json:"paidSides"`
}

// ExtrasPayload marshals either shape of the order_items.extras column.
func ExtrasPayload(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// ValidStatusTransition reports whether an order may move from one status
// to another. Stages cannot be skipped and never move backward.
func ValidStatusTransition(from, to string) bool {
	next, ok := nextStatus(from)
	return ok && next == to
}

// nextStatus returns the stage that follows the given one. ok is false when
// the status is final or unknown.
func nextStatus(from string) (next string, ok bool) {
	switch from {
	case StatusPending:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	default:
		return from, false
	}
}

// WithinCancelWindow reports whether the order can still be cancelled at
// the given instant. Only pending orders qualify, and only inside the
// window counted from creation.
func (o *Order) WithinCancelWindow(now time.Time) bool {
	return o.Status == StatusPending && now.Sub(o.CreatedAt) <= CancellationWindow
}
