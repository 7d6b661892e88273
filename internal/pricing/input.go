package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/example/tapiocaria/internal/models"
)

// Request bounds. Submissions outside them are rejected before any
// reference data is read.
const (
	MaxCustomerName  = 120
	MaxItemsPerOrder = 30
	MaxQuantity      = 50
)

var phonePattern = regexp.MustCompile(`^[0-9()+\-. ]{8,20}$`)

// OrderInput is a proposed order as submitted by a client. Any prices the
// client includes are ignored; the server recomputes everything.
type OrderInput struct {
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	OrderType     string      `json:"order_type"`
	Street        string      `json:"street"`
	Neighborhood  string      `json:"neighborhood"`
	PostalCode    string      `json:"postal_code"`
	Reference     string      `json:"reference"`
	Observations  string      `json:"observations"`
	Items         []ItemInput `json:"items"`
	ScheduledFor  string      `json:"scheduled_for"`
	// BypassStoreCheck lets trusted internal callers (staff placing phone
	// orders) submit while the store is flagged closed. Honored only for
	// staff sessions.
	BypassStoreCheck bool `json:"bypass_store_check"`
}

// ItemInput is one proposed order line. Regular lines carry an item_id;
// lunch-combo lines carry a lunch payload instead and have no catalog id.
type ItemInput struct {
	ItemID         string       `json:"item_id"`
	Quantity       int          `json:"quantity"`
	Variation      string       `json:"variation"`
	TapiocaMolhada bool         `json:"tapioca_molhada"`
	Extras         []ExtraInput `json:"extras"`
	Lunch          *LunchInput  `json:"lunch"`
}

// ExtraInput names a requested extra. When both Name and Price are present
// the pair is taken as-is (composite combo items priced by the client
// frontend); otherwise the extra is resolved server-side by name.
type ExtraInput struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

// LunchInput describes a lunch-combo line. Sides mix free and paid side
// names; the server partitions them by the configured prices.
type LunchInput struct {
	Base       string   `json:"base"`
	Meats      []string `json:"meats"`
	ExtraMeats []string `json:"extraMeats"`
	Sides      []string `json:"sides"`
}

// Validate checks the submission shape. It touches no reference data; the
// whole request fails on the first violation.
func (in *OrderInput) Validate() error {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return NewError(CodeValidation, "informe o nome do cliente")
	}
	if len(name) > MaxCustomerName {
		return NewError(CodeValidation, "nome do cliente muito longo")
	}

	if in.CustomerPhone != "" && !phonePattern.MatchString(in.CustomerPhone) {
		return NewError(CodeValidation, "telefone inválido")
	}

	switch in.OrderType {
	case models.OrderTypeLocal, models.OrderTypePickup, models.OrderTypeDelivery:
	default:
		return NewError(CodeValidation, "tipo de pedido inválido")
	}

	if len(in.Items) == 0 {
		return NewError(CodeValidation, "o pedido não possui itens")
	}
	if len(in.Items) > MaxItemsPerOrder {
		return NewError(CodeValidation, fmt.Sprintf("o pedido excede o limite de %d itens", MaxItemsPerOrder))
	}

	for i, item := range in.Items {
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return NewError(CodeValidation, fmt.Sprintf("quantidade inválida no item %d", i+1))
		}
		for _, extra := range item.Extras {
			if extra.Price != nil && *extra.Price < 0 {
				return NewError(CodeValidation, fmt.Sprintf("adicional com preço negativo no item %d", i+1))
			}
		}
		if item.Lunch != nil {
			if strings.TrimSpace(item.Lunch.Base) == "" {
				return NewError(CodeValidation, fmt.Sprintf("almoço sem base no item %d", i+1))
			}
			if n := len(item.Lunch.Meats); n < 1 || n > 2 {
				return NewError(CodeValidation, fmt.Sprintf("almoço deve ter 1 ou 2 carnes no item %d", i+1))
			}
			continue
		}
		if _, err := uuid.Parse(item.ItemID); err != nil {
			return NewError(CodeValidation, fmt.Sprintf("item %d inválido", i+1))
		}
	}

	if in.OrderType == models.OrderTypeDelivery && strings.TrimSpace(in.Neighborhood) == "" {
		return NewError(CodeValidation, "informe o bairro para entrega")
	}

	return nil
}
