package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/tapiocaria/internal/models"
)

// Notifier relays new-order announcements to the configured webhook (the
// WhatsApp bridge). Delivery is best effort: failures are logged and never
// fail the order.
type Notifier struct {
	client *http.Client
}

// NewNotifier creates a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	Event   string  `json:"event"`
	OrderID string  `json:"order_id"`
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}

// NotifyNewOrder posts a formatted order summary to the webhook.
func (n *Notifier) NotifyNewOrder(webhookURL string, order models.Order) {
	payload := webhookPayload{
		Event:   "order.created",
		OrderID: order.ID.String(),
		Message: FormatOrderMessage(order),
		Total:   order.Total,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("webhook payload marshal failed")
		return
	}

	resp, err := n.client.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("webhook notification failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"status":   resp.StatusCode,
		}).Warn("webhook returned non-success status")
	}
}

// FormatOrderMessage renders the order as the text message sent to the
// store's WhatsApp group.
func FormatOrderMessage(order models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*NOVO PEDIDO*\n")
	fmt.Fprintf(&b, "Cliente: %s\n", order.CustomerName)
	if order.CustomerPhone != "" {
		fmt.Fprintf(&b, "Telefone: %s\n", order.CustomerPhone)
	}
	fmt.Fprintf(&b, "Tipo: %s\n", orderTypeLabel(order.OrderType))

	if order.OrderType == models.OrderTypeDelivery {
		fmt.Fprintf(&b, "Endereço: %s, %s\n", order.Street, order.Neighborhood)
	}

	b.WriteString("\nItens:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.ItemName, FormatPrice(item.Price*float64(item.Quantity)))
	}

	if order.DeliveryFee > 0 {
		fmt.Fprintf(&b, "\nEntrega: %s", FormatPrice(order.DeliveryFee))
	}
	fmt.Fprintf(&b, "\n*Total: %s*", FormatPrice(order.Total))

	if order.Observations != "" {
		fmt.Fprintf(&b, "\nObs: %s", order.Observations)
	}

	return b.String()
}

// FormatPrice renders a monetary amount in Brazilian format.
func FormatPrice(amount float64) string {
	return "R$ " + strings.ReplaceAll(fmt.Sprintf("%.2f", amount), ".", ",")
}

func orderTypeLabel(orderType string) string {
	switch orderType {
	case models.OrderTypeDelivery:
		return "Entrega"
	case models.OrderTypePickup:
		return "Retirada"
	default:
		return "Local"
	}
}
