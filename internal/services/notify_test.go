package services

import (
	"strings"
	"testing"

	"github.com/example/tapiocaria/internal/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 5,00"},
		{12.3, "R$ 12,30"},
		{1234.56, "R$ 1234,56"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.amount); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatOrderMessageDelivery(t *testing.T) {
	order := models.Order{
		CustomerName:  "Maria Silva",
		CustomerPhone: "(85) 99999-0000",
		OrderType:     models.OrderTypeDelivery,
		Street:        "Rua das Flores, 10",
		Neighborhood:  "Centro",
		DeliveryFee:   5.00,
		Total:         29.00,
		Observations:  "sem cebola",
		Items: []models.OrderItem{
			{ItemName: "Tapioca de Frango", Quantity: 2, Price: 12.00},
		},
	}

	msg := FormatOrderMessage(order)

	for _, want := range []string{
		"*NOVO PEDIDO*",
		"Cliente: Maria Silva",
		"Telefone: (85) 99999-0000",
		"Tipo: Entrega",
		"Endereço: Rua das Flores, 10, Centro",
		"2x Tapioca de Frango - R$ 24,00",
		"Entrega: R$ 5,00",
		"*Total: R$ 29,00*",
		"Obs: sem cebola",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatOrderMessagePickupOmitsAddressAndFee(t *testing.T) {
	order := models.Order{
		CustomerName: "João",
		OrderType:    models.OrderTypePickup,
		Total:        12.00,
		Items: []models.OrderItem{
			{ItemName: "Tapioca Simples", Quantity: 1, Price: 12.00},
		},
	}

	msg := FormatOrderMessage(order)

	if !strings.Contains(msg, "Tipo: Retirada") {
		t.Errorf("message missing pickup label:\n%s", msg)
	}
	if strings.Contains(msg, "Endereço") {
		t.Errorf("pickup message should not include address:\n%s", msg)
	}
	if strings.Contains(msg, "Entrega:") {
		t.Errorf("pickup message should not include delivery fee line:\n%s", msg)
	}
}
