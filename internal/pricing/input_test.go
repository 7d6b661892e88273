package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tapiocaria/internal/models"
)

func validInput() *OrderInput {
	return &OrderInput{
		CustomerName: "João da Silva",
		OrderType:    models.OrderTypeLocal,
		Items:        []ItemInput{{ItemID: uuid.NewString(), Quantity: 1}},
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	require.NoError(t, validInput().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderInput)
	}{
		{"empty name", func(in *OrderInput) { in.CustomerName = "  " }},
		{"name too long", func(in *OrderInput) {
			for len(in.CustomerName) <= MaxCustomerName {
				in.CustomerName += "aaaaaaaaaa"
			}
		}},
		{"bad phone", func(in *OrderInput) { in.CustomerPhone = "abc" }},
		{"bad order type", func(in *OrderInput) { in.OrderType = "drive-thru" }},
		{"no items", func(in *OrderInput) { in.Items = nil }},
		{"too many items", func(in *OrderInput) {
			in.Items = make([]ItemInput, MaxItemsPerOrder+1)
			for i := range in.Items {
				in.Items[i] = ItemInput{ItemID: uuid.NewString(), Quantity: 1}
			}
		}},
		{"zero quantity", func(in *OrderInput) { in.Items[0].Quantity = 0 }},
		{"quantity over cap", func(in *OrderInput) { in.Items[0].Quantity = MaxQuantity + 1 }},
		{"malformed item id", func(in *OrderInput) { in.Items[0].ItemID = "not-a-uuid" }},
		{"negative inline extra price", func(in *OrderInput) {
			discount := -100.00
			in.Items[0].Extras = []ExtraInput{{Name: "Desconto", Price: &discount}}
		}},
		{"delivery without neighborhood", func(in *OrderInput) { in.OrderType = models.OrderTypeDelivery }},
		{"lunch without base", func(in *OrderInput) {
			in.Items[0] = ItemInput{Quantity: 1, Lunch: &LunchInput{Meats: []string{"Frango"}}}
		}},
		{"lunch with three meats", func(in *OrderInput) {
			in.Items[0] = ItemInput{Quantity: 1, Lunch: &LunchInput{
				Base:  "Arroz",
				Meats: []string{"Frango", "Carne", "Porco"},
			}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			err := in.Validate()
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, CodeValidation, perr.Code)
		})
	}
}

func TestValidatePhoneFormats(t *testing.T) {
	ok := []string{"(85) 99999-9999", "+55 85 3333-1234", "85999991234"}
	for _, phone := range ok {
		in := validInput()
		in.CustomerPhone = phone
		assert.NoError(t, in.Validate(), phone)
	}
}
