package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tapiocaria/internal/models"
)

func lunchRef() *Reference {
	ref := newRef()
	ref.LunchBases = []models.LunchBase{
		{Name: "Arroz e Feijão", PriceTwoMeats: 22.00, PriceOneMeat: 18.00, IsActive: true},
		{Name: "Baião de Dois", PriceTwoMeats: 25.00, PriceOneMeat: 20.00, IsActive: false},
	}
	ref.LunchMeats = []models.LunchMeat{
		{Name: "Frango Grelhado", Weekday: 2},
		{Name: "Carne de Panela", Weekday: 2},
	}
	ref.ExtraMeats = []models.ExtraMeat{{Name: "Picanha", Price: 8.00}}
	ref.LunchSides = []models.LunchSide{
		{Name: "Farofa", Price: 0},
		{Name: "Macaxeira Frita", Price: 4.00},
	}
	return ref
}

func lunchOrder(lunch *LunchInput, quantity int) *OrderInput {
	return orderWith(models.OrderTypeLocal, ItemInput{Quantity: quantity, Lunch: lunch})
}

func TestLunchTwoMeatsUsesTwoMeatPrice(t *testing.T) {
	quote, err := Compute(lunchOrder(&LunchInput{
		Base:  "arroz e feijão",
		Meats: []string{"Frango Grelhado", "Carne de Panela"},
	}, 1), lunchRef())
	require.NoError(t, err)

	assert.InDelta(t, 22.00, quote.Lines[0].UnitPrice, 1e-9)
	require.NotNil(t, quote.Lines[0].Lunch)
	assert.Equal(t, "lunch", quote.Lines[0].Lunch.Type)
	assert.Nil(t, quote.Lines[0].ItemID)
}

func TestLunchOneMeatUsesOneMeatPrice(t *testing.T) {
	quote, err := Compute(lunchOrder(&LunchInput{
		Base:  "Arroz e Feijão",
		Meats: []string{"Frango Grelhado"},
	}, 2), lunchRef())
	require.NoError(t, err)

	assert.InDelta(t, 18.00, quote.Lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 36.00, quote.Subtotal, 1e-9)
}

func TestLunchExtraMeatAndPaidSideSurcharges(t *testing.T) {
	quote, err := Compute(lunchOrder(&LunchInput{
		Base:       "Arroz e Feijão",
		Meats:      []string{"Frango Grelhado"},
		ExtraMeats: []string{"Picanha"},
		Sides:      []string{"Farofa", "Macaxeira Frita"},
	}, 1), lunchRef())
	require.NoError(t, err)

	line := quote.Lines[0]
	assert.InDelta(t, 30.00, line.UnitPrice, 1e-9) // 18 + 8 + 4
	assert.InDelta(t, 12.00, line.ExtrasUnit, 1e-9)
	assert.InDelta(t, 12.00, quote.ExtrasFee, 1e-9)

	require.NotNil(t, line.Lunch)
	assert.Equal(t, []string{"Farofa"}, line.Lunch.Sides)
	require.Len(t, line.Lunch.PaidSides, 1)
	assert.Equal(t, "Macaxeira Frita", line.Lunch.PaidSides[0].Name)
	assert.InDelta(t, 4.00, line.Lunch.PaidSides[0].Price, 1e-9)
}

func TestLunchMeatNotOnTodaysMenuRejected(t *testing.T) {
	_, err := Compute(lunchOrder(&LunchInput{
		Base:  "Arroz e Feijão",
		Meats: []string{"Peixe Frito"},
	}, 1), lunchRef())

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeValidation, perr.Code)
}

func TestLunchUnknownBaseRejected(t *testing.T) {
	_, err := Compute(lunchOrder(&LunchInput{
		Base:  "Inexistente",
		Meats: []string{"Frango Grelhado"},
	}, 1), lunchRef())

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeItemNotFound, perr.Code)
}

func TestLunchInactiveBaseRejected(t *testing.T) {
	_, err := Compute(lunchOrder(&LunchInput{
		Base:  "Baião de Dois",
		Meats: []string{"Frango Grelhado"},
	}, 1), lunchRef())

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeItemNotFound, perr.Code)
}

func TestLunchUnresolvedExtrasDropped(t *testing.T) {
	quote, err := Compute(lunchOrder(&LunchInput{
		Base:       "Arroz e Feijão",
		Meats:      []string{"Frango Grelhado"},
		ExtraMeats: []string{"Costela"},
		Sides:      []string{"Purê"},
	}, 1), lunchRef())
	require.NoError(t, err)

	line := quote.Lines[0]
	assert.InDelta(t, 18.00, line.UnitPrice, 1e-9)
	assert.Empty(t, line.Lunch.ExtraMeats)
	assert.Empty(t, line.Lunch.Sides)
	assert.Empty(t, line.Lunch.PaidSides)
}
