package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tapiocaria/internal/models"
)

func newItem(name string, price float64, mutate func(*models.MenuItem)) *models.MenuItem {
	item := &models.MenuItem{
		Name:          name,
		BasePrice:     price,
		Available:     true,
		AllowExtras:   true,
		AllowQuantity: true,
	}
	item.ID = uuid.New()
	if mutate != nil {
		mutate(item)
	}
	return item
}

func newRef(items ...*models.MenuItem) *Reference {
	ref := &Reference{
		Items: make(map[uuid.UUID]*models.MenuItem),
		Now:   time.Date(2026, 3, 10, 14, 0, 0, 0, time.FixedZone("store", -3*3600)),
	}
	for _, item := range items {
		ref.Items[item.ID] = item
	}
	return ref
}

func orderWith(orderType string, items ...ItemInput) *OrderInput {
	return &OrderInput{
		CustomerName: "Maria",
		OrderType:    orderType,
		Items:        items,
	}
}

func TestComputeLocalOrderWithExtra(t *testing.T) {
	item := newItem("Tapioca de Queijo", 10.00, nil)
	ref := newRef(item)
	ref.Extras = []models.Extra{{Name: "Carne de Sol", Price: 2.00}}

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 2,
		Extras:   []ExtraInput{{Name: "Carne de Sol"}},
	}), ref)
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	assert.InDelta(t, 12.00, quote.Lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 24.00, quote.Subtotal, 1e-9)
	assert.InDelta(t, 4.00, quote.ExtrasFee, 1e-9)
	assert.InDelta(t, 0.0, quote.DeliveryFee, 1e-9)
	assert.InDelta(t, 24.00, quote.Total, 1e-9)
}

func TestComputeDeliveryOrderAppliesZoneFee(t *testing.T) {
	item := newItem("Cuscuz Recheado", 15.00, nil)
	ref := newRef(item)
	ref.Zones = []models.DeliveryZone{{Neighborhood: "Centro", Fee: 5.00, IsActive: true}}

	in := orderWith(models.OrderTypeDelivery, ItemInput{ItemID: item.ID.String(), Quantity: 1})
	in.Neighborhood = "centro"

	quote, err := Compute(in, ref)
	require.NoError(t, err)

	assert.InDelta(t, 15.00, quote.Subtotal, 1e-9)
	assert.InDelta(t, 5.00, quote.DeliveryFee, 1e-9)
	assert.InDelta(t, 20.00, quote.Total, 1e-9)
}

func TestComputeDeliveryUnknownZoneRejected(t *testing.T) {
	item := newItem("Cuscuz Recheado", 15.00, nil)
	ref := newRef(item)
	ref.Zones = []models.DeliveryZone{{Neighborhood: "Centro", Fee: 5.00, IsActive: true}}

	in := orderWith(models.OrderTypeDelivery, ItemInput{ItemID: item.ID.String(), Quantity: 1})
	in.Neighborhood = "Bairro Inexistente"

	_, err := Compute(in, ref)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeZoneNotFound, perr.Code)
}

func TestComputeInactiveZoneIgnored(t *testing.T) {
	item := newItem("Cuscuz Recheado", 15.00, nil)
	ref := newRef(item)
	ref.Zones = []models.DeliveryZone{{Neighborhood: "Centro", Fee: 5.00, IsActive: false}}

	in := orderWith(models.OrderTypeDelivery, ItemInput{ItemID: item.ID.String(), Quantity: 1})
	in.Neighborhood = "Centro"

	_, err := Compute(in, ref)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeZoneNotFound, perr.Code)
}

func TestComputeUnavailableItemsNamed(t *testing.T) {
	available := newItem("Tapioca Simples", 8.00, nil)
	unavailable := newItem("Tapioca de Coco", 9.00, func(i *models.MenuItem) { i.Available = false })
	ref := newRef(available, unavailable)

	_, err := Compute(orderWith(models.OrderTypeLocal,
		ItemInput{ItemID: available.ID.String(), Quantity: 1},
		ItemInput{ItemID: unavailable.ID.String(), Quantity: 1},
	), ref)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeItemUnavailable, perr.Code)
	assert.Contains(t, perr.Message, "Tapioca de Coco")
}

func TestComputeUnknownItemRejected(t *testing.T) {
	ref := newRef()

	_, err := Compute(orderWith(models.OrderTypeLocal,
		ItemInput{ItemID: uuid.NewString(), Quantity: 1},
	), ref)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeItemNotFound, perr.Code)
}

func TestWetSurcharge(t *testing.T) {
	tests := []struct {
		name      string
		allowWet  bool
		byDefault bool
		requested bool
		wantUnit  float64
	}{
		{"requested and allowed", true, false, true, 11.00},
		{"not requested", true, false, false, 10.00},
		{"already wet by default", true, true, true, 10.00},
		{"item does not allow", false, false, true, 10.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem("Tapioca Molhada", 10.00, func(i *models.MenuItem) {
				i.AllowWet = tt.allowWet
				i.WetByDefault = tt.byDefault
			})
			ref := newRef(item)

			quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
				ItemID:         item.ID.String(),
				Quantity:       1,
				TapiocaMolhada: tt.requested,
			}), ref)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantUnit, quote.Lines[0].UnitPrice, 1e-9)
		})
	}
}

func TestResolveExtrasInlineTrustedOnlyWhenComplete(t *testing.T) {
	item := newItem("Tapioca Mista", 12.00, nil)
	ref := newRef(item)

	price := 3.50
	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 1,
		Extras: []ExtraInput{
			{Name: "Banana", Price: &price}, // inline pair, taken as-is
			{Name: "Inexistente"},           // no price, nothing to resolve: dropped
		},
	}), ref)
	require.NoError(t, err)

	require.Len(t, quote.Lines[0].Extras, 1)
	assert.Equal(t, "Banana", quote.Lines[0].Extras[0].Name)
	assert.InDelta(t, 15.50, quote.Lines[0].UnitPrice, 1e-9)
}

func TestResolveExtrasGlobalBeforeItemSpecific(t *testing.T) {
	categoryID := uuid.New()
	item := newItem("Tapioca de Frango", 11.00, func(i *models.MenuItem) {
		i.CategoryID = &categoryID
	})
	otherItemID := uuid.New()
	ref := newRef(item)
	ref.Extras = []models.Extra{
		{Name: "Queijo", Price: 2.00, CategoryID: &categoryID}, // category-scoped global
		{Name: "Catupiry", Price: 2.50, ItemID: &item.ID},      // item-specific
		{Name: "Catupiry", Price: 9.99, ItemID: &otherItemID},  // other item's, never used
	}

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 1,
		Extras:   []ExtraInput{{Name: "queijo"}, {Name: "catupiry"}},
	}), ref)
	require.NoError(t, err)

	require.Len(t, quote.Lines[0].Extras, 2)
	assert.InDelta(t, 15.50, quote.Lines[0].UnitPrice, 1e-9)
}

func TestNegativeInlineExtraPriceNeverHonored(t *testing.T) {
	item := newItem("Tapioca de Queijo", 10.00, nil)
	ref := newRef(item)

	discount := -100.00
	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 1,
		Extras:   []ExtraInput{{Name: "Desconto", Price: &discount}},
	}), ref)
	require.NoError(t, err)

	assert.Empty(t, quote.Lines[0].Extras)
	assert.InDelta(t, 10.00, quote.Lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 10.00, quote.Total, 1e-9)
}

func TestExtrasIgnoredWhenItemDisallows(t *testing.T) {
	item := newItem("Café", 4.00, func(i *models.MenuItem) { i.AllowExtras = false })
	ref := newRef(item)
	ref.Extras = []models.Extra{{Name: "Queijo", Price: 2.00}}

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 1,
		Extras:   []ExtraInput{{Name: "Queijo"}},
	}), ref)
	require.NoError(t, err)

	assert.Empty(t, quote.Lines[0].Extras)
	assert.InDelta(t, 4.00, quote.Lines[0].UnitPrice, 1e-9)
}

func TestComputeRoundsOnceAtTotals(t *testing.T) {
	// three units at 3.333: naive per-addition rounding would drift
	item := newItem("Suco", 3.333, nil)
	ref := newRef(item)

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 3,
	}), ref)
	require.NoError(t, err)

	assert.InDelta(t, 10.00, quote.Subtotal, 1e-9)
	assert.InDelta(t, 10.00, quote.Total, 1e-9)
}

func TestCategoryWindows(t *testing.T) {
	before := 11
	after := 11

	breakfast := &models.Category{Name: "Café da Manhã", SellBeforeHour: &before}
	lunch := &models.Category{Name: "Almoço", SellAfterHour: &after}

	tests := []struct {
		name     string
		category *models.Category
		hour     int
		wantErr  bool
	}{
		{"breakfast before cutoff", breakfast, 9, false},
		{"breakfast at cutoff", breakfast, 11, true},
		{"lunch before opening", lunch, 10, true},
		{"lunch after opening", lunch, 12, false},
		{"no window", nil, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem("Prato", 10.00, func(i *models.MenuItem) { i.Category = tt.category })
			ref := newRef(item)
			ref.Now = time.Date(2026, 3, 10, tt.hour, 30, 0, 0, time.FixedZone("store", -3*3600))

			_, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
				ItemID:   item.ID.String(),
				Quantity: 1,
			}), ref)

			if tt.wantErr {
				var perr *Error
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, CodeCategoryClosed, perr.Code)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUnavailableItemStillPricedWhenGateSkipped(t *testing.T) {
	item := newItem("Tapioca de Coco", 9.00, func(i *models.MenuItem) { i.Available = false })
	ref := newRef(item)
	ref.SkipAvailability = true

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 2,
	}), ref)
	require.NoError(t, err)

	assert.InDelta(t, 18.00, quote.Subtotal, 1e-9)
}

func TestCategoryWindowSkipped(t *testing.T) {
	before := 11
	breakfast := &models.Category{Name: "Café da Manhã", SellBeforeHour: &before}
	item := newItem("Cuscuz", 8.00, func(i *models.MenuItem) { i.Category = breakfast })

	ref := newRef(item)
	ref.Now = time.Date(2026, 3, 10, 14, 0, 0, 0, time.FixedZone("store", -3*3600))

	in := orderWith(models.OrderTypeLocal, ItemInput{ItemID: item.ID.String(), Quantity: 1})

	_, err := Compute(in, ref)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeCategoryClosed, perr.Code)

	ref.SkipTimeWindows = true
	quote, err := Compute(in, ref)
	require.NoError(t, err)
	assert.InDelta(t, 8.00, quote.Subtotal, 1e-9)
}

func TestVariationRequired(t *testing.T) {
	item := newItem("Açaí", 14.00, func(i *models.MenuItem) {
		i.RequiresVariation = true
		i.Variations = []string{"300ml", "500ml"}
	})
	ref := newRef(item)

	_, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 1,
	}), ref)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeValidation, perr.Code)

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:    item.ID.String(),
		Quantity:  1,
		Variation: "500ml",
	}), ref)
	require.NoError(t, err)
	assert.Equal(t, "Açaí (500ml)", quote.Lines[0].Name)
}

func TestQuantityForcedToOneWhenDisallowed(t *testing.T) {
	item := newItem("Combo Família", 40.00, func(i *models.MenuItem) { i.AllowQuantity = false })
	ref := newRef(item)

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 5,
	}), ref)
	require.NoError(t, err)

	assert.Equal(t, 1, quote.Lines[0].Quantity)
	assert.InDelta(t, 40.00, quote.Subtotal, 1e-9)
}

func TestCheckStoreOpen(t *testing.T) {
	closed := &models.Settings{IsOpen: false}

	err := CheckStoreOpen(closed, false)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeStoreClosed, perr.Code)

	assert.NoError(t, CheckStoreOpen(closed, true))
	assert.NoError(t, CheckStoreOpen(&models.Settings{IsOpen: true}, false))
}

func TestStoredUnitPriceNeverPreMultiplied(t *testing.T) {
	item := newItem("Tapioca de Queijo", 10.00, nil)
	ref := newRef(item)
	ref.Extras = []models.Extra{{Name: "Carne de Sol", Price: 2.00}}

	quote, err := Compute(orderWith(models.OrderTypeLocal, ItemInput{
		ItemID:   item.ID.String(),
		Quantity: 4,
		Extras:   []ExtraInput{{Name: "Carne de Sol"}},
	}), ref)
	require.NoError(t, err)

	line := quote.Lines[0]
	assert.InDelta(t, 12.00, line.UnitPrice, 1e-9)
	assert.InDelta(t, quote.Subtotal, line.UnitPrice*float64(line.Quantity), 1e-9)
}
