package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/tapiocaria/internal/models"
	"github.com/example/tapiocaria/internal/utils"
)

// WetSurcharge is the fixed per-unit price of the "molhada" modifier
// (tapioca moistened with broth). Applied only when the item allows it and
// is not already wet by default.
const WetSurcharge = 1.00

// Reference is the server-held data a quote is computed from. It is loaded
// fresh for every request; client-sent prices never feed into it.
type Reference struct {
	Items      map[uuid.UUID]*models.MenuItem
	Extras     []models.Extra
	Zones      []models.DeliveryZone
	LunchBases []models.LunchBase
	// LunchMeats holds the meats included on the day the order is placed.
	LunchMeats []models.LunchMeat
	ExtraMeats []models.ExtraMeat
	LunchSides []models.LunchSide
	// Now is the instant of the request in store-local time. Category
	// time windows are evaluated against it.
	Now time.Time

	// SkipAvailability and SkipTimeWindows disable the corresponding sale
	// gates without touching the pricing itself. Edits of an already
	// accepted order skip both; the staff store-closed bypass also clears
	// the time windows.
	SkipAvailability bool
	SkipTimeWindows  bool
}

// QuotedLine is one priced order line. UnitPrice covers a single unit
// including its extras and modifiers; ExtrasUnit is the per-unit share of
// extras and modifiers alone.
type QuotedLine struct {
	ItemID     *uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
	ExtrasUnit float64
	Wet        bool
	Extras     []models.ExtraSelection
	Lunch      *models.LunchSelection
}

// Quote is the authoritative pricing of a submitted order.
type Quote struct {
	Lines       []QuotedLine
	Subtotal    float64
	ExtrasFee   float64
	DeliveryFee float64
	Total       float64
}

// CheckStoreOpen gates submissions on the store-open flag. The bypass is
// reserved for staff placing phone orders.
func CheckStoreOpen(settings *models.Settings, bypass bool) error {
	if settings.IsOpen || bypass {
		return nil
	}
	return NewError(CodeStoreClosed, "a loja está fechada no momento")
}

// Compute prices the submitted items against the reference data and
// resolves the delivery fee. Monetary sums are rounded to 2 decimal places
// only at the final totals so rounding error cannot compound.
func Compute(in *OrderInput, ref *Reference) (*Quote, error) {
	quote := &Quote{Lines: make([]QuotedLine, 0, len(in.Items))}

	var subtotal, extrasFee float64
	var unavailable []string

	for _, item := range in.Items {
		var line QuotedLine
		var err error

		if item.Lunch != nil {
			line, err = priceLunchLine(item, ref)
		} else {
			line, err = priceCatalogLine(item, ref, &unavailable)
		}
		if err != nil {
			return nil, err
		}
		if line.Quantity == 0 {
			// line skipped while unavailable items accumulate
			continue
		}

		subtotal += line.UnitPrice * float64(line.Quantity)
		extrasFee += line.ExtrasUnit * float64(line.Quantity)
		quote.Lines = append(quote.Lines, line)
	}

	if len(unavailable) > 0 {
		return nil, NewError(CodeItemUnavailable,
			fmt.Sprintf("itens indisponíveis: %s", strings.Join(unavailable, ", ")))
	}

	if in.OrderType == models.OrderTypeDelivery {
		fee, ok := ZoneFee(ref.Zones, in.Neighborhood)
		if !ok {
			return nil, NewError(CodeZoneNotFound,
				fmt.Sprintf("não entregamos no bairro %q", strings.TrimSpace(in.Neighborhood)))
		}
		quote.DeliveryFee = fee
	}

	quote.Subtotal = utils.Round2(subtotal)
	quote.ExtrasFee = utils.Round2(extrasFee)
	quote.Total = utils.Round2(quote.Subtotal + quote.DeliveryFee)
	return quote, nil
}

func priceCatalogLine(item ItemInput, ref *Reference, unavailable *[]string) (QuotedLine, error) {
	id, err := uuid.Parse(item.ItemID)
	if err != nil {
		return QuotedLine{}, NewError(CodeValidation, "item inválido")
	}

	menuItem, ok := ref.Items[id]
	if !ok {
		return QuotedLine{}, NewError(CodeItemNotFound, "item não encontrado no cardápio")
	}

	if !menuItem.Available && !ref.SkipAvailability {
		*unavailable = append(*unavailable, menuItem.Name)
		return QuotedLine{}, nil
	}

	if !ref.SkipTimeWindows {
		if err := checkCategoryWindow(menuItem.Category, ref.Now); err != nil {
			return QuotedLine{}, err
		}
	}

	name := menuItem.Name
	if menuItem.RequiresVariation {
		variation, ok := matchVariation(menuItem.Variations, item.Variation)
		if !ok {
			return QuotedLine{}, NewError(CodeValidation,
				fmt.Sprintf("escolha uma opção para %s", menuItem.Name))
		}
		name = fmt.Sprintf("%s (%s)", menuItem.Name, variation)
	}

	line := QuotedLine{
		ItemID:   &menuItem.ID,
		Name:     name,
		Quantity: item.Quantity,
	}
	if !menuItem.AllowQuantity {
		line.Quantity = 1
	}

	var extrasUnit float64
	if item.TapiocaMolhada && menuItem.AllowWet && !menuItem.WetByDefault {
		extrasUnit += WetSurcharge
		line.Wet = true
	}

	if menuItem.AllowExtras {
		resolved := resolveExtras(item.Extras, menuItem, ref.Extras)
		for _, ex := range resolved {
			extrasUnit += ex.Price
		}
		line.Extras = resolved
	}

	line.ExtrasUnit = extrasUnit
	line.UnitPrice = menuItem.BasePrice + extrasUnit
	return line, nil
}

// resolveExtras turns requested extras into persisted {name, price} pairs.
// Inline pairs are taken as-is when both fields are present and the price
// is not negative; everything
// else is resolved by name against the global extras of the item's category
// (or unscoped ones), then the item-specific extras. Requests that resolve
// to nothing are dropped, not rejected.
func resolveExtras(requested []ExtraInput, item *models.MenuItem, extras []models.Extra) []models.ExtraSelection {
	if len(requested) == 0 {
		return nil
	}

	resolved := make([]models.ExtraSelection, 0, len(requested))
	for _, req := range requested {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			continue
		}

		if req.Price != nil {
			// inline prices below zero are never honored
			if *req.Price < 0 {
				continue
			}
			resolved = append(resolved, models.ExtraSelection{Name: name, Price: *req.Price})
			continue
		}

		if found, ok := lookupExtra(extras, item, name); ok {
			resolved = append(resolved, found)
		}
	}

	if len(resolved) == 0 {
		return nil
	}
	return resolved
}

func lookupExtra(extras []models.Extra, item *models.MenuItem, name string) (models.ExtraSelection, bool) {
	// global first: unscoped, or scoped to the item's category
	for _, ex := range extras {
		if ex.ItemID != nil {
			continue
		}
		if ex.CategoryID != nil && (item.CategoryID == nil || *ex.CategoryID != *item.CategoryID) {
			continue
		}
		if strings.EqualFold(ex.Name, name) {
			return models.ExtraSelection{Name: ex.Name, Price: ex.Price}, true
		}
	}

	for _, ex := range extras {
		if ex.ItemID == nil || *ex.ItemID != item.ID {
			continue
		}
		if strings.EqualFold(ex.Name, name) {
			return models.ExtraSelection{Name: ex.Name, Price: ex.Price}, true
		}
	}

	return models.ExtraSelection{}, false
}

// ZoneFee finds the delivery fee for a neighborhood, matching
// case-insensitively among active zones.
func ZoneFee(zones []models.DeliveryZone, neighborhood string) (float64, bool) {
	want := strings.TrimSpace(neighborhood)
	for _, zone := range zones {
		if !zone.IsActive {
			continue
		}
		if strings.EqualFold(zone.Neighborhood, want) {
			return zone.Fee, true
		}
	}
	return 0, false
}

// checkCategoryWindow enforces per-category selling hours, e.g. a breakfast
// category closed after 11h or a lunch category open from 11h, in
// store-local time.
func checkCategoryWindow(category *models.Category, now time.Time) error {
	if category == nil {
		return nil
	}

	hour := now.Hour()
	if category.SellBeforeHour != nil && hour >= *category.SellBeforeHour {
		return NewError(CodeCategoryClosed,
			fmt.Sprintf("%s disponível apenas até %dh", category.Name, *category.SellBeforeHour))
	}
	if category.SellAfterHour != nil && hour < *category.SellAfterHour {
		return NewError(CodeCategoryClosed,
			fmt.Sprintf("%s disponível apenas a partir de %dh", category.Name, *category.SellAfterHour))
	}
	return nil
}

func matchVariation(options []string, chosen string) (string, bool) {
	chosen = strings.TrimSpace(chosen)
	if chosen == "" {
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(opt, chosen) {
			return opt, true
		}
	}
	return "", false
}
