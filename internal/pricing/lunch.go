package pricing

import (
	"fmt"
	"strings"

	"github.com/example/tapiocaria/internal/models"
)

// priceLunchLine prices a lunch-combo line from the lunch configuration
// tables. The base price depends on whether one or two included meats were
// chosen; extra meats and paid sides are surcharges on the unit price.
func priceLunchLine(item ItemInput, ref *Reference) (QuotedLine, error) {
	in := item.Lunch

	base, ok := lookupLunchBase(ref.LunchBases, in.Base)
	if !ok {
		return QuotedLine{}, NewError(CodeItemNotFound,
			fmt.Sprintf("opção de almoço %q não encontrada", strings.TrimSpace(in.Base)))
	}

	meats := make([]string, 0, len(in.Meats))
	for _, meat := range in.Meats {
		found := false
		for _, lm := range ref.LunchMeats {
			if strings.EqualFold(lm.Name, strings.TrimSpace(meat)) {
				meats = append(meats, lm.Name)
				found = true
				break
			}
		}
		if !found {
			return QuotedLine{}, NewError(CodeValidation,
				fmt.Sprintf("carne %q não está no cardápio de hoje", strings.TrimSpace(meat)))
		}
	}

	unitPrice := base.PriceOneMeat
	if len(meats) == 2 {
		unitPrice = base.PriceTwoMeats
	}

	var extrasUnit float64
	extraMeats := make([]string, 0, len(in.ExtraMeats))
	// unresolved extra meats and sides are dropped, like regular extras
	for _, meat := range in.ExtraMeats {
		for _, em := range ref.ExtraMeats {
			if strings.EqualFold(em.Name, strings.TrimSpace(meat)) {
				extraMeats = append(extraMeats, em.Name)
				extrasUnit += em.Price
				break
			}
		}
	}

	var sides []string
	var paidSides []models.ExtraSelection
	for _, side := range in.Sides {
		for _, ls := range ref.LunchSides {
			if !strings.EqualFold(ls.Name, strings.TrimSpace(side)) {
				continue
			}
			if ls.Price > 0 {
				paidSides = append(paidSides, models.ExtraSelection{Name: ls.Name, Price: ls.Price})
				extrasUnit += ls.Price
			} else {
				sides = append(sides, ls.Name)
			}
			break
		}
	}

	selection := &models.LunchSelection{
		Type:       "lunch",
		Base:       base.Name,
		Meats:      meats,
		ExtraMeats: extraMeats,
		Sides:      sides,
		PaidSides:  paidSides,
	}

	return QuotedLine{
		Name:       fmt.Sprintf("Almoço - %s", base.Name),
		Quantity:   item.Quantity,
		UnitPrice:  unitPrice + extrasUnit,
		ExtrasUnit: extrasUnit,
		Lunch:      selection,
	}, nil
}

func lookupLunchBase(bases []models.LunchBase, name string) (models.LunchBase, bool) {
	want := strings.TrimSpace(name)
	for _, base := range bases {
		if base.IsActive && strings.EqualFold(base.Name, want) {
			return base, true
		}
	}
	return models.LunchBase{}, false
}
