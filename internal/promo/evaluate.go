package promo

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kiosco-labs/backend-kiosco/internal/pricing"
)

// Category labels the promotion rules key on.
const (
	CategoryBebidas  = "Bebidas"
	CategoryGolosina = "Golosina"
	CategorySnacks   = "Snacks"
)

var (
	half    = decimal.NewFromFloat(0.5)
	tenPct  = decimal.NewFromFloat(0.10)
	groupOf = 3
)

// Credits maps a line id to the non-negative promotional credit subtracted
// from that line's discounted total.
type Credits map[string]decimal.Decimal

// Total sums all credits in the map.
func (c Credits) Total() decimal.Decimal {
	var total decimal.Decimal
	for _, v := range c {
		total = total.Add(v)
	}
	return total
}

type ruleFunc func(lines []pricing.Line) Credits

// ruleFor binds each catalog id to its bespoke rule. Every catalog entry must
// have a rule here and vice versa; the catalog sync test enforces it.
func ruleFor(id ID) ruleFunc {
	switch id {
	case Bebidas:
		return bebidasRule
	case ComboKiosco:
		return comboKioscoRule
	case Snacks3x2:
		return snacks3x2Rule
	}
	return nil
}

// Evaluate computes per-line promotional credits for the active promotion.
// An id outside the catalog degrades to zero credits rather than failing:
// corrupted persisted state must not crash a checkout flow.
func Evaluate(lines []pricing.Line, id ID) Credits {
	rule := ruleFor(id)
	if rule == nil {
		return Credits{}
	}
	credits := rule(lines)
	if credits == nil {
		return Credits{}
	}
	return credits
}

// bebidasRule credits every drink line 10% of its discounted total.
func bebidasRule(lines []pricing.Line) Credits {
	credits := Credits{}
	for _, line := range lines {
		if line.Category != CategoryBebidas || line.Qty <= 0 {
			continue
		}
		credit := line.Quote().DiscountedTotal.Mul(tenPct)
		if credit.Sign() > 0 {
			credits[line.ID] = credit
		}
	}
	return credits
}

// comboKioscoRule requires at least one drink unit and one candy unit in the
// cart. A single unit of the cheapest candy, earliest cart position on price
// ties, earns a credit of half its effective unit price.
func comboKioscoRule(lines []pricing.Line) Credits {
	hasBebida := false
	cheapestIdx := -1
	for i, line := range lines {
		if line.Qty <= 0 {
			continue
		}
		switch line.Category {
		case CategoryBebidas:
			hasBebida = true
		case CategoryGolosina:
			if cheapestIdx < 0 || line.EffectiveUnitPrice().LessThan(lines[cheapestIdx].EffectiveUnitPrice()) {
				cheapestIdx = i
			}
		}
	}
	if !hasBebida || cheapestIdx < 0 {
		return Credits{}
	}
	target := lines[cheapestIdx]
	credit := target.EffectiveUnitPrice().Mul(half)
	if credit.Sign() <= 0 {
		return Credits{}
	}
	return Credits{target.ID: credit}
}

// unit is one quantity-expanded sale unit attributed back to its owning line.
type unit struct {
	lineID string
	price  decimal.Decimal
}

// snacks3x2Rule flattens snack lines into individual units, orders them by
// effective unit price ascending (cart position breaks ties), and makes the
// cheapest unit of every complete group of three free.
func snacks3x2Rule(lines []pricing.Line) Credits {
	var units []unit
	for _, line := range lines {
		if line.Category != CategorySnacks || line.Qty <= 0 {
			continue
		}
		price := line.EffectiveUnitPrice()
		for i := 0; i < line.Qty; i++ {
			units = append(units, unit{lineID: line.ID, price: price})
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].price.LessThan(units[j].price)
	})

	credits := Credits{}
	for start := 0; start+groupOf <= len(units); start += groupOf {
		free := units[start]
		if free.price.Sign() <= 0 {
			continue
		}
		credits[free.lineID] = credits[free.lineID].Add(free.price)
	}
	return credits
}
