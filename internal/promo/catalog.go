package promo

// ID identifies one promotion in the fixed catalog.
type ID string

const (
	// Bebidas gives every drink line 10% off its discounted total.
	Bebidas ID = "PROMO_BEBIDAS"
	// ComboKiosco gives 50% off one unit of the cheapest candy when a
	// drink and a candy are both in the cart.
	ComboKiosco ID = "COMBO_KIOSCO"
	// Snacks3x2 makes the cheapest of every complete group of three snack
	// units free.
	Snacks3x2 ID = "SNACKS_3X2"
)

// Promotion is one catalog entry. The matching/benefit logic for each id is
// hard-coded in the evaluator; the shapes are too heterogeneous for a
// data-driven rule table.
type Promotion struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var catalog = []Promotion{
	{
		ID:          Bebidas,
		Name:        "10% en Bebidas",
		Description: "Todas las bebidas tienen un 10% de descuento.",
	},
	{
		ID:          ComboKiosco,
		Name:        "Combo Kiosco",
		Description: "Llevando una bebida y una golosina, la golosina más barata tiene 50% de descuento.",
	},
	{
		ID:          Snacks3x2,
		Name:        "Snacks 3x2",
		Description: "Llevando 3 snacks, el más barato es gratis.",
	},
}

// Catalog returns the fixed, ordered promotion catalog.
func Catalog() []Promotion {
	out := make([]Promotion, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a catalog entry by id.
func Lookup(id ID) (Promotion, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Promotion{}, false
}
