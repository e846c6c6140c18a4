package calculator

// Format is the quantity kind of a catalog item. It decides both how a
// quantity is displayed and how its price is computed.
type Format string

const (
	FormatGrams     Format = "g"
	FormatKilograms Format = "kg"
	FormatUnit      Format = "unit"
	FormatLiters    Format = "l"
	FormatCan       Format = "can"
	FormatBag       Format = "bag"
)

// Valid returns true if the format is a known value.
func (f Format) Valid() bool {
	switch f {
	case FormatGrams, FormatKilograms, FormatUnit, FormatLiters, FormatCan, FormatBag:
		return true
	}
	return false
}

// Counted reports whether the format is bought in whole pieces.
func (f Format) Counted() bool {
	return f == FormatUnit || f == FormatCan || f == FormatBag
}

// PricingUnit returns the unit label the item's price refers to.
func (f Format) PricingUnit() string {
	switch f {
	case FormatGrams, FormatKilograms:
		return "kg"
	case FormatLiters:
		return "L"
	default:
		return "un"
	}
}

// Category groups catalog items into result sections.
type Category string

const (
	CategoryMeat       Category = "meat"
	CategoryVegetarian Category = "vegetarian"
	CategorySide       Category = "side"
	CategoryDrink      Category = "drink"
	CategoryExtra      Category = "extra"
)

// Categories returns all categories in section order.
func Categories() []Category {
	return []Category{CategoryMeat, CategoryVegetarian, CategorySide, CategoryDrink, CategoryExtra}
}

// Title returns the section title shown for the category.
func (c Category) Title() string {
	switch c {
	case CategoryMeat:
		return "Carnes"
	case CategoryVegetarian:
		return "Vegetarianos"
	case CategorySide:
		return "Acompanhamentos"
	case CategoryDrink:
		return "Bebidas"
	case CategoryExtra:
		return "Extras"
	}
	return string(c)
}

// Icon returns the section icon identifier.
func (c Category) Icon() string {
	switch c {
	case CategoryMeat:
		return "meat"
	case CategoryVegetarian:
		return "vegetarian"
	case CategorySide:
		return "sides"
	case CategoryDrink:
		return "drinks"
	case CategoryExtra:
		return "extras"
	}
	return ""
}

// Emoji returns the decoration used in price lists.
func (c Category) Emoji() string {
	switch c {
	case CategoryMeat:
		return "🥩"
	case CategoryVegetarian:
		return "🧀"
	case CategorySide:
		return "🍚"
	case CategoryDrink:
		return "🍺"
	case CategoryExtra:
		return "🔥"
	}
	return "📦"
}

// ItemDefinition is a static catalog entry. PerAdult and PerChild are in
// the format's base unit (grams for FormatGrams). PricePerUnit is per
// kilogram, liter or piece.
type ItemDefinition struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	Category     Category `json:"category"`
	PerAdult     float64  `json:"per_adult"`
	PerChild     float64  `json:"per_child,omitempty"`
	Format       Format   `json:"format"`
	PricePerUnit float64  `json:"price_per_unit,omitempty"`
}

// Well-known item keys with special scaling rules.
const (
	KeyBeer     = "cerveja"
	KeySoda     = "refrigerante"
	KeyCharcoal = "carvao"
	KeySalt     = "sal_grosso"
	KeyIce      = "gelo"
)

var catalog = []ItemDefinition{
	{Key: "picanha", Label: "Picanha", Category: CategoryMeat, PerAdult: 200, PerChild: 100, Format: FormatGrams, PricePerUnit: 89.9},
	{Key: "costela", Label: "Costela", Category: CategoryMeat, PerAdult: 200, PerChild: 100, Format: FormatGrams, PricePerUnit: 34.9},
	{Key: "linguica", Label: "Linguiça", Category: CategoryMeat, PerAdult: 100, PerChild: 50, Format: FormatGrams, PricePerUnit: 24.9},
	{Key: "frango", Label: "Coração/Frango", Category: CategoryMeat, PerAdult: 100, PerChild: 50, Format: FormatGrams, PricePerUnit: 29.9},
	{Key: "maminha", Label: "Maminha", Category: CategoryMeat, PerAdult: 150, PerChild: 80, Format: FormatGrams, PricePerUnit: 54.9},
	{Key: "fraldinha", Label: "Fraldinha", Category: CategoryMeat, PerAdult: 150, PerChild: 80, Format: FormatGrams, PricePerUnit: 49.9},

	{Key: "queijo_coalho", Label: "Queijo Coalho", Category: CategoryVegetarian, PerAdult: 150, Format: FormatGrams, PricePerUnit: 45.9},
	{Key: "abacaxi", Label: "Abacaxi", Category: CategoryVegetarian, PerAdult: 0.25, Format: FormatUnit, PricePerUnit: 6.0},
	{Key: "cogumelos", Label: "Cogumelos", Category: CategoryVegetarian, PerAdult: 100, Format: FormatGrams, PricePerUnit: 39.9},
	{Key: "legumes", Label: "Legumes Grelhados", Category: CategoryVegetarian, PerAdult: 150, Format: FormatGrams, PricePerUnit: 12.9},

	{Key: "arroz", Label: "Arroz", Category: CategorySide, PerAdult: 80, PerChild: 50, Format: FormatGrams, PricePerUnit: 6.9},
	{Key: "farofa", Label: "Farofa", Category: CategorySide, PerAdult: 50, PerChild: 30, Format: FormatGrams, PricePerUnit: 8.9},
	{Key: "vinagrete", Label: "Vinagrete", Category: CategorySide, PerAdult: 50, PerChild: 25, Format: FormatGrams, PricePerUnit: 15.0},
	{Key: "pao_alho", Label: "Pão de Alho", Category: CategorySide, PerAdult: 2, PerChild: 1, Format: FormatUnit, PricePerUnit: 2.5},

	{Key: KeyBeer, Label: "Cerveja", Category: CategoryDrink, PerAdult: 4, Format: FormatCan, PricePerUnit: 3.5},
	{Key: KeySoda, Label: "Refrigerante", Category: CategoryDrink, PerAdult: 0.5, PerChild: 0.3, Format: FormatLiters, PricePerUnit: 8.0},
	{Key: "agua", Label: "Água", Category: CategoryDrink, PerAdult: 0.5, PerChild: 0.3, Format: FormatLiters, PricePerUnit: 3.0},
	{Key: "suco", Label: "Suco", Category: CategoryDrink, PerAdult: 0.3, PerChild: 0.4, Format: FormatLiters, PricePerUnit: 12.0},

	{Key: KeyCharcoal, Label: "Carvão", Category: CategoryExtra, PerAdult: 1, Format: FormatKilograms, PricePerUnit: 25.0},
	{Key: KeySalt, Label: "Sal Grosso", Category: CategoryExtra, PerAdult: 0.1, Format: FormatKilograms, PricePerUnit: 4.0},
	{Key: KeyIce, Label: "Gelo", Category: CategoryExtra, PerAdult: 1, Format: FormatKilograms, PricePerUnit: 8.0},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, def := range catalog {
		idx[def.Key] = i
	}
	return idx
}()

// Catalog returns a copy of every item definition in section order.
func Catalog() []ItemDefinition {
	out := make([]ItemDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog item by key.
func Lookup(key string) (ItemDefinition, bool) {
	i, ok := catalogIndex[key]
	if !ok {
		return ItemDefinition{}, false
	}
	return catalog[i], true
}

// ItemsByCategory returns the catalog items of one category in order.
func ItemsByCategory(c Category) []ItemDefinition {
	var out []ItemDefinition
	for _, def := range catalog {
		if def.Category == c {
			out = append(out, def)
		}
	}
	return out
}

// MeatKeys returns the keys of every meat item.
func MeatKeys() []string {
	meats := ItemsByCategory(CategoryMeat)
	keys := make([]string, len(meats))
	for i, m := range meats {
		keys[i] = m.Key
	}
	return keys
}

// DefaultSelectedMeats returns the meat selection of a fresh event.
func DefaultSelectedMeats() map[string]bool {
	return map[string]bool{
		"picanha":   true,
		"costela":   true,
		"linguica":  true,
		"frango":    true,
		"maminha":   false,
		"fraldinha": false,
	}
}
