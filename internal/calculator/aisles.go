package calculator

// Market aisles used to order a checklist the way a store is walked.
const (
	AisleProduce  = "🥬 Hortifruti"
	AisleButcher  = "🥩 Açougue"
	AisleDairy    = "🧀 Frios/Laticínios"
	AisleBakery   = "🍞 Padaria"
	AisleGrocery  = "🛒 Mercearia"
	AisleDrinks   = "🍺 Bebidas"
	AisleCharcoal = "🔥 Carvão/Churrasco"
	AisleIce      = "❄️ Gelo"
	AisleOther    = "🛒 Outros"
)

var aisles = map[string]string{
	"picanha":       AisleButcher,
	"costela":       AisleButcher,
	"linguica":      AisleButcher,
	"frango":        AisleButcher,
	"maminha":       AisleButcher,
	"fraldinha":     AisleButcher,
	"queijo_coalho": AisleDairy,
	"abacaxi":       AisleProduce,
	"cogumelos":     AisleProduce,
	"legumes":       AisleProduce,
	"arroz":         AisleGrocery,
	"farofa":        AisleGrocery,
	"vinagrete":     AisleProduce,
	"pao_alho":      AisleBakery,
	"cerveja":       AisleDrinks,
	"refrigerante":  AisleDrinks,
	"agua":          AisleDrinks,
	"suco":          AisleDrinks,
	"carvao":        AisleCharcoal,
	"sal_grosso":    AisleGrocery,
	"gelo":          AisleIce,
}

// Aisle returns the market aisle of an item key.
func Aisle(key string) string {
	if a, ok := aisles[key]; ok {
		return a
	}
	return AisleOther
}

// AisleOrder returns aisles in walking order, Outros last.
func AisleOrder() []string {
	return []string{
		AisleProduce,
		AisleButcher,
		AisleDairy,
		AisleBakery,
		AisleGrocery,
		AisleDrinks,
		AisleCharcoal,
		AisleIce,
		AisleOther,
	}
}
