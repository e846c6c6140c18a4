package models

import "github.com/churrascometro/churrascometro/internal/calculator"

func preset(id, name, icon, description string, in calculator.Input, meats ...string) Profile {
	in.IncludeSides = true
	in.SelectedMeats = make(map[string]bool)
	for _, k := range calculator.MeatKeys() {
		in.SelectedMeats[k] = false
	}
	for _, k := range meats {
		in.SelectedMeats[k] = true
	}
	return Profile{
		ID:          id,
		Name:        name,
		Icon:        icon,
		Description: description,
		Preset:      true,
		Config:      in,
	}
}

// PresetProfiles returns the profiles shipped with the application.
func PresetProfiles() []Profile {
	long, short := calculator.DurationLong, calculator.DurationShort
	return []Profile{
		preset("festa-grande", "Festa Grande", "🎉", "30+ pessoas, variedade completa",
			calculator.Input{MeatAdults: 25, VegetarianAdults: 5, Children: 8, BeerDrinkers: 20, Duration: long},
			"picanha", "costela", "linguica", "frango", "maminha", "fraldinha"),
		preset("familia", "Família", "👨‍👩‍👧‍👦", "8-12 pessoas, equilibrado",
			calculator.Input{MeatAdults: 6, VegetarianAdults: 2, Children: 4, BeerDrinkers: 4, Duration: long},
			"picanha", "costela", "linguica", "frango"),
		preset("amigos", "Só os Amigos", "🍻", "6-8 adultos, mais cerveja",
			calculator.Input{MeatAdults: 8, BeerDrinkers: 8, Duration: long},
			"picanha", "costela", "linguica", "frango", "maminha"),
		preset("casal", "Casal", "💑", "2 pessoas, íntimo",
			calculator.Input{MeatAdults: 2, BeerDrinkers: 2, Duration: short},
			"picanha", "linguica"),
		preset("fit", "Churrasco Fit", "🥗", "Foco em proteína magra",
			calculator.Input{MeatAdults: 4, VegetarianAdults: 2, BeerDrinkers: 2, Duration: short},
			"frango", "maminha", "fraldinha"),
		preset("vegetariano", "Vegetariano", "🌱", "Sem carnes, só opções vegetarianas",
			calculator.Input{VegetarianAdults: 8, Children: 2, BeerDrinkers: 4, Duration: short}),
	}
}

// IsPresetID reports whether id names a shipped profile.
func IsPresetID(id string) bool {
	for _, p := range PresetProfiles() {
		if p.ID == id {
			return true
		}
	}
	return false
}
