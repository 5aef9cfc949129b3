package models

// NutrientProfile is the fixed-shape nutrient vector shared by meals and
// their components. Numeric fields support pairwise addition; the dietary
// flags are OR'd across components, not summed (a meal contains dairy if any
// component does).
type NutrientProfile struct {
	EnergyKcal    float64 `json:"energyKcal"`
	Fats          float64 `json:"fats"`
	SaturatedFats float64 `json:"saturatedFats"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Fibre         float64 `json:"fibre"`
	Protein       float64 `json:"protein"`
	Salt          float64 `json:"salt"`

	ContainsDairy  bool `json:"containsDairy"`
	ContainsGluten bool `json:"containsGluten"`
	ContainsNuts   bool `json:"containsNuts"`
}

// Add returns the pointwise sum of two profiles.
func (p NutrientProfile) Add(other NutrientProfile) NutrientProfile {
	return NutrientProfile{
		EnergyKcal:    p.EnergyKcal + other.EnergyKcal,
		Fats:          p.Fats + other.Fats,
		SaturatedFats: p.SaturatedFats + other.SaturatedFats,
		Carbohydrates: p.Carbohydrates + other.Carbohydrates,
		Sugars:        p.Sugars + other.Sugars,
		Fibre:         p.Fibre + other.Fibre,
		Protein:       p.Protein + other.Protein,
		Salt:          p.Salt + other.Salt,

		ContainsDairy:  p.ContainsDairy || other.ContainsDairy,
		ContainsGluten: p.ContainsGluten || other.ContainsGluten,
		ContainsNuts:   p.ContainsNuts || other.ContainsNuts,
	}
}

// SumProfiles aggregates the profiles of the given components. An empty
// slice yields the zero profile.
func SumProfiles(components []Component) NutrientProfile {
	var total NutrientProfile
	for _, c := range components {
		total = total.Add(c.Profile)
	}
	return total
}
