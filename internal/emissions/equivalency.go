package emissions

import "fmt"

// Equivalency conversion factors, kg CO2e per unit of activity.
const (
	// KmDrivenFactor is kg CO2e per km for an average passenger car
	// (ADEME Base Carbone).
	KmDrivenFactor = 0.193

	// TreeYearFactor is kg CO2e absorbed per tree per year.
	TreeYearFactor = 25.0

	// MinEquivalencyKg is the floor below which equivalencies are noise.
	MinEquivalencyKg = 1.0
)

// Equivalency expresses a CO2e mass as relatable real-world quantities for
// report copy.
type Equivalency struct {
	KmDriven    float64 `json:"km_driven"`
	TreeYears   float64 `json:"tree_years"`
	DisplayText string  `json:"display_text"`
	IsEmpty     bool    `json:"is_empty"`
}

// Equivalencies converts a CO2e mass in kg into everyday equivalents.
// Values under MinEquivalencyKg return an empty equivalency.
func Equivalencies(co2Kg float64) Equivalency {
	if co2Kg < MinEquivalencyKg {
		return Equivalency{IsEmpty: true}
	}

	km := co2Kg / KmDrivenFactor
	trees := co2Kg / TreeYearFactor

	return Equivalency{
		KmDriven:  km,
		TreeYears: trees,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s km or one year of absorption by ~%s trees",
			formatAmount(km), formatAmount(trees)),
	}
}
