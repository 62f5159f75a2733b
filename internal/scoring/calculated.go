package scoring

// calculatedFormula derives a calculated indicator's value from its sibling
// indicators and company revenue. A nil result means the inputs are not
// available yet.
type calculatedFormula func(siblings map[string]*float64, revenue float64) *float64

// calculatedFormulas registers the derivation of every calculated indicator.
// E6 is energy intensity: kWh consumed (E1) per unit of revenue.
var calculatedFormulas = map[string]calculatedFormula{ //nolint:gochecknoglobals // Constant lookup table
	"E6": func(siblings map[string]*float64, revenue float64) *float64 {
		energy := siblings["E1"]
		if energy == nil || revenue <= 0 {
			return nil
		}
		v := *energy / revenue
		return &v
	},
}

// RecomputeCalculated refreshes every calculated indicator in place from its
// current inputs. Calculated indicators are never user-edited, so this runs
// before each scoring pass; stale values are always overwritten, including
// back to nil when an input went missing.
func RecomputeCalculated(categories []Category, revenue float64) {
	for ci := range categories {
		category := &categories[ci]

		siblings := make(map[string]*float64, len(category.Indicators))
		for _, indicator := range category.Indicators {
			if indicator.Type != TypeCalculated {
				siblings[indicator.ID] = indicator.Value
			}
		}

		for ii := range category.Indicators {
			indicator := &category.Indicators[ii]
			if indicator.Type != TypeCalculated {
				continue
			}
			formula, ok := calculatedFormulas[indicator.ID]
			if !ok {
				continue
			}
			indicator.Value = formula(siblings, revenue)
		}
	}
}
