package scoring

// defaultIndicatorWeight applies when an indicator declares no weight.
const defaultIndicatorWeight = 1.0

// AggregateCategory combines indicator scores into one category score using
// the weighted mean of effective weights (indicator weight × sector
// materiality multiplier). A category whose effective weights sum to zero
// scores 0 rather than dividing by zero.
func (s *Scorer) AggregateCategory(indicators []Indicator, sector string) float64 {
	var weightedSum, totalWeight float64

	for _, indicator := range indicators {
		weight := indicator.Weight
		if weight == 0 {
			weight = defaultIndicatorWeight
		}
		effective := weight * s.source.SectorMultiplier(indicator.ID, sector)

		weightedSum += s.ScoreIndicator(indicator, sector) * effective
		totalWeight += effective
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
