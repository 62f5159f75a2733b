package scoring

import "github.com/carbonpilot/carbonpilot/internal/refdata"

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
	// NeutralScore is returned for numeric indicators with no benchmark:
	// nothing to compare against, so neither reward nor penalize.
	NeutralScore = 50.0
)

// Scorer scores indicators against benchmarks from a reference source.
type Scorer struct {
	source Source
}

// NewScorer builds a scorer over the given benchmark source.
func NewScorer(source Source) *Scorer {
	return &Scorer{source: source}
}

// ScoreIndicator normalizes one indicator into [0,100] for the given sector.
//
// Binary indicators score 100 when set and truthy, 0 otherwise. Numeric and
// calculated indicators score along the benchmark curve: inverse indicators
// (lower is better) score 100 at or below optimal and 0 at or above max;
// normal indicators score 100 at or above optimal and 0 at or below min,
// with linear interpolation in between. A missing value scores 0 by policy.
// The sector materiality multiplier is applied before the final clamp.
func (s *Scorer) ScoreIndicator(indicator Indicator, sector string) float64 {
	if indicator.Type == TypeBinary {
		if indicator.Value != nil && *indicator.Value != 0 {
			return MaxScore
		}
		return MinScore
	}

	if indicator.Value == nil {
		return MinScore
	}

	benchmark, ok := s.source.Benchmark(indicator.ID)
	if !ok {
		return NeutralScore
	}

	raw := curveScore(*indicator.Value, benchmark)
	return clamp(raw * s.source.SectorMultiplier(indicator.ID, sector))
}

// curveScore evaluates the piecewise benchmark curve.
func curveScore(value float64, b refdata.Benchmark) float64 {
	if b.Inverse {
		switch {
		case value <= b.Optimal:
			return MaxScore
		case value >= b.Max:
			return MinScore
		default:
			return MaxScore * (b.Max - value) / (b.Max - b.Optimal)
		}
	}

	switch {
	case value >= b.Optimal:
		return MaxScore
	case value <= b.Min:
		return MinScore
	default:
		return MaxScore * (value - b.Min) / (b.Optimal - b.Min)
	}
}

func clamp(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
