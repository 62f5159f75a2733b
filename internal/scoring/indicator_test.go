package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/carbonpilot/carbonpilot/internal/refdata"
)

// fakeSource is an in-test benchmark source with controllable tables.
type fakeSource struct {
	benchmarks  map[string]refdata.Benchmark
	multipliers map[string]map[string]float64
}

func (f *fakeSource) Benchmark(id string) (refdata.Benchmark, bool) {
	b, ok := f.benchmarks[id]
	return b, ok
}

func (f *fakeSource) SectorMultiplier(id, sector string) float64 {
	if m, ok := f.multipliers[id][sector]; ok {
		return m
	}
	return 1
}

func ptr(v float64) *float64 { return &v }

func waterSource() *fakeSource {
	return &fakeSource{
		benchmarks: map[string]refdata.Benchmark{
			"E4": {Min: 100, Max: 500000, Optimal: 5000, Inverse: true},
			"S1": {Min: 0, Max: 100, Optimal: 40},
		},
		multipliers: map[string]map[string]float64{
			"E4": {"textile": 1.5},
		},
	}
}

func TestScoreIndicatorInverse(t *testing.T) {
	s := NewScorer(waterSource())

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"at optimal scores 100", 5000, 100},
		{"below optimal scores 100", 500, 100},
		{"at max scores 0", 500000, 0},
		{"above max scores 0", 900000, 0},
		{"midpoint scores 50", 252500, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(tt.value)}, "")
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestScoreIndicatorNormal(t *testing.T) {
	s := NewScorer(waterSource())

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"at optimal scores 100", 40, 100},
		{"above optimal scores 100", 80, 100},
		{"at min scores 0", 0, 0},
		{"midpoint interpolates", 20, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ScoreIndicator(Indicator{ID: "S1", Type: TypeNumeric, Value: ptr(tt.value)}, "")
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestScoreIndicatorBinary(t *testing.T) {
	s := NewScorer(waterSource())

	assert.InDelta(t, 100, s.ScoreIndicator(Indicator{ID: "G2", Type: TypeBinary, Value: ptr(1)}, ""), 1e-9)
	assert.InDelta(t, 0, s.ScoreIndicator(Indicator{ID: "G2", Type: TypeBinary, Value: ptr(0)}, ""), 1e-9)
	assert.InDelta(t, 0, s.ScoreIndicator(Indicator{ID: "G2", Type: TypeBinary}, ""), 1e-9)
}

func TestScoreIndicatorMissingValue(t *testing.T) {
	s := NewScorer(waterSource())

	// Missing value scores 0 by policy, even for inverse indicators where a
	// small value would score high.
	assert.InDelta(t, 0, s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric}, ""), 1e-9)
}

func TestScoreIndicatorNoBenchmark(t *testing.T) {
	s := NewScorer(waterSource())

	got := s.ScoreIndicator(Indicator{ID: "X9", Type: TypeNumeric, Value: ptr(12)}, "")
	assert.InDelta(t, NeutralScore, got, 1e-9)
}

func TestScoreIndicatorSectorMultiplierClamped(t *testing.T) {
	s := NewScorer(waterSource())

	// Midpoint water use in textile: 50 × 1.5 = 75.
	amplified := s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(252500)}, "textile")
	assert.InDelta(t, 75, amplified, 0.01)

	// Optimal water use in textile would be 150 before the clamp.
	clamped := s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(5000)}, "textile")
	assert.InDelta(t, 100, clamped, 1e-9)
}

// Scoring is monotonic: more water never scores higher, more training never
// scores lower. Scores always land in [0,100].
func TestScoreIndicatorMonotonic(t *testing.T) {
	s := NewScorer(waterSource())

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(0, 1e6).Draw(t, "a")
		b := rapid.Float64Range(0, 1e6).Draw(t, "b")
		if a > b {
			a, b = b, a
		}

		lowWater := s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(a)}, "")
		highWater := s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(b)}, "")
		assert.GreaterOrEqual(t, lowWater, highWater, "inverse indicator must not reward higher values")

		lowTraining := s.ScoreIndicator(Indicator{ID: "S1", Type: TypeNumeric, Value: ptr(a)}, "")
		highTraining := s.ScoreIndicator(Indicator{ID: "S1", Type: TypeNumeric, Value: ptr(b)}, "")
		assert.LessOrEqual(t, lowTraining, highTraining, "normal indicator must not reward lower values")

		for _, score := range []float64{lowWater, highWater, lowTraining, highTraining} {
			assert.GreaterOrEqual(t, score, MinScore)
			assert.LessOrEqual(t, score, MaxScore)
		}
	})
}

func TestScoreIndicatorAgainstDataset(t *testing.T) {
	ds, err := refdata.Load()
	assert.NoError(t, err)
	s := NewScorer(ds)

	// Spec reference: E4 water benchmark from the shipped dataset.
	assert.InDelta(t, 100, s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(5000)}, ""), 1e-9)
	assert.InDelta(t, 0, s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(500000)}, ""), 1e-9)
	assert.InDelta(t, 50, s.ScoreIndicator(Indicator{ID: "E4", Type: TypeNumeric, Value: ptr(252500)}, ""), 0.01)
}
