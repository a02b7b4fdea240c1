package metric

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultSeed keeps bootstrap resampling reproducible so that identical
// inputs always yield identical intervals
const DefaultSeed = 42

// BootstrapInterval represents the confidence interval calculated by the bootstrap method.
type BootstrapInterval struct {
	Lower  float64 `json:"lower"`  // Lower bound of the confidence interval
	Upper  float64 `json:"upper"`  // Upper bound of the confidence interval
	StdDev float64 `json:"stddev"` // Standard deviation of the bootstrap samples
	Mean   float64 `json:"mean"`   // Mean of the bootstrap samples
}

// Bootstrap calculates the confidence interval of a sample using the bootstrap method.
// Parameters:
//   - values: The original sample data
//   - measure: The statistical function to apply to each bootstrap sample
//   - sampleSize: Number of bootstrap samples to generate
//   - confidence: Confidence level (e.g., 0.95 for 95% confidence)
//   - seed: Seed of the resampling source
func Bootstrap(values []float64, measure func([]float64) float64, sampleSize int,
	confidence float64, seed int64) BootstrapInterval {

	if len(values) == 0 || sampleSize <= 0 {
		return BootstrapInterval{}
	}

	data := generateBootstrapSamples(values, measure, sampleSize, rand.New(rand.NewSource(seed)))

	tail := 1 - confidence
	sort.Float64s(data)

	mean, stdDev := stat.MeanStdDev(data, nil)
	if math.IsNaN(stdDev) {
		stdDev = 0
	}
	upper := stat.Quantile(1-tail/2, stat.LinInterp, data, nil)
	lower := stat.Quantile(tail/2, stat.LinInterp, data, nil)

	return BootstrapInterval{
		Lower:  lower,
		Upper:  upper,
		StdDev: stdDev,
		Mean:   mean,
	}
}

// generateBootstrapSamples creates bootstrap samples and applies the measure function to each.
func generateBootstrapSamples(values []float64, measure func([]float64) float64, sampleSize int,
	rnd *rand.Rand) []float64 {

	data := make([]float64, 0, sampleSize)
	samples := make([]float64, len(values))

	for i := 0; i < sampleSize; i++ {
		// Resample with replacement
		for j := range samples {
			samples[j] = values[rnd.Intn(len(values))]
		}
		data = append(data, measure(samples))
	}

	return data
}

// Mean is the arithmetic mean, usable as a bootstrap measure
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Correlation returns the Pearson correlation of x and y. It is zero when
// fewer than two points are given or either variable has no variance.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}

	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0
	}

	return stat.Correlation(x, y, nil)
}
