// Package statistics aggregates repeated Monte Carlo runs of the same
// evaluation so their spread can be checked.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Sample is the result of one evaluator run
type Sample struct {
	Seed        int64         `json:"seed"`
	Probability float64       `json:"probability"`
	Trials      int           `json:"trials"`
	Elapsed     time.Duration `json:"elapsed"`
}

// WinRate tracks the distribution of win probabilities across runs
type WinRate struct {
	Runs   int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // All probabilities, for median/percentile

	Trials  int
	Elapsed time.Duration
}

// Add incorporates one run
func (w *WinRate) Add(s Sample) {
	w.Runs++
	w.Sum += s.Probability
	w.SumSq += s.Probability * s.Probability
	w.Values = append(w.Values, s.Probability)
	w.Trials += s.Trials
	w.Elapsed += s.Elapsed
}

// Mean returns the average win probability
func (w *WinRate) Mean() float64 {
	if w.Runs == 0 {
		return 0
	}
	return w.Sum / float64(w.Runs)
}

// Variance returns the sample variance of the win probabilities
func (w *WinRate) Variance() float64 {
	if w.Runs < 2 {
		return 0
	}
	mean := w.Mean()
	// Rounding can push a zero variance slightly negative
	return max(0, (w.SumSq-float64(w.Runs)*mean*mean)/float64(w.Runs-1))
}

// StdDev returns the sample standard deviation
func (w *WinRate) StdDev() float64 {
	return math.Sqrt(w.Variance())
}

// StdError returns the standard error of the mean
func (w *WinRate) StdError() float64 {
	if w.Runs == 0 {
		return 0
	}
	return w.StdDev() / math.Sqrt(float64(w.Runs))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (w *WinRate) ConfidenceInterval95() (float64, float64) {
	mean := w.Mean()
	margin := 1.96 * w.StdError()
	return mean - margin, mean + margin
}

// WithinTolerance reports whether every run landed within tol of expected
func (w *WinRate) WithinTolerance(expected, tol float64) bool {
	for _, v := range w.Values {
		if math.Abs(v-expected) > tol {
			return false
		}
	}
	return w.Runs > 0
}

// MeanWithin reports whether the mean landed within tol of expected
func (w *WinRate) MeanWithin(expected, tol float64) bool {
	return w.Runs > 0 && math.Abs(w.Mean()-expected) <= tol
}

// Min returns the lowest win probability seen
func (w *WinRate) Min() float64 {
	if len(w.Values) == 0 {
		return 0
	}
	return w.sorted()[0]
}

// Max returns the highest win probability seen
func (w *WinRate) Max() float64 {
	if len(w.Values) == 0 {
		return 0
	}
	s := w.sorted()
	return s[len(s)-1]
}

// Median returns the median win probability
func (w *WinRate) Median() float64 {
	if len(w.Values) == 0 {
		return 0
	}
	sorted := w.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at percentile p (0.0 to 1.0)
func (w *WinRate) Percentile(p float64) float64 {
	if len(w.Values) == 0 {
		return 0
	}
	sorted := w.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// TrialsPerSecond returns the throughput over all runs
func (w *WinRate) TrialsPerSecond() float64 {
	if w.Elapsed <= 0 {
		return 0
	}
	return float64(w.Trials) / w.Elapsed.Seconds()
}

func (w *WinRate) sorted() []float64 {
	sorted := make([]float64, len(w.Values))
	copy(sorted, w.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks that the aggregate is internally consistent
func (w *WinRate) Validate() error {
	if w.Runs <= 0 {
		return fmt.Errorf("invalid run count: %d", w.Runs)
	}
	if len(w.Values) != w.Runs {
		return fmt.Errorf("values length (%d) does not match run count (%d)", len(w.Values), w.Runs)
	}
	for i, v := range w.Values {
		if v < 0 || v > 1 {
			return fmt.Errorf("run %d: probability %f outside [0, 1]", i, v)
		}
	}
	return nil
}
