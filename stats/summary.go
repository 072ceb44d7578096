package stats

import (
	"math"

	"github.com/arloliu/mraw/source"
)

// Summary holds the per-frame statistics of a whole source, in frame order.
type Summary struct {
	Max  []float64
	Min  []float64
	Mean []float64
	Std  []float64
}

// FrameSummary holds the statistics of a single frame.
type FrameSummary struct {
	Max  float64
	Min  float64
	Mean float64
	Std  float64
}

func newSummary(capacity int) Summary {
	return Summary{
		Max:  make([]float64, 0, capacity),
		Min:  make([]float64, 0, capacity),
		Mean: make([]float64, 0, capacity),
		Std:  make([]float64, 0, capacity),
	}
}

// Len returns the number of frames covered, taken from the Max sequence.
func (s Summary) Len() int {
	return len(s.Max)
}

// At returns the statistics of frame i. It panics if any sequence is shorter than i+1.
func (s Summary) At(i int) FrameSummary {
	return FrameSummary{Max: s.Max[i], Min: s.Min[i], Mean: s.Mean[i], Std: s.Std[i]}
}

func (s *Summary) append(fs FrameSummary) {
	s.Max = append(s.Max, fs.Max)
	s.Min = append(s.Min, fs.Min)
	s.Mean = append(s.Mean, fs.Mean)
	s.Std = append(s.Std, fs.Std)
}

// Consistent reports whether the four sequences have the same length.
func (s Summary) Consistent() bool {
	n := len(s.Max)
	return len(s.Min) == n && len(s.Mean) == n && len(s.Std) == n
}

// FrameStats computes max, min, mean and population standard deviation over
// all pixels of f.
//
// A frame containing NaN yields NaN for every statistic.
func FrameStats(f *source.Frame) FrameSummary {
	n := f.Len()
	if n == 0 {
		nan := math.NaN()
		return FrameSummary{Max: nan, Min: nan, Mean: nan, Std: nan}
	}

	maxV, minV := math.Inf(-1), math.Inf(1)
	sum := 0.0
	for v := range f.Values() {
		if math.IsNaN(v) {
			nan := math.NaN()
			return FrameSummary{Max: nan, Min: nan, Mean: nan, Std: nan}
		}
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
		sum += v
	}
	mean := sum / float64(n)

	// Second pass over deviations; more stable than sum of squares.
	sq := 0.0
	for v := range f.Values() {
		d := v - mean
		sq += d * d
	}

	return FrameSummary{
		Max:  maxV,
		Min:  minV,
		Mean: mean,
		Std:  math.Sqrt(sq / float64(n)),
	}
}
