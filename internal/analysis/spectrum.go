package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series too short")

// Spectrum returns the one-sided power spectrum of data sampled every dt
// seconds, after removing the mean. freqs[i] is the frequency of power[i].
func Spectrum(data []float64, dt float64) (freqs, power []float64, err error) {
	n := len(data)
	if n < 4 || dt <= 0 {
		return nil, nil, ErrShortSeries
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	half := n/2 + 1
	freqs = make([]float64, half)
	power = make([]float64, half)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) / (float64(n) * dt)
		mag := cmplx.Abs(coeffs[i])
		power[i] = mag * mag / float64(n)
	}
	return freqs, power, nil
}

// DominantFrequency returns the frequency with the most power, ignoring DC.
func DominantFrequency(data []float64, dt float64) (freq, power float64, err error) {
	freqs, ps, err := Spectrum(data, dt)
	if err != nil {
		return 0, 0, err
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return freqs[best], ps[best], nil
}

// Period converts a frequency to seconds, or +Inf for zero.
func Period(freq float64) float64 {
	if freq == 0 {
		return math.Inf(1)
	}
	return 1 / freq
}
