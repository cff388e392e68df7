// Package stats provides basic descriptive statistics over float64 samples.
// It is the subject of the floating-point comparison lesson in
// stats_test.go.
package stats

import (
	"errors"
	"math"
)

// ErrEmptySample is returned when a statistic needs at least one value.
var ErrEmptySample = errors.New("empty sample")

// Sum returns the sum of xs.
func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// Mean returns the arithmetic mean of xs, or ErrEmptySample.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptySample
	}
	return Sum(xs) / float64(len(xs)), nil
}

// Variance returns the population variance of xs, or ErrEmptySample.
func Variance(xs []float64) (float64, error) {
	mean, err := Mean(xs)
	if err != nil {
		return 0, err
	}

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return sq / float64(len(xs)), nil
}

// StdDev returns the population standard deviation of xs, or
// ErrEmptySample.
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}
