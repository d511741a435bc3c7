package core

import (
	"math"
	"sort"
)

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and sample standard deviation.
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	// Calculate mean
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	// For single element, return std = 0 (sample deviation undefined)
	if len(data) == 1 {
		return mean, 0
	}

	// Two-pass variance with N-1 denominator (sample std), avoids the
	// catastrophic cancellation of the sum-of-squares shortcut
	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	std := math.Sqrt(varianceSum / float64(len(data)-1))
	return mean, std
}

// -----------------------------------------------------------------------------

// CalculateMinMax returns the smallest and largest value of data.
func CalculateMinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// -----------------------------------------------------------------------------

// CalculateMedian computes the median of data. The input slice is sorted
// in place, so callers must pass a copy if they need the original order.
func CalculateMedian(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sort.Float64s(data)

	mid := len(data) / 2
	if len(data)%2 == 1 {
		return data[mid]
	}
	return (data[mid-1] + data[mid]) / 2
}

// -----------------------------------------------------------------------------

// CalculateZScore calculates Z-Score (Standard Score).
func CalculateZScore(value, mean, std float64) float64 {
	if std == 0 {
		return 0.0
	}
	return (value - mean) / std
}
