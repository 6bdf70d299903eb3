package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CalculateChanges converts a series of levels to percentage changes
// Changes[i] = (Level[i] - Level[i-1]) / Level[i-1]
func CalculateChanges(levels []float64) []float64 {
	if len(levels) < 2 {
		return []float64{}
	}

	changes := make([]float64, len(levels)-1)
	for i := 1; i < len(levels); i++ {
		if levels[i-1] != 0 {
			changes[i-1] = (levels[i] - levels[i-1]) / levels[i-1]
		}
	}

	return changes
}
