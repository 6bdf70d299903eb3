package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateSMA calculates the Simple Moving Average over the given period.
//
// Args:
//
//	values: Array of observations, oldest first
//	period: Lookback window (e.g., 3 for a quarterly window on monthly data)
//
// Returns:
//
//	Current SMA value or nil if insufficient data
func CalculateSMA(values []float64, period int) *float64 {
	if len(values) < period || period < 1 {
		return nil
	}

	sma := talib.Sma(values, period)

	if len(sma) > 0 && !isNaN(sma[len(sma)-1]) {
		result := sma[len(sma)-1]
		return &result
	}

	return nil
}

// CalculateROC calculates the Rate of Change over the given period.
//
// ROC Formula:
//
//	ROC = ((value / value_n_periods_ago) - 1) × 100
//
// Args:
//
//	values: Array of observations, oldest first
//	period: Lookback periods
//
// Returns:
//
//	Current ROC value (percentage) or nil if insufficient data
func CalculateROC(values []float64, period int) *float64 {
	if len(values) < period+1 || period < 1 {
		return nil
	}

	roc := talib.Roc(values, period)

	if len(roc) > 0 && !isNaN(roc[len(roc)-1]) {
		result := roc[len(roc)-1]
		return &result
	}

	return nil
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
