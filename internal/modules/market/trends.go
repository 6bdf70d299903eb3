package market

import (
	"math"

	"github.com/apartmentiq/leverage/pkg/formulas"
)

// trendSMAPeriod is the moving-average window used for trend smoothing.
const trendSMAPeriod = 3

// AnalyzeTrends derives direction and velocity for the median rent,
// inventory, and days-on-market series of a location's history. The input
// is most-recent first (the module's canonical ordering); series are
// reversed internally for the indicator math.
func AnalyzeTrends(history []MarketMetric) []MarketTrend {
	if len(history) < 2 {
		return nil
	}

	series := map[string]func(m MarketMetric) float64{
		"medianRent":     func(m MarketMetric) float64 { return m.MedianRent },
		"inventoryLevel": func(m MarketMetric) float64 { return m.InventoryLevel },
		"daysOnMarket":   func(m MarketMetric) float64 { return m.DaysOnMarket },
	}

	// Deterministic output order
	order := []string{"medianRent", "inventoryLevel", "daysOnMarket"}

	trends := make([]MarketTrend, 0, len(order))
	for _, name := range order {
		extract := series[name]

		// Oldest first for the indicators
		values := make([]float64, 0, len(history))
		for i := len(history) - 1; i >= 0; i-- {
			values = append(values, extract(history[i]))
		}

		trend := analyzeSeries(name, values)
		if trend != nil {
			trends = append(trends, *trend)
		}
	}

	return trends
}

func analyzeSeries(name string, values []float64) *MarketTrend {
	roc := formulas.CalculateROC(values, len(values)-1)
	if roc == nil {
		return nil
	}

	sma := formulas.CalculateSMA(values, min(trendSMAPeriod, len(values)))
	movingAverage := formulas.Mean(values)
	if sma != nil {
		movingAverage = *sma
	}

	change := *roc
	direction := TrendStable
	if change > 1 {
		direction = TrendRising
	} else if change < -1 {
		direction = TrendFalling
	}

	velocity := VelocitySlow
	switch {
	case math.Abs(change) > 5:
		velocity = VelocityRapid
	case math.Abs(change) > 2:
		velocity = VelocityModerate
	}

	return &MarketTrend{
		Metric:                name,
		Direction:             direction,
		Velocity:              velocity,
		ChangePercent:         change,
		MovingAverage:         movingAverage,
		Periods:               len(values),
		PredictedContinuation: math.Min(0.9, 0.5+math.Abs(change)/20),
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
