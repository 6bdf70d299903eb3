package insights

import (
	"fmt"
	"math"

	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/pkg/formulas"
)

// HighInventoryRule fires when current inventory runs well above the
// trailing average: landlords are competing for tenants.
type HighInventoryRule struct{}

func (r *HighInventoryRule) Name() string { return "high_inventory" }

func (r *HighInventoryRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil {
		return nil
	}

	inventory := make([]float64, 0, len(ctx.History))
	for _, m := range ctx.History {
		inventory = append(inventory, m.InventoryLevel)
	}
	trailingAvg := formulas.Mean(inventory)
	if trailingAvg <= 0 || latest.InventoryLevel <= trailingAvg*1.2 {
		return nil
	}

	expiry := ctx.Now.AddDate(0, 0, 14)
	excess := (latest.InventoryLevel/trailingAvg - 1) * 100

	return []Insight{{
		Type:             TypeLeverage,
		Severity:         SeverityHigh,
		Title:            "High Inventory Advantage",
		Description:      fmt.Sprintf("Inventory is %.0f%% above average", excess),
		Action:           "Landlords are competing for tenants. Negotiate aggressively for concessions.",
		Confidence:       0.85,
		ExpiresAt:        &expiry,
		SavingsPotential: latest.MedianRent * 0.12,
	}}
}

// DaysOnMarketRule fires when listings sit longer than 45 days: sitting
// properties indicate motivated landlords.
type DaysOnMarketRule struct{}

func (r *DaysOnMarketRule) Name() string { return "days_on_market" }

func (r *DaysOnMarketRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil || latest.DaysOnMarket <= 45 {
		return nil
	}

	severity := SeverityMedium
	if latest.DaysOnMarket > 60 {
		severity = SeverityHigh
	}

	return []Insight{{
		Type:        TypeLeverage,
		Severity:    severity,
		Title:       "Extended Market Time",
		Description: fmt.Sprintf("Properties averaging %.0f days on market", latest.DaysOnMarket),
		Action:      "Properties sitting this long indicate motivated landlords. Focus on units listed 30+ days.",
		Confidence:  0.90,
	}}
}

// DecliningRentRule fires on a year-over-year rent decline beyond 2%.
type DecliningRentRule struct{}

func (r *DecliningRentRule) Name() string { return "declining_rent" }

func (r *DecliningRentRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil || latest.RentYoYChange >= -2 {
		return nil
	}

	return []Insight{{
		Type:             TypeLeverage,
		Severity:         SeverityHigh,
		Title:            "Declining Rent Market",
		Description:      fmt.Sprintf("Rents down %.1f%% year-over-year", math.Abs(latest.RentYoYChange)),
		Action:           "Market is in your favor. Request below-market pricing and substantial concessions.",
		Confidence:       0.95,
		SavingsPotential: latest.MedianRent * math.Abs(latest.RentYoYChange) / 100,
	}}
}

// PeakSeasonRule fires during the winter concession window.
type PeakSeasonRule struct{}

func (r *PeakSeasonRule) Name() string { return "peak_season" }

func (r *PeakSeasonRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil || latest.SeasonalIndex <= 75 {
		return nil
	}

	return []Insight{{
		Type:             TypeSeasonal,
		Severity:         SeverityHigh,
		Title:            "Peak Negotiation Season",
		Description:      "Peak landlord concession season in effect",
		Action:           "Focus on 2-3 month free rent, waived fees, and flexible lease terms.",
		Confidence:       0.85,
		SavingsPotential: latest.MedianRent * 2.5,
	}}
}

// QuarterEndRule fires inside the quarterly leasing-quota window.
type QuarterEndRule struct{}

func (r *QuarterEndRule) Name() string { return "quarter_end" }

func (r *QuarterEndRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil || !latest.QuarterEndPressure {
		return nil
	}

	expiry := market.NextQuarterEnd(ctx.Now)

	return []Insight{{
		Type:             TypeTiming,
		Severity:         SeverityHigh,
		Title:            "Quarter-End Pressure",
		Description:      "Property managers under quarterly leasing pressure",
		Action:           "Make offers in the last 2 weeks of the quarter for maximum leverage.",
		Confidence:       0.80,
		ExpiresAt:        &expiry,
		SavingsPotential: latest.MedianRent * 0.08,
	}}
}

// MonthEndRule fires inside the monthly quota window.
type MonthEndRule struct{}

func (r *MonthEndRule) Name() string { return "month_end" }

func (r *MonthEndRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil || !latest.MonthEndPressure {
		return nil
	}

	expiry := market.NextMonthEnd(ctx.Now)

	return []Insight{{
		Type:        TypeTiming,
		Severity:    SeverityMedium,
		Title:       "Month-End Opportunity",
		Description: "Leasing teams working toward monthly targets",
		Action:      "Negotiate in the last week of the month when teams need to hit quotas.",
		Confidence:  0.70,
		ExpiresAt:   &expiry,
	}}
}

// WeakDemandRule fires when few rentals go above asking: weak demand.
type WeakDemandRule struct{}

func (r *WeakDemandRule) Name() string { return "weak_demand" }

func (r *WeakDemandRule) Evaluate(ctx *RuleContext) []Insight {
	latest := ctx.Latest()
	if latest == nil || latest.AboveAskPercentage >= 20 {
		return nil
	}

	return []Insight{{
		Type:        TypeCompetition,
		Severity:    SeverityMedium,
		Title:       "Weak Rental Demand",
		Description: fmt.Sprintf("Only %.0f%% of rentals going above asking", latest.AboveAskPercentage),
		Action:      "Market shows weak demand. Offer 5-10% below asking rent plus concessions.",
		Confidence:  0.80,
	}}
}
