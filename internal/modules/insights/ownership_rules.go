package insights

import "fmt"

// MajorLeverageRule fires when the rent exceeds estimated ownership cost
// by 30% or more: the renter could credibly buy instead.
type MajorLeverageRule struct{}

func (r *MajorLeverageRule) Name() string { return "major_leverage" }

func (r *MajorLeverageRule) Evaluate(ctx *RuleContext) []Insight {
	o := ctx.Ownership
	if o == nil || o.CurrentRent <= o.EstimatedOwnershipCost*1.3 {
		return nil
	}

	return []Insight{{
		Type:     TypeOwnership,
		Severity: SeverityHigh,
		Title:    "MAJOR LEVERAGE: Consider Buying",
		Description: fmt.Sprintf("Ownership would cost $%.0f/month vs $%.0f rent",
			o.EstimatedOwnershipCost, o.CurrentRent),
		Action:           "Either negotiate 25%+ rent reduction or seriously consider purchasing.",
		Confidence:       0.95,
		SavingsPotential: o.LandlordMonthlyProfit,
	}}
}

// HighMarginRule fires when the landlord's profit margin exceeds 25%:
// significant room for a rent reduction.
type HighMarginRule struct{}

func (r *HighMarginRule) Name() string { return "high_margin" }

func (r *HighMarginRule) Evaluate(ctx *RuleContext) []Insight {
	o := ctx.Ownership
	if o == nil || o.LandlordProfitMargin <= 0.25 {
		return nil
	}

	return []Insight{{
		Type:     TypeLeverage,
		Severity: SeverityHigh,
		Title:    "High Landlord Profit Margin",
		Description: fmt.Sprintf("Landlord making %.1f%% profit ($%.0f/month)",
			o.LandlordProfitMargin*100, o.LandlordMonthlyProfit),
		Action:           "Significant room for rent reduction. Start negotiations at 15-20% below current rent.",
		Confidence:       0.88,
		SavingsPotential: o.LandlordMonthlyProfit * 0.6,
	}}
}

// ThinMarginRule fires when the landlord's margin is under 10%: price cuts
// are unlikely, so leverage shifts to retention value.
type ThinMarginRule struct{}

func (r *ThinMarginRule) Name() string { return "thin_margin" }

func (r *ThinMarginRule) Evaluate(ctx *RuleContext) []Insight {
	o := ctx.Ownership
	if o == nil || o.LandlordProfitMargin >= 0.1 {
		return nil
	}

	return []Insight{{
		Type:             TypeLeverage,
		Severity:         SeverityMedium,
		Title:            "Landlord Cash Flow Pressure",
		Description:      fmt.Sprintf("Thin profit margin (%.1f%%)", o.LandlordProfitMargin*100),
		Action:           "Focus on tenant retention value rather than rent reduction. Negotiate longer lease for concessions.",
		Confidence:       0.75,
		SavingsPotential: o.CurrentRent * 0.05,
	}}
}
