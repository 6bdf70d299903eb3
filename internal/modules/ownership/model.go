// Package ownership estimates the landlord's cost of owning a rental
// property and the negotiation leverage the margin over that cost implies.
package ownership

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for non-positive rent or property value.
var ErrInvalidInput = errors.New("invalid input: rent and property value must be positive")

// Cost model constants. These encode standard underwriting assumptions,
// not fitted values.
const (
	loanToValue       = 0.80   // 80% LTV mortgage
	monthlyRateFactor = 0.0075 // Monthly payment factor at prevailing rates
	annualTaxRate     = 0.012  // 1.2% property tax
	monthlyInsurance  = 150.0  // Flat insurance estimate
	annualMaintenance = 0.015  // 1.5% maintenance reserve
	vacancyAllowance  = 0.05   // 5% of rent held against vacancy
)

// Recommendation is the categorical outcome of an ownership analysis.
type Recommendation string

const (
	RecommendRent      Recommendation = "rent"
	RecommendBuy       Recommendation = "buy"
	RecommendNegotiate Recommendation = "negotiate"
)

// Analysis is the derived ownership economics for one (value, rent) pair.
type Analysis struct {
	PropertyValue          float64        `json:"propertyValue"`
	CurrentRent            float64        `json:"currentRent"`
	EstimatedOwnershipCost float64        `json:"estimatedOwnershipCost"`
	LandlordProfitMargin   float64        `json:"landlordProfitMargin"`
	LandlordMonthlyProfit  float64        `json:"landlordMonthlyProfit"`
	RentToValueRatio       float64        `json:"rentToValueRatio"`
	BreakEvenRent          float64        `json:"breakEvenRent"`
	NegotiationLeverage    float64        `json:"negotiationLeverage"`
	Recommendation         Recommendation `json:"recommendation"`
	LeverageInsights       []string       `json:"leverageInsights"`
}

// Analyze computes the ownership economics for a property. Deterministic
// and side-effect free; non-positive inputs are rejected.
func Analyze(propertyValue, currentRent float64) (*Analysis, error) {
	if propertyValue <= 0 || currentRent <= 0 {
		return nil, ErrInvalidInput
	}

	monthlyMortgage := propertyValue * loanToValue * monthlyRateFactor
	monthlyTaxes := propertyValue * annualTaxRate / 12
	monthlyMaintenance := propertyValue * annualMaintenance / 12
	monthlyVacancy := currentRent * vacancyAllowance

	totalMonthlyCost := monthlyMortgage + monthlyTaxes + monthlyInsurance +
		monthlyMaintenance + monthlyVacancy

	landlordProfit := currentRent - totalMonthlyCost
	profitMargin := landlordProfit / currentRent

	analysis := &Analysis{
		PropertyValue:          propertyValue,
		CurrentRent:            currentRent,
		EstimatedOwnershipCost: totalMonthlyCost,
		LandlordProfitMargin:   profitMargin,
		LandlordMonthlyProfit:  landlordProfit,
		RentToValueRatio:       (currentRent * 12) / propertyValue,
		BreakEvenRent:          totalMonthlyCost,
		NegotiationLeverage:    clamp(profitMargin*200, 0, 100),
		Recommendation:         recommend(totalMonthlyCost, currentRent, profitMargin),
	}
	analysis.LeverageInsights = leverageInsights(analysis)

	return analysis, nil
}

func recommend(cost, rent, margin float64) Recommendation {
	switch {
	case cost < rent*0.8:
		return RecommendBuy
	case margin > 0.2:
		return RecommendNegotiate
	default:
		return RecommendRent
	}
}

func leverageInsights(a *Analysis) []string {
	position := "Moderate negotiation room"
	if a.LandlordProfitMargin > 0.25 {
		position = "High profit margin = strong negotiation position"
	} else if a.LandlordProfitMargin < 0.1 {
		position = "Thin margins = limited flexibility"
	}

	return []string{
		fmt.Sprintf("Landlord making $%.0f/month profit", a.LandlordMonthlyProfit),
		fmt.Sprintf("%.1f%% profit margin", a.LandlordProfitMargin*100),
		position,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
