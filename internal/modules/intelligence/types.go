// Package intelligence combines market, ownership, and insight signals
// into a single negotiation-ready recommendation.
package intelligence

import (
	"github.com/apartmentiq/leverage/internal/modules/insights"
	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

// Action identifies the recommended course of action for a renter.
type Action string

const (
	ActionBuyImmediately        Action = "buy_immediately"
	ActionNegotiateAggressively Action = "negotiate_aggressively"
	ActionRentAndNegotiate      Action = "rent_and_negotiate"
	ActionStayFlexible          Action = "stay_flexible"
)

// Recommendation is the actionable output of the orchestrator.
type Recommendation struct {
	Action          Action   `json:"action"`
	Reasoning       string   `json:"reasoning"`
	KeyTactics      []string `json:"keyTactics"`
	ExpectedSavings float64  `json:"expectedSavings"`
}

// Reliability grades how trustworthy a data source is.
type Reliability string

const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

// DataStatus reports how much the combined result can be trusted.
type DataStatus struct {
	MarketDataReliability    Reliability `json:"marketDataReliability"`
	OwnershipDataReliability Reliability `json:"ownershipDataReliability"`
	OverallConfidence        int         `json:"overallConfidence"`
}

// UnifiedIntelligence is the combined view for a single location/property.
type UnifiedIntelligence struct {
	Location             string               `json:"location"`
	MarketData           []market.MarketMetric `json:"marketData"`
	OwnershipAnalysis    *ownership.Analysis  `json:"ownershipAnalysis,omitempty"`
	CombinedInsights     []insights.Insight   `json:"combinedInsights"`
	OverallLeverageScore float64              `json:"overallLeverageScore"`
	Recommendation       Recommendation       `json:"recommendation"`
	DataStatus           DataStatus           `json:"dataStatus"`
}

// Request carries the inputs for a unified analysis. Rent and
// PropertyValue are optional; without both, the ownership layer is
// skipped and market signals carry the result alone.
type Request struct {
	Location      string  `json:"location"`
	CurrentRent   float64 `json:"currentRent,omitempty"`
	PropertyValue float64 `json:"propertyValue,omitempty"`
}
