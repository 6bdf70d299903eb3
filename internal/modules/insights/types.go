// Package insights derives ranked, actionable negotiation findings from a
// location's metric history and an optional ownership analysis.
package insights

import "time"

// InsightType categorizes what kind of leverage a finding represents.
type InsightType string

const (
	TypeLeverage    InsightType = "leverage"
	TypeTiming      InsightType = "timing"
	TypeSeasonal    InsightType = "seasonal"
	TypeCompetition InsightType = "competition"
	TypeOwnership   InsightType = "ownership"
)

// Severity grades how strong a finding is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Insight is one ranked, actionable finding. Insights are derived, never
// persisted; a request produces a fresh, confidence-sorted list.
type Insight struct {
	Type             InsightType `json:"insightType"`
	Severity         Severity    `json:"severity"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Action           string      `json:"actionable"`
	Confidence       float64     `json:"confidence"`
	ExpiresAt        *time.Time  `json:"expiresAt,omitempty"`
	SavingsPotential float64     `json:"savingsPotential,omitempty"`
}
