// Package scenarios models market shocks and simulates their impact on
// a rental portfolio over a 24-month horizon.
package scenarios

import (
	"errors"
	"time"
)

// ErrScenarioNotFound is returned when a scenario id does not resolve
// to a stored definition.
var ErrScenarioNotFound = errors.New("scenario not found")

// Category classifies what kind of shock a scenario models.
type Category string

const (
	CategoryMarketShock   Category = "market_shock"
	CategoryEconomicCycle Category = "economic_cycle"
	CategoryCompetitive   Category = "competitive"
	CategoryRegulatory    Category = "regulatory"
	CategoryCustom        Category = "custom"
)

// Timeframe is the horizon a scenario plays out over.
type Timeframe string

const (
	TimeframeShortTerm  Timeframe = "short_term"
	TimeframeMediumTerm Timeframe = "medium_term"
	TimeframeLongTerm   Timeframe = "long_term"
)

// Severity grades how hard a scenario hits.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityExtreme  Severity = "extreme"
)

// Well-known parameter names the simulation engine reacts to.
const (
	ParamMarketRent       = "market_rent"
	ParamRentalDemand     = "rental_demand"
	ParamVacancyRate      = "vacancy_rate"
	ParamNewSupply        = "new_supply"
	ParamInterestRates    = "interest_rates"
	ParamRefinancingCost  = "refinancing_cost"
	ParamUnemploymentRate = "unemployment_rate"
)

// Parameter is one shifted input in a scenario definition.
type Parameter struct {
	Parameter     string  `json:"parameter" msgpack:"parameter"`
	BaseValue     float64 `json:"baseValue" msgpack:"base_value"`
	ScenarioValue float64 `json:"scenarioValue" msgpack:"scenario_value"`
	ChangePercent float64 `json:"changePercent" msgpack:"change_percent"`
	Unit          string  `json:"unit" msgpack:"unit"`
	Description   string  `json:"description" msgpack:"description"`
	Confidence    float64 `json:"confidence" msgpack:"confidence"`
}

// Definition describes a scenario: what shifts, how likely, how hard.
type Definition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Timeframe   Timeframe   `json:"timeframe"`
	Probability float64     `json:"probability"`
	Severity    Severity    `json:"severity"`
	Parameters  []Parameter `json:"parameters"`
	Assumptions []string    `json:"assumptions"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	IsActive    bool        `json:"isActive"`
}

// Param returns the named parameter, or nil if the definition does not
// shift it.
func (d *Definition) Param(name string) *Parameter {
	for i := range d.Parameters {
		if d.Parameters[i].Parameter == name {
			return &d.Parameters[i]
		}
	}
	return nil
}

// Unit is one rentable unit in a portfolio snapshot.
type Unit struct {
	UnitID         string  `json:"unitId"`
	CurrentRent    float64 `json:"currentRent"`
	DaysOnMarket   int     `json:"daysOnMarket"`
	MarketPosition string  `json:"marketPosition,omitempty"`
}

// Portfolio is the snapshot a scenario analysis runs against.
type Portfolio struct {
	ID    string `json:"id"`
	Units []Unit `json:"units"`
}

// MonthlyRevenue sums the current rent across all units.
func (p *Portfolio) MonthlyRevenue() float64 {
	var total float64
	for _, u := range p.Units {
		total += u.CurrentRent
	}
	return total
}

// OverallImpact summarizes the direction of a scenario outcome.
type OverallImpact string

const (
	ImpactPositive       OverallImpact = "positive"
	ImpactNeutral        OverallImpact = "neutral"
	ImpactNegative       OverallImpact = "negative"
	ImpactSevereNegative OverallImpact = "severe_negative"
)

// RiskLevel grades per-unit exposure under a scenario.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RevenueTimeline is one month of projected revenue under a scenario.
type RevenueTimeline struct {
	Month            int     `json:"month"`
	BaseRevenue      float64 `json:"baseRevenue"`
	ScenarioRevenue  float64 `json:"scenarioRevenue"`
	CumulativeImpact float64 `json:"cumulativeImpact"`
}

// OccupancyTimeline is one month of projected occupancy under a scenario.
type OccupancyTimeline struct {
	Month             int     `json:"month"`
	BaseOccupancy     float64 `json:"baseOccupancy"`
	ScenarioOccupancy float64 `json:"scenarioOccupancy"`
	UnitsVacant       int     `json:"unitsVacant"`
}

// RevenueImpact captures the revenue shift a scenario causes.
type RevenueImpact struct {
	CurrentAnnualRevenue  float64           `json:"currentAnnualRevenue"`
	ScenarioAnnualRevenue float64           `json:"scenarioAnnualRevenue"`
	AbsoluteChange        float64           `json:"absoluteChange"`
	PercentageChange      float64           `json:"percentageChange"`
	Timeline              []RevenueTimeline `json:"timeline"`
}

// OccupancyImpact captures the occupancy shift a scenario causes.
type OccupancyImpact struct {
	CurrentOccupancy  float64             `json:"currentOccupancy"`
	ScenarioOccupancy float64             `json:"scenarioOccupancy"`
	AbsoluteChange    float64             `json:"absoluteChange"`
	Timeline          []OccupancyTimeline `json:"timeline"`
}

// PortfolioValueImpact captures the valuation shift a scenario causes.
type PortfolioValueImpact struct {
	CurrentValue     float64 `json:"currentValue"`
	ScenarioValue    float64 `json:"scenarioValue"`
	AbsoluteChange   float64 `json:"absoluteChange"`
	PercentageChange float64 `json:"percentageChange"`
}

// CashFlowImpact captures the cash flow shift a scenario causes.
type CashFlowImpact struct {
	CurrentCashFlow  float64   `json:"currentCashFlow"`
	ScenarioCashFlow float64   `json:"scenarioCashFlow"`
	MonthlyImpact    float64   `json:"monthlyImpact"`
	CumulativeImpact []float64 `json:"cumulativeImpact"`
}

// Result is the top-level quantitative outcome of a scenario run.
type Result struct {
	OverallImpact   OverallImpact        `json:"overallImpact"`
	RevenueImpact   RevenueImpact        `json:"revenueImpact"`
	OccupancyImpact OccupancyImpact      `json:"occupancyImpact"`
	PortfolioValue  PortfolioValueImpact `json:"portfolioValue"`
	CashFlowImpact  CashFlowImpact       `json:"cashFlowImpact"`
	RecoveryTime    int                  `json:"recoveryTime"`
	PermanentImpact float64              `json:"permanentImpact"`
}

// UnitImpact is the projected impact of a scenario on a single unit.
type UnitImpact struct {
	UnitID               string    `json:"unitId"`
	CurrentRent          float64   `json:"currentRent"`
	ScenarioRent         float64   `json:"scenarioRent"`
	RentChange           float64   `json:"rentChange"`
	OccupancyProbability float64   `json:"occupancyProbability"`
	DaysToLease          float64   `json:"daysToLease"`
	RequiredActions      []string  `json:"requiredActions"`
	RiskLevel            RiskLevel `json:"riskLevel"`
}

// CompetitivePosition grades how a market fares under a scenario.
type CompetitivePosition string

const (
	PositionImproved         CompetitivePosition = "improved"
	PositionMaintained       CompetitivePosition = "maintained"
	PositionWeakened         CompetitivePosition = "weakened"
	PositionSeverelyImpacted CompetitivePosition = "severely_impacted"
)

// MarketMetrics is a compact market state used for before/after views.
type MarketMetrics struct {
	AverageRent    float64 `json:"averageRent"`
	VacancyRate    float64 `json:"vacancyRate"`
	AbsorptionRate float64 `json:"absorptionRate"`
	NewSupply      float64 `json:"newSupply"`
	DemandLevel    float64 `json:"demandLevel"`
}

// MarketImpact is the projected impact of a scenario on one market.
type MarketImpact struct {
	Market              string              `json:"market"`
	CurrentMetrics      MarketMetrics       `json:"currentMetrics"`
	ScenarioMetrics     MarketMetrics       `json:"scenarioMetrics"`
	CompetitivePosition CompetitivePosition `json:"competitivePosition"`
	MarketShare         float64             `json:"marketShare"`
	StrategicOptions    []string            `json:"strategicOptions"`
}

// CovenantRisk grades debt covenant exposure.
type CovenantRisk string

const (
	CovenantSafe    CovenantRisk = "safe"
	CovenantWarning CovenantRisk = "warning"
	CovenantBreach  CovenantRisk = "breach"
)

// DebtServiceCoverage is the DSCR position under a scenario.
type DebtServiceCoverage struct {
	Current        float64      `json:"current"`
	Scenario       float64      `json:"scenario"`
	CovenantBuffer float64      `json:"covenantBuffer"`
	RiskLevel      CovenantRisk `json:"riskLevel"`
}

// LiquidityPosition is the funding position under a scenario.
type LiquidityPosition struct {
	MonthsOfRunway          float64 `json:"monthsOfRunway"`
	AdditionalFundingNeeded float64 `json:"additionalFundingNeeded"`
	CreditUtilization       float64 `json:"creditUtilization"`
}

// ReturnMetrics contrasts baseline and scenario returns.
type ReturnMetrics struct {
	CurrentROI  float64 `json:"currentROI"`
	ScenarioROI float64 `json:"scenarioROI"`
	CurrentIRR  float64 `json:"currentIRR"`
	ScenarioIRR float64 `json:"scenarioIRR"`
}

// CapitalRequirements estimates additional capital under a scenario.
type CapitalRequirements struct {
	AdditionalCapital float64  `json:"additionalCapital"`
	CapitalSources    []string `json:"capitalSources"`
	CostOfCapital     float64  `json:"costOfCapital"`
}

// FinancialImpact is the debt, liquidity, and return side of a run.
type FinancialImpact struct {
	DebtServiceCoverage DebtServiceCoverage `json:"debtServiceCoverage"`
	LiquidityPosition   LiquidityPosition   `json:"liquidityPosition"`
	ReturnMetrics       ReturnMetrics       `json:"returnMetrics"`
	CapitalRequirements CapitalRequirements `json:"capitalRequirements"`
}

// Priority orders strategic recommendations.
type Priority string

const (
	PriorityImmediate Priority = "immediate"
	PriorityHigh      Priority = "high"
	PriorityMedium    Priority = "medium"
	PriorityLow       Priority = "low"
)

// Implementation describes what executing a recommendation takes.
type Implementation struct {
	Timeline     string   `json:"timeline"`
	Cost         float64  `json:"cost"`
	Resources    []string `json:"resources"`
	Dependencies []string `json:"dependencies"`
}

// StrategicRecommendation is an engine-generated response to a scenario.
type StrategicRecommendation struct {
	Priority           Priority       `json:"priority"`
	Category           string         `json:"category"`
	Recommendation     string         `json:"recommendation"`
	Rationale          string         `json:"rationale"`
	Implementation     Implementation `json:"implementation"`
	ExpectedBenefit    string         `json:"expectedBenefit"`
	RiskMitigation     float64        `json:"riskMitigation"`
	SuccessProbability float64        `json:"successProbability"`
}

// TriggerMetric is one threshold that arms a contingency plan.
type TriggerMetric struct {
	Metric    string  `json:"metric"`
	Threshold float64 `json:"threshold"`
	Operator  string  `json:"operator"`
}

// ContingencyAction is one step of a contingency plan.
type ContingencyAction struct {
	Action        string  `json:"action"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	Timeline      string  `json:"timeline"`
	Impact        string  `json:"impact"`
	Reversibility string  `json:"reversibility"`
}

// ContingencyPlan is a pre-armed response to a deteriorating metric.
type ContingencyPlan struct {
	Trigger              string              `json:"trigger"`
	TriggerMetrics       []TriggerMetric     `json:"triggerMetrics"`
	Actions              []ContingencyAction `json:"actions"`
	DecisionPoint        string              `json:"decisionPoint"`
	EscalationPath       []string            `json:"escalationPath"`
	ResourceRequirements []string            `json:"resourceRequirements"`
	Timeline             string              `json:"timeline"`
	SuccessCriteria      []string            `json:"successCriteria"`
}

// MonitoringMetric is a metric to watch while a scenario is live.
type MonitoringMetric struct {
	Metric            string  `json:"metric"`
	CurrentValue      float64 `json:"currentValue"`
	WarningThreshold  float64 `json:"warningThreshold"`
	CriticalThreshold float64 `json:"criticalThreshold"`
	Frequency         string  `json:"frequency"`
	DataSource        string  `json:"dataSource"`
	ResponsibleParty  string  `json:"responsibleParty"`
}

// Analysis is a full scenario run: results plus the playbook around them.
type Analysis struct {
	ID                       string                    `json:"analysisId"`
	ScenarioID               string                    `json:"scenarioId"`
	PortfolioID              string                    `json:"portfolioId"`
	AnalysisDate             time.Time                 `json:"analysisDate"`
	Results                  Result                    `json:"results"`
	UnitImpacts              []UnitImpact              `json:"unitImpacts"`
	MarketImpacts            []MarketImpact            `json:"marketImpacts"`
	FinancialImpacts         FinancialImpact           `json:"financialImpacts"`
	StrategicRecommendations []StrategicRecommendation `json:"strategicRecommendations"`
	ContingencyPlans         []ContingencyPlan         `json:"contingencyPlans"`
	MonitoringMetrics        []MonitoringMetric        `json:"monitoringMetrics"`
}

// ComparisonMetric is one row of a scenario comparison table.
type ComparisonMetric struct {
	Metric string            `json:"metric"`
	Values []ComparisonValue `json:"values"`
}

// ComparisonValue is one scenario's value for a comparison metric.
type ComparisonValue struct {
	ScenarioID string  `json:"scenarioId"`
	Value      float64 `json:"value"`
}

// Comparison is the output of running several scenarios side by side.
type Comparison struct {
	Scenarios  []*Analysis        `json:"scenarios"`
	Comparison []ComparisonMetric `json:"comparison"`
}
