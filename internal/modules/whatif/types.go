// Package whatif enumerates variable combinations against a portfolio
// baseline and reports outcomes, sensitivities, and tradeoffs.
package whatif

import "errors"

// ErrInvalidInput is returned when an analysis request cannot be run as
// given.
var ErrInvalidInput = errors.New("invalid what-if input")

// VariableType classifies what a test variable perturbs.
type VariableType string

const (
	VariableRentChange      VariableType = "rent_change"
	VariableOccupancyTarget VariableType = "occupancy_target"
	VariableConcessionLevel VariableType = "concession_level"
	VariableMarketCondition VariableType = "market_condition"
)

// Variable is one input dimension of a what-if analysis.
type Variable struct {
	Name         string       `json:"name"`
	Type         VariableType `json:"type"`
	CurrentValue float64      `json:"currentValue"`
	TestValues   []float64    `json:"testValues"`
	Unit         string       `json:"unit"`
	Description  string       `json:"description"`
}

// Feasibility grades how realistic a projected outcome is.
type Feasibility string

const (
	FeasibilityHigh   Feasibility = "high"
	FeasibilityMedium Feasibility = "medium"
	FeasibilityLow    Feasibility = "low"
)

// Outcomes is the projected state for one variable combination.
type Outcomes struct {
	Revenue       float64 `json:"revenue"`
	Occupancy     float64 `json:"occupancy"`
	Profitability float64 `json:"profitability"`
	RiskScore     float64 `json:"riskScore"`
}

// Result is one enumerated combination with its projected outcomes.
type Result struct {
	VariableCombination map[string]float64 `json:"variableCombination"`
	Outcomes            Outcomes           `json:"outcomes"`
	Feasibility         Feasibility        `json:"feasibility"`
	Recommendations     []string           `json:"recommendations"`
}

// VariableSensitivity reports how strongly one variable moves revenue.
type VariableSensitivity struct {
	Variable    string  `json:"variable"`
	Sensitivity float64 `json:"sensitivity"`
	Confidence  float64 `json:"confidence"`
}

// InteractionEffect describes coupling between two variables.
type InteractionEffect struct {
	Variables           []string `json:"variables"`
	InteractionStrength float64  `json:"interactionStrength"`
	Description         string   `json:"description"`
}

// Sensitivity is the sensitivity section of an analysis.
type Sensitivity struct {
	MostSensitiveVariables []VariableSensitivity `json:"mostSensitiveVariables"`
	InteractionEffects     []InteractionEffect   `json:"interactionEffects"`
	RobustStrategies       []string              `json:"robustStrategies"`
}

// Constraint bounds a variable during optimization.
type Constraint struct {
	Variable    string  `json:"variable"`
	Operator    string  `json:"operator"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// OptimalStrategy is the best combination found for an objective.
type OptimalStrategy struct {
	Variables       map[string]float64 `json:"variables"`
	ExpectedOutcome float64            `json:"expectedOutcome"`
	Confidence      float64            `json:"confidence"`
}

// OptimizationTarget pairs an objective with its best strategy.
type OptimizationTarget struct {
	Objective       string          `json:"objective"`
	Weight          float64         `json:"weight"`
	Constraints     []Constraint    `json:"constraints"`
	OptimalStrategy OptimalStrategy `json:"optimalStrategy"`
}

// TradeoffOption is one side of a strategic tradeoff.
type TradeoffOption struct {
	Name            string   `json:"name"`
	Benefits        []string `json:"benefits"`
	Costs           []string `json:"costs"`
	RiskLevel       string   `json:"riskLevel"`
	ExpectedOutcome float64  `json:"expectedOutcome"`
	Probability     float64  `json:"probability"`
}

// Tradeoff contrasts competing strategies over the result set.
type Tradeoff struct {
	Tradeoff       string           `json:"tradeoff"`
	Options        []TradeoffOption `json:"options"`
	Recommendation string           `json:"recommendation"`
	RiskAssessment string           `json:"riskAssessment"`
}

// Analysis is a complete what-if run.
type Analysis struct {
	ID                  string               `json:"analysisId"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Variables           []Variable           `json:"variables"`
	Results             []Result             `json:"results"`
	SensitivityAnalysis Sensitivity          `json:"sensitivityAnalysis"`
	OptimizationTargets []OptimizationTarget `json:"optimizationTargets"`
	Tradeoffs           []Tradeoff           `json:"tradeoffs"`
}
