package whatif

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/apartmentiq/leverage/internal/modules/scenarios"
)

// Baseline defaults when the portfolio snapshot is empty.
const (
	defaultBaseRevenue = 125000.0
	baseOccupancyPct   = 88.5
	baseRiskScore      = 30.0
	noiMargin          = 0.65
	maxVariables       = 2
)

// Engine runs what-if enumerations and keeps completed analyses in
// memory keyed by id.
type Engine struct {
	log zerolog.Logger

	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// NewEngine creates a what-if engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log:      log.With().Str("module", "whatif").Logger(),
		analyses: make(map[string]*Analysis),
	}
}

// Run enumerates every combination of the given variables against the
// portfolio baseline. One or two variables are supported; exhaustive
// enumeration past two dimensions buys little insight for its cost.
func (e *Engine) Run(name string, variables []Variable, portfolio scenarios.Portfolio) (*Analysis, error) {
	if len(variables) == 0 {
		return nil, fmt.Errorf("%w: at least one variable is required", ErrInvalidInput)
	}
	if len(variables) > maxVariables {
		return nil, fmt.Errorf("%w: at most %d variables are supported", ErrInvalidInput, maxVariables)
	}
	for _, v := range variables {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: variable name is required", ErrInvalidInput)
		}
		if len(v.TestValues) == 0 {
			return nil, fmt.Errorf("%w: variable %s has no test values", ErrInvalidInput, v.Name)
		}
	}

	baseRevenue := portfolio.MonthlyRevenue()
	if baseRevenue == 0 {
		baseRevenue = defaultBaseRevenue
	}

	results := e.enumerate(variables, baseRevenue)

	analysis := &Analysis{
		ID:                  uuid.New().String(),
		Name:                name,
		Description:         fmt.Sprintf("What-if analysis with %d variables", len(variables)),
		Variables:           variables,
		Results:             results,
		SensitivityAnalysis: sensitivity(variables, results),
		OptimizationTargets: optimizationTargets(results),
		Tradeoffs:           tradeoffs(results),
	}

	e.mu.Lock()
	e.analyses[analysis.ID] = analysis
	e.mu.Unlock()

	e.log.Info().
		Str("analysis_id", analysis.ID).
		Int("variables", len(variables)).
		Int("combinations", len(results)).
		Msg("What-if analysis complete")

	return analysis, nil
}

// Get returns a previously run analysis, or nil.
func (e *Engine) Get(id string) *Analysis {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.analyses[id]
}

func (e *Engine) enumerate(variables []Variable, baseRevenue float64) []Result {
	var results []Result
	for _, v1 := range variables[0].TestValues {
		if len(variables) > 1 {
			for _, v2 := range variables[1].TestValues {
				combination := map[string]float64{
					variables[0].Name: v1,
					variables[1].Name: v2,
				}
				results = append(results, buildResult(combination, baseRevenue))
			}
		} else {
			combination := map[string]float64{variables[0].Name: v1}
			results = append(results, buildResult(combination, baseRevenue))
		}
	}
	return results
}

func buildResult(combination map[string]float64, baseRevenue float64) Result {
	outcomes := project(combination, baseRevenue)
	return Result{
		VariableCombination: combination,
		Outcomes:            outcomes,
		Feasibility:         assessFeasibility(outcomes),
		Recommendations:     recommendations(outcomes),
	}
}

// project applies each variable's effect to the baseline. Rent moves
// scale revenue directly and drag occupancy half as fast; occupancy
// targets replace occupancy and scale revenue with it.
func project(combination map[string]float64, baseRevenue float64) Outcomes {
	revenue := baseRevenue
	occupancy := baseOccupancyPct
	riskScore := baseRiskScore

	names := make([]string, 0, len(combination))
	for name := range combination {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := combination[name]
		switch {
		case strings.Contains(name, "rent"):
			revenue *= 1 + value/100
			occupancy *= 1 - math.Abs(value)/200
		case strings.Contains(name, "occupancy"):
			occupancy = value
			revenue *= value / 100
		}
	}

	return Outcomes{
		Revenue:       math.Round(revenue),
		Occupancy:     roundTo(occupancy, 2),
		Profitability: math.Round(revenue * noiMargin),
		RiskScore:     math.Round(riskScore),
	}
}

func assessFeasibility(o Outcomes) Feasibility {
	if o.Occupancy < 70 || o.Revenue < 80000 {
		return FeasibilityLow
	}
	if o.Occupancy < 85 || o.Revenue < 110000 {
		return FeasibilityMedium
	}
	return FeasibilityHigh
}

func recommendations(o Outcomes) []string {
	var recs []string
	if o.Occupancy < 80 {
		recs = append(recs, "Consider rent reduction or concessions to improve occupancy")
	}
	if o.Revenue > 140000 {
		recs = append(recs, "Strong revenue performance - consider expansion opportunities")
	}
	if o.RiskScore > 60 {
		recs = append(recs, "High risk scenario - implement additional risk controls")
	}
	return recs
}

// sensitivity ranks variables by revenue moved per unit of input range.
func sensitivity(variables []Variable, results []Result) Sensitivity {
	ranked := make([]VariableSensitivity, 0, len(variables))
	for _, v := range variables {
		ranked = append(ranked, VariableSensitivity{
			Variable:    v.Name,
			Sensitivity: variableSensitivity(v, results),
			Confidence:  0.8,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sensitivity > ranked[j].Sensitivity
	})

	interactionVars := make([]string, 0, maxVariables)
	for _, v := range variables {
		interactionVars = append(interactionVars, v.Name)
	}

	return Sensitivity{
		MostSensitiveVariables: ranked,
		InteractionEffects: []InteractionEffect{
			{
				Variables:           interactionVars,
				InteractionStrength: 0.3,
				Description:         "Moderate interaction between pricing and occupancy variables",
			},
		},
		RobustStrategies: []string{
			"Maintain pricing flexibility",
			"Focus on occupancy optimization",
			"Implement dynamic pricing strategies",
		},
	}
}

func variableSensitivity(v Variable, results []Result) float64 {
	revenues := make([]float64, 0, len(results))
	for _, r := range results {
		if _, ok := r.VariableCombination[v.Name]; ok {
			revenues = append(revenues, r.Outcomes.Revenue)
		}
	}
	if len(revenues) < 2 {
		return 0
	}

	revenueRange := floats.Max(revenues) - floats.Min(revenues)
	variableRange := floats.Max(v.TestValues) - floats.Min(v.TestValues)
	if variableRange <= 0 {
		return 0
	}
	return revenueRange / variableRange
}

func optimizationTargets(results []Result) []OptimizationTarget {
	best := results[0]
	for _, r := range results[1:] {
		if r.Outcomes.Revenue > best.Outcomes.Revenue {
			best = r
		}
	}

	return []OptimizationTarget{
		{
			Objective: "maximize_revenue",
			Weight:    1.0,
			Constraints: []Constraint{
				{Variable: "occupancy", Operator: "min", Value: 80, Description: "Minimum 80% occupancy"},
			},
			OptimalStrategy: OptimalStrategy{
				Variables:       best.VariableCombination,
				ExpectedOutcome: best.Outcomes.Revenue,
				Confidence:      0.8,
			},
		},
	}
}

func tradeoffs(results []Result) []Tradeoff {
	revenues := make([]float64, 0, len(results))
	occupancies := make([]float64, 0, len(results))
	for _, r := range results {
		revenues = append(revenues, r.Outcomes.Revenue)
		occupancies = append(occupancies, r.Outcomes.Occupancy)
	}

	return []Tradeoff{
		{
			Tradeoff: "Revenue vs. Occupancy",
			Options: []TradeoffOption{
				{
					Name:            "High Revenue Strategy",
					Benefits:        []string{"Maximum revenue potential", "Higher profit margins"},
					Costs:           []string{"Lower occupancy", "Higher vacancy risk"},
					RiskLevel:       "high",
					ExpectedOutcome: floats.Max(revenues),
					Probability:     0.6,
				},
				{
					Name:            "High Occupancy Strategy",
					Benefits:        []string{"Stable occupancy", "Lower vacancy risk", "Predictable cash flow"},
					Costs:           []string{"Lower revenue per unit", "Reduced profit margins"},
					RiskLevel:       "low",
					ExpectedOutcome: floats.Max(occupancies),
					Probability:     0.9,
				},
			},
			Recommendation: "Balanced approach targeting 85% occupancy with moderate pricing",
			RiskAssessment: "Medium risk with good upside potential",
		},
	}
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
