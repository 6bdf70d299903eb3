package whatif

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apartmentiq/leverage/internal/modules/scenarios"
)

func rentVariable(values ...float64) Variable {
	return Variable{
		Name:         "rent_change",
		Type:         VariableRentChange,
		CurrentValue: 0,
		TestValues:   values,
		Unit:         "%",
	}
}

func occupancyVariable(values ...float64) Variable {
	return Variable{
		Name:         "occupancy_target",
		Type:         VariableOccupancyTarget,
		CurrentValue: 88.5,
		TestValues:   values,
		Unit:         "%",
	}
}

func TestRun_ValidatesInput(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	tests := []struct {
		name      string
		variables []Variable
	}{
		{"no variables", nil},
		{"three variables", []Variable{rentVariable(0), occupancyVariable(85), rentVariable(5)}},
		{"unnamed variable", []Variable{{TestValues: []float64{1}}}},
		{"no test values", []Variable{{Name: "rent_change"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Run("bad", tt.variables, scenarios.Portfolio{})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRun_SingleRentVariable(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	analysis, err := engine.Run("rent sweep", []Variable{rentVariable(-10, 0, 10)}, scenarios.Portfolio{})
	require.NoError(t, err)
	require.Len(t, analysis.Results, 3)
	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, "rent sweep", analysis.Name)

	// -10% rent: revenue 125000*0.9, occupancy dragged half as fast.
	down := analysis.Results[0]
	assert.Equal(t, -10.0, down.VariableCombination["rent_change"])
	assert.Equal(t, 112500.0, down.Outcomes.Revenue)
	assert.InDelta(t, 84.08, down.Outcomes.Occupancy, 0.001)
	assert.Equal(t, 73125.0, down.Outcomes.Profitability)
	assert.Equal(t, FeasibilityMedium, down.Feasibility)

	flat := analysis.Results[1]
	assert.Equal(t, 125000.0, flat.Outcomes.Revenue)
	assert.Equal(t, 88.5, flat.Outcomes.Occupancy)
	assert.Equal(t, FeasibilityHigh, flat.Feasibility)
	assert.Empty(t, flat.Recommendations)

	up := analysis.Results[2]
	assert.Equal(t, 137500.0, up.Outcomes.Revenue)
	assert.InDelta(t, 84.08, up.Outcomes.Occupancy, 0.001)
}

func TestRun_TwoVariableCartesianProduct(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	analysis, err := engine.Run("grid", []Variable{
		rentVariable(-5, 0, 5),
		occupancyVariable(80, 90),
	}, scenarios.Portfolio{})
	require.NoError(t, err)

	require.Len(t, analysis.Results, 6)
	for _, r := range analysis.Results {
		assert.Len(t, r.VariableCombination, 2)
	}

	// Occupancy target replaces occupancy and scales revenue with it;
	// rent applies on top in variable-name order.
	first := analysis.Results[0]
	assert.Equal(t, -5.0, first.VariableCombination["rent_change"])
	assert.Equal(t, 80.0, first.VariableCombination["occupancy_target"])
	// 125000 * 0.8 * 0.95 = 95000, occupancy 80 * 0.975 = 78.
	assert.Equal(t, 95000.0, first.Outcomes.Revenue)
	assert.InDelta(t, 78.0, first.Outcomes.Occupancy, 0.001)
	assert.Equal(t, FeasibilityMedium, first.Feasibility)
	assert.Contains(t, first.Recommendations[0], "rent reduction or concessions")
}

func TestRun_LowFeasibilityFloor(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	analysis, err := engine.Run("crash", []Variable{occupancyVariable(60)}, scenarios.Portfolio{})
	require.NoError(t, err)

	r := analysis.Results[0]
	assert.Equal(t, 75000.0, r.Outcomes.Revenue)
	assert.Equal(t, FeasibilityLow, r.Feasibility)
	assert.NotEmpty(t, r.Recommendations)
}

func TestRun_PortfolioBaselineOverridesDefault(t *testing.T) {
	engine := NewEngine(zerolog.Nop())
	portfolio := scenarios.Portfolio{Units: []scenarios.Unit{
		{UnitID: "u-1", CurrentRent: 3000},
		{UnitID: "u-2", CurrentRent: 3000},
	}}

	analysis, err := engine.Run("small portfolio", []Variable{rentVariable(10)}, portfolio)
	require.NoError(t, err)
	assert.Equal(t, 6600.0, analysis.Results[0].Outcomes.Revenue)
}

func TestRun_SensitivityRanking(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	analysis, err := engine.Run("sweep", []Variable{rentVariable(-10, 0, 10)}, scenarios.Portfolio{})
	require.NoError(t, err)

	ranked := analysis.SensitivityAnalysis.MostSensitiveVariables
	require.Len(t, ranked, 1)
	assert.Equal(t, "rent_change", ranked[0].Variable)
	// Revenue spans 25000 over a 20-point input range.
	assert.InDelta(t, 1250.0, ranked[0].Sensitivity, 0.001)
	assert.Equal(t, 0.8, ranked[0].Confidence)

	require.Len(t, analysis.SensitivityAnalysis.InteractionEffects, 1)
	assert.Equal(t, 0.3, analysis.SensitivityAnalysis.InteractionEffects[0].InteractionStrength)
	assert.NotEmpty(t, analysis.SensitivityAnalysis.RobustStrategies)
}

func TestRun_OptimizationPicksBestRevenue(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	analysis, err := engine.Run("sweep", []Variable{rentVariable(-10, 0, 10)}, scenarios.Portfolio{})
	require.NoError(t, err)

	require.Len(t, analysis.OptimizationTargets, 1)
	target := analysis.OptimizationTargets[0]
	assert.Equal(t, "maximize_revenue", target.Objective)
	assert.Equal(t, 137500.0, target.OptimalStrategy.ExpectedOutcome)
	assert.Equal(t, 10.0, target.OptimalStrategy.Variables["rent_change"])
	require.Len(t, target.Constraints, 1)
	assert.Equal(t, 80.0, target.Constraints[0].Value)
}

func TestRun_Tradeoffs(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	analysis, err := engine.Run("sweep", []Variable{rentVariable(-10, 0, 10)}, scenarios.Portfolio{})
	require.NoError(t, err)

	require.Len(t, analysis.Tradeoffs, 1)
	options := analysis.Tradeoffs[0].Options
	require.Len(t, options, 2)
	assert.Equal(t, 137500.0, options[0].ExpectedOutcome)
	assert.Equal(t, 88.5, options[1].ExpectedOutcome)
	assert.Equal(t, "high", options[0].RiskLevel)
}

func TestGet(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	assert.Nil(t, engine.Get("missing"))

	analysis, err := engine.Run("kept", []Variable{rentVariable(0)}, scenarios.Portfolio{})
	require.NoError(t, err)
	assert.Same(t, analysis, engine.Get(analysis.ID))
}
