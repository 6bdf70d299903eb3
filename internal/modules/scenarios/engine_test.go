package scenarios

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(newTestRepo(t), []string{"Austin, TX"}, zerolog.Nop())
}

func testPortfolio() Portfolio {
	return Portfolio{
		ID: "portfolio-test",
		Units: []Unit{
			{UnitID: "u-1", CurrentRent: 2500, DaysOnMarket: 10},
			{UnitID: "u-2", CurrentRent: 2500, DaysOnMarket: 25},
			{UnitID: "u-3", CurrentRent: 2500, DaysOnMarket: 35},
			{UnitID: "u-4", CurrentRent: 2500, DaysOnMarket: 5},
			{UnitID: "u-5", CurrentRent: 2500, DaysOnMarket: 15},
		},
	}
}

func TestAnalyze_UnknownScenario(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Analyze("missing", testPortfolio())
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestAnalyze_RecessionRevenueImpact(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.Analyze("economic-recession", testPortfolio())
	require.NoError(t, err)
	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, "economic-recession", analysis.ScenarioID)
	assert.Equal(t, "portfolio-test", analysis.PortfolioID)

	res := analysis.Results
	assert.Equal(t, ImpactSevereNegative, res.OverallImpact)

	// Rent down 15%, demand down 25% at half weight:
	// 12500 * 0.85 * 0.875 = 9296.875
	assert.Equal(t, 12500.0, res.RevenueImpact.CurrentAnnualRevenue)
	assert.InDelta(t, 9297.0, res.RevenueImpact.ScenarioAnnualRevenue, 0.5)
	assert.InDelta(t, -25.63, res.RevenueImpact.PercentageChange, 0.01)

	// Moderate baseline of 12 months scaled by a 15% shock.
	assert.Equal(t, 14, res.RecoveryTime)
	assert.Equal(t, 20.0, res.PermanentImpact)

	// No vacancy parameter in this scenario, so occupancy holds.
	assert.Equal(t, 0.88, res.OccupancyImpact.ScenarioOccupancy)
}

func TestAnalyze_TimelineRampsThenHolds(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.Analyze("economic-recession", testPortfolio())
	require.NoError(t, err)

	timeline := analysis.Results.RevenueImpact.Timeline
	require.Len(t, timeline, 24)

	// Declines month over month through the ramp, then holds flat.
	for i := 1; i < 12; i++ {
		assert.Less(t, timeline[i].ScenarioRevenue, timeline[i-1].ScenarioRevenue)
	}
	for i := 12; i < 24; i++ {
		assert.InDelta(t, timeline[11].ScenarioRevenue, timeline[i].ScenarioRevenue, 0.001)
	}

	// Cumulative impact keeps compounding past the ramp.
	assert.Less(t, timeline[23].CumulativeImpact, timeline[11].CumulativeImpact)
	assert.Len(t, analysis.Results.OccupancyImpact.Timeline, 24)
}

func TestAnalyze_UnitRiskTiers(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.Analyze("economic-recession", testPortfolio())
	require.NoError(t, err)
	require.Len(t, analysis.UnitImpacts, 5)

	byUnit := make(map[string]UnitImpact)
	for _, u := range analysis.UnitImpacts {
		byUnit[u.UnitID] = u
	}

	// 15% rent decline: only time-on-market separates the tiers.
	assert.Equal(t, RiskMedium, byUnit["u-1"].RiskLevel)
	assert.Equal(t, RiskHigh, byUnit["u-2"].RiskLevel)
	assert.Equal(t, RiskCritical, byUnit["u-3"].RiskLevel)
	assert.Contains(t, byUnit["u-3"].RequiredActions[0], "emergency pricing")

	u := byUnit["u-3"]
	assert.Equal(t, 2125.0, u.ScenarioRent)
	assert.Equal(t, -375.0, u.RentChange)
	assert.InDelta(t, 0.55, u.OccupancyProbability, 0.0001)
	assert.InDelta(t, 27.5, u.DaysToLease, 0.0001)
}

func TestAnalyze_SupplySurgeUnitsLowRisk(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.Analyze("supply-surge", testPortfolio())
	require.NoError(t, err)

	// No rent shift in this scenario, so every unit stays low risk.
	for _, u := range analysis.UnitImpacts {
		assert.Equal(t, RiskLow, u.RiskLevel)
		assert.Equal(t, u.CurrentRent, u.ScenarioRent)
	}
	assert.Equal(t, ImpactNeutral, analysis.Results.OverallImpact)
}

func TestAnalyze_MarketImpacts(t *testing.T) {
	engine := newTestEngine(t)

	recession, err := engine.Analyze("economic-recession", testPortfolio())
	require.NoError(t, err)
	require.Len(t, recession.MarketImpacts, 1)

	m := recession.MarketImpacts[0]
	assert.Equal(t, "Austin, TX", m.Market)
	assert.Equal(t, 2500.0, m.CurrentMetrics.AverageRent)
	assert.InDelta(t, 2125.0, m.ScenarioMetrics.AverageRent, 0.01)
	assert.Equal(t, PositionWeakened, m.CompetitivePosition)
	assert.Contains(t, m.StrategicOptions[0], "differentiation")

	surge, err := engine.Analyze("supply-surge", testPortfolio())
	require.NoError(t, err)
	s := surge.MarketImpacts[0]
	assert.InDelta(t, 15.2, s.ScenarioMetrics.VacancyRate, 0.05)
	assert.Equal(t, 3500.0, s.ScenarioMetrics.NewSupply)
	assert.Equal(t, PositionSeverelyImpacted, s.CompetitivePosition)
}

func TestAnalyze_FinancialImpacts(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("rate spike breaches covenant", func(t *testing.T) {
		analysis, err := engine.Analyze("interest-rate-spike", testPortfolio())
		require.NoError(t, err)

		dsc := analysis.FinancialImpacts.DebtServiceCoverage
		assert.Equal(t, 1.45, dsc.Current)
		assert.InDelta(t, 1.09, dsc.Scenario, 0.001)
		assert.Equal(t, CovenantBreach, dsc.RiskLevel)
		assert.Negative(t, dsc.CovenantBuffer)

		assert.Equal(t, 80000.0, analysis.FinancialImpacts.LiquidityPosition.AdditionalFundingNeeded)
		assert.Equal(t, 160000.0, analysis.FinancialImpacts.CapitalRequirements.AdditionalCapital)
		assert.Equal(t, 8.2, analysis.FinancialImpacts.CapitalRequirements.CostOfCapital)
	})

	t.Run("recession leaves debt service intact", func(t *testing.T) {
		analysis, err := engine.Analyze("economic-recession", testPortfolio())
		require.NoError(t, err)

		dsc := analysis.FinancialImpacts.DebtServiceCoverage
		assert.Equal(t, 1.45, dsc.Scenario)
		assert.Equal(t, CovenantSafe, dsc.RiskLevel)
		assert.Equal(t, 6.5, analysis.FinancialImpacts.CapitalRequirements.CostOfCapital)
	})
}

func TestAnalyze_RecommendationsAndContingencies(t *testing.T) {
	engine := newTestEngine(t)

	recession, err := engine.Analyze("economic-recession", testPortfolio())
	require.NoError(t, err)

	// Moderate severity: only the pricing recommendation applies.
	require.Len(t, recession.StrategicRecommendations, 1)
	assert.Equal(t, PriorityHigh, recession.StrategicRecommendations[0].Priority)
	assert.Equal(t, "pricing", recession.StrategicRecommendations[0].Category)

	require.Len(t, recession.ContingencyPlans, 1)
	assert.Equal(t, "Revenue decline exceeds 15%", recession.ContingencyPlans[0].Trigger)

	// Two portfolio metrics plus the unemployment tracker.
	require.Len(t, recession.MonitoringMetrics, 3)
	assert.Equal(t, "Regional Unemployment Rate", recession.MonitoringMetrics[2].Metric)
	assert.InDelta(t, 5.25, recession.MonitoringMetrics[2].WarningThreshold, 0.001)

	spike, err := engine.Analyze("interest-rate-spike", testPortfolio())
	require.NoError(t, err)

	// Severe but no rent shift: only the risk recommendation, no plan.
	require.Len(t, spike.StrategicRecommendations, 1)
	assert.Equal(t, PriorityImmediate, spike.StrategicRecommendations[0].Priority)
	assert.Empty(t, spike.ContingencyPlans)
	assert.Len(t, spike.MonitoringMetrics, 2)
}

func TestAnalyze_StoredForRetrieval(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.Analyze("economic-recession", testPortfolio())
	require.NoError(t, err)

	assert.Same(t, analysis, engine.repo.GetAnalysis(analysis.ID))
}

func TestAnalyze_DefaultsEmptyPortfolioID(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.Analyze("supply-surge", Portfolio{Units: testPortfolio().Units})
	require.NoError(t, err)
	assert.Equal(t, "portfolio-1", analysis.PortfolioID)
}

func TestCompare(t *testing.T) {
	engine := newTestEngine(t)

	cmp, err := engine.Compare([]string{"economic-recession", "supply-surge"}, testPortfolio())
	require.NoError(t, err)

	require.Len(t, cmp.Scenarios, 2)
	require.Len(t, cmp.Comparison, 2)

	revenue := cmp.Comparison[0]
	assert.Equal(t, "Revenue Impact (%)", revenue.Metric)
	require.Len(t, revenue.Values, 2)
	assert.Equal(t, "economic-recession", revenue.Values[0].ScenarioID)
	assert.InDelta(t, -25.63, revenue.Values[0].Value, 0.01)

	recovery := cmp.Comparison[1]
	assert.Equal(t, "Recovery Time (months)", recovery.Metric)
	assert.Equal(t, 14.0, recovery.Values[0].Value)

	_, err = engine.Compare([]string{"economic-recession", "missing"}, testPortfolio())
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}
