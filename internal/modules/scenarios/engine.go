package scenarios

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Simulation constants. Impacts ramp linearly to full effect over the
// first year and hold for the second.
const (
	timelineMonths   = 24
	rampMonths       = 12.0
	baseOccupancy    = 0.88
	occupancyFloor   = 0.5
	noiMargin        = 0.65
	valuationMonths  = 12.0
	covenantDSCR     = 1.25
	warningDSCR      = 1.35
	currentDSCR      = 1.45
	demandDamping    = 0.5
	vacancyDamping   = 0.3
	valueDamping     = 0.5
	dscrRateDamping  = 0.3
	defaultUnitRent  = 2500.0
	defaultUnitCount = 100
)

// Recovery horizon in months by severity, before scaling by impact depth.
var baseRecoveryMonths = map[Severity]float64{
	SeverityMild:     6,
	SeverityModerate: 12,
	SeveritySevere:   24,
	SeverityExtreme:  36,
}

// Share of the impact that never recovers, by severity.
var permanentImpactShare = map[Severity]float64{
	SeverityMild:     0.1,
	SeverityModerate: 0.2,
	SeveritySevere:   0.4,
	SeverityExtreme:  0.6,
}

// Engine runs scenario simulations against portfolio snapshots.
type Engine struct {
	repo    *Repository
	markets []string
	log     zerolog.Logger
}

// NewEngine creates a scenario engine. The markets list drives the
// per-market impact section of each analysis.
func NewEngine(repo *Repository, markets []string, log zerolog.Logger) *Engine {
	return &Engine{
		repo:    repo,
		markets: markets,
		log:     log.With().Str("module", "scenarios").Logger(),
	}
}

// Analyze runs the named scenario against a portfolio snapshot and
// stores the resulting analysis. Returns ErrScenarioNotFound when the
// id does not resolve.
func (e *Engine) Analyze(scenarioID string, portfolio Portfolio) (*Analysis, error) {
	def, err := e.repo.Get(scenarioID)
	if err != nil {
		return nil, err
	}

	if portfolio.ID == "" {
		portfolio.ID = "portfolio-1"
	}

	analysis := &Analysis{
		ID:                       uuid.New().String(),
		ScenarioID:               scenarioID,
		PortfolioID:              portfolio.ID,
		AnalysisDate:             time.Now(),
		Results:                  e.simulate(def, portfolio),
		UnitImpacts:              e.unitImpacts(def, portfolio),
		MarketImpacts:            e.marketImpacts(def),
		FinancialImpacts:         e.financialImpacts(def),
		StrategicRecommendations: strategicRecommendations(def),
		ContingencyPlans:         contingencyPlans(def),
		MonitoringMetrics:        monitoringMetrics(def),
	}

	e.repo.SaveAnalysis(analysis)
	e.log.Info().
		Str("scenario_id", scenarioID).
		Str("analysis_id", analysis.ID).
		Str("overall_impact", string(analysis.Results.OverallImpact)).
		Int("recovery_months", analysis.Results.RecoveryTime).
		Msg("Scenario analysis complete")

	return analysis, nil
}

// Compare runs several scenarios against the same portfolio and builds
// a side-by-side metric table.
func (e *Engine) Compare(scenarioIDs []string, portfolio Portfolio) (*Comparison, error) {
	analyses := make([]*Analysis, 0, len(scenarioIDs))
	for _, id := range scenarioIDs {
		analysis, err := e.Analyze(id, portfolio)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	revenueRow := ComparisonMetric{Metric: "Revenue Impact (%)"}
	recoveryRow := ComparisonMetric{Metric: "Recovery Time (months)"}
	for _, a := range analyses {
		revenueRow.Values = append(revenueRow.Values, ComparisonValue{
			ScenarioID: a.ScenarioID,
			Value:      a.Results.RevenueImpact.PercentageChange,
		})
		recoveryRow.Values = append(recoveryRow.Values, ComparisonValue{
			ScenarioID: a.ScenarioID,
			Value:      float64(a.Results.RecoveryTime),
		})
	}

	return &Comparison{
		Scenarios:  analyses,
		Comparison: []ComparisonMetric{revenueRow, recoveryRow},
	}, nil
}

func (e *Engine) simulate(def *Definition, portfolio Portfolio) Result {
	currentRevenue := portfolio.MonthlyRevenue()

	rentImpact := paramImpact(def, ParamMarketRent)
	demandImpact := paramImpact(def, ParamRentalDemand)
	vacancyImpact := paramImpact(def, ParamVacancyRate)

	scenarioRevenue := currentRevenue * (1 + rentImpact) * (1 + demandImpact*demandDamping)
	scenarioOccupancy := math.Max(occupancyFloor, baseOccupancy*(1-math.Abs(vacancyImpact)*vacancyDamping))

	unitCount := len(portfolio.Units)
	if unitCount == 0 {
		unitCount = defaultUnitCount
	}

	revenueTimeline := make([]RevenueTimeline, 0, timelineMonths)
	occupancyTimeline := make([]OccupancyTimeline, 0, timelineMonths)
	cumulativeCashFlow := make([]float64, 0, timelineMonths)

	for month := 1; month <= timelineMonths; month++ {
		progress := math.Min(1, float64(month)/rampMonths)
		monthlyRevenue := currentRevenue + (scenarioRevenue-currentRevenue)*progress
		monthlyOccupancy := baseOccupancy + (scenarioOccupancy-baseOccupancy)*progress
		cumulative := (monthlyRevenue - currentRevenue) * float64(month)

		revenueTimeline = append(revenueTimeline, RevenueTimeline{
			Month:            month,
			BaseRevenue:      currentRevenue,
			ScenarioRevenue:  monthlyRevenue,
			CumulativeImpact: cumulative,
		})
		occupancyTimeline = append(occupancyTimeline, OccupancyTimeline{
			Month:             month,
			BaseOccupancy:     baseOccupancy,
			ScenarioOccupancy: monthlyOccupancy,
			UnitsVacant:       int(math.Round((1 - monthlyOccupancy) * float64(unitCount))),
		})
		cumulativeCashFlow = append(cumulativeCashFlow, cumulative*noiMargin)
	}

	percentageChange := 0.0
	if currentRevenue > 0 {
		percentageChange = roundTo((scenarioRevenue-currentRevenue)/currentRevenue*100, 2)
	}

	currentValue := currentRevenue * valuationMonths
	scenarioValue := scenarioRevenue * valuationMonths * (1 - math.Abs(rentImpact)*valueDamping)
	valueChange := scenarioValue - currentValue
	valuePct := 0.0
	if currentValue > 0 {
		valuePct = roundTo(valueChange/currentValue*100, 2)
	}

	return Result{
		OverallImpact: classifyImpact(rentImpact),
		RevenueImpact: RevenueImpact{
			CurrentAnnualRevenue:  math.Round(currentRevenue),
			ScenarioAnnualRevenue: math.Round(scenarioRevenue),
			AbsoluteChange:        math.Round(scenarioRevenue - currentRevenue),
			PercentageChange:      percentageChange,
			Timeline:              revenueTimeline,
		},
		OccupancyImpact: OccupancyImpact{
			CurrentOccupancy:  roundTo(baseOccupancy, 2),
			ScenarioOccupancy: roundTo(scenarioOccupancy, 2),
			AbsoluteChange:    roundTo(scenarioOccupancy-baseOccupancy, 2),
			Timeline:          occupancyTimeline,
		},
		PortfolioValue: PortfolioValueImpact{
			CurrentValue:     currentValue,
			ScenarioValue:    scenarioValue,
			AbsoluteChange:   math.Round(valueChange),
			PercentageChange: valuePct,
		},
		CashFlowImpact: CashFlowImpact{
			CurrentCashFlow:  currentRevenue * noiMargin,
			ScenarioCashFlow: scenarioRevenue * noiMargin,
			MonthlyImpact:    (scenarioRevenue - currentRevenue) * noiMargin / 12,
			CumulativeImpact: cumulativeCashFlow,
		},
		RecoveryTime:    recoveryTime(def.Severity, rentImpact),
		PermanentImpact: permanentImpactShare[def.Severity] * 100,
	}
}

func (e *Engine) unitImpacts(def *Definition, portfolio Portfolio) []UnitImpact {
	rentImpact := paramImpact(def, ParamMarketRent)

	impacts := make([]UnitImpact, 0, len(portfolio.Units))
	for _, unit := range portfolio.Units {
		currentRent := unit.CurrentRent
		if currentRent == 0 {
			currentRent = defaultUnitRent
		}
		scenarioRent := math.Round(currentRent * (1 + rentImpact))
		rentChange := scenarioRent - currentRent

		risk := unitRisk(unit.DaysOnMarket, rentImpact)

		impacts = append(impacts, UnitImpact{
			UnitID:               unit.UnitID,
			CurrentRent:          currentRent,
			ScenarioRent:         scenarioRent,
			RentChange:           rentChange,
			OccupancyProbability: math.Max(0.3, 0.85+rentImpact*2),
			DaysToLease:          math.Max(5, 20+math.Abs(rentChange)/50),
			RequiredActions:      unitActions(risk),
			RiskLevel:            risk,
		})
	}
	return impacts
}

func (e *Engine) marketImpacts(def *Definition) []MarketImpact {
	current := MarketMetrics{
		AverageRent:    2500,
		VacancyRate:    8.5,
		AbsorptionRate: 85,
		NewSupply:      1200,
		DemandLevel:    100,
	}

	scenario := MarketMetrics{
		AverageRent:    current.AverageRent,
		VacancyRate:    current.VacancyRate,
		AbsorptionRate: current.AbsorptionRate * 0.8,
		NewSupply:      current.NewSupply,
		DemandLevel:    current.DemandLevel * 0.85,
	}
	if p := def.Param(ParamMarketRent); p != nil {
		scenario.AverageRent = current.AverageRent * (1 + p.ChangePercent/100)
	}
	if p := def.Param(ParamVacancyRate); p != nil {
		scenario.VacancyRate = current.VacancyRate * (1 + p.ChangePercent/100)
	}
	if p := def.Param(ParamNewSupply); p != nil {
		scenario.NewSupply = p.ScenarioValue
	}

	position := competitivePosition(current, scenario)

	impacts := make([]MarketImpact, 0, len(e.markets))
	for _, m := range e.markets {
		impacts = append(impacts, MarketImpact{
			Market:              m,
			CurrentMetrics:      current,
			ScenarioMetrics:     scenario,
			CompetitivePosition: position,
			MarketShare:         12.5,
			StrategicOptions:    marketStrategicOptions(position),
		})
	}
	return impacts
}

func (e *Engine) financialImpacts(def *Definition) FinancialImpact {
	rateParam := def.Param(ParamInterestRates)
	refiParam := def.Param(ParamRefinancingCost)

	scenarioDSCR := currentDSCR
	if rateParam != nil {
		scenarioDSCR = currentDSCR * (1 - rateParam.ChangePercent/100*dscrRateDamping)
	}
	scenarioDSCR = roundTo(scenarioDSCR, 2)

	risk := CovenantSafe
	switch {
	case scenarioDSCR < covenantDSCR:
		risk = CovenantBreach
	case scenarioDSCR < warningDSCR:
		risk = CovenantWarning
	}

	var fundingGap float64
	if refiParam != nil {
		fundingGap = refiParam.ScenarioValue - refiParam.BaseValue
	}

	costOfCapital := 6.5
	if rateParam != nil {
		costOfCapital = rateParam.ScenarioValue
	}

	return FinancialImpact{
		DebtServiceCoverage: DebtServiceCoverage{
			Current:        currentDSCR,
			Scenario:       scenarioDSCR,
			CovenantBuffer: scenarioDSCR - covenantDSCR,
			RiskLevel:      risk,
		},
		LiquidityPosition: LiquidityPosition{
			MonthsOfRunway:          11.6,
			AdditionalFundingNeeded: fundingGap,
			CreditUtilization:       0.65,
		},
		ReturnMetrics: ReturnMetrics{
			CurrentROI:  8.5,
			ScenarioROI: 6.2,
			CurrentIRR:  12.3,
			ScenarioIRR: 9.1,
		},
		CapitalRequirements: CapitalRequirements{
			AdditionalCapital: fundingGap * 2,
			CapitalSources:    []string{"Credit facilities", "Partner capital", "Asset sales"},
			CostOfCapital:     costOfCapital,
		},
	}
}

// paramImpact returns the fractional change a scenario applies to a
// parameter, 0 when the parameter is not shifted.
func paramImpact(def *Definition, name string) float64 {
	if p := def.Param(name); p != nil {
		return p.ChangePercent / 100
	}
	return 0
}

func classifyImpact(rentImpact float64) OverallImpact {
	switch {
	case rentImpact < -0.1:
		return ImpactSevereNegative
	case rentImpact < -0.05:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

func unitRisk(daysOnMarket int, rentImpact float64) RiskLevel {
	switch {
	case daysOnMarket > 30 && rentImpact < -0.1:
		return RiskCritical
	case daysOnMarket > 21 && rentImpact < -0.05:
		return RiskHigh
	case rentImpact > -0.03:
		return RiskLow
	default:
		return RiskMedium
	}
}

func competitivePosition(current, scenario MarketMetrics) CompetitivePosition {
	rentChange := (scenario.AverageRent - current.AverageRent) / current.AverageRent
	vacancyChange := (scenario.VacancyRate - current.VacancyRate) / current.VacancyRate

	switch {
	case rentChange < -0.15 || vacancyChange > 0.5:
		return PositionSeverelyImpacted
	case rentChange < -0.05 || vacancyChange > 0.2:
		return PositionWeakened
	case rentChange > 0 && vacancyChange < 0:
		return PositionImproved
	default:
		return PositionMaintained
	}
}

// recoveryTime scales the severity baseline by the depth of the rent
// impact: deeper shocks take proportionally longer to unwind.
func recoveryTime(severity Severity, rentImpact float64) int {
	base, ok := baseRecoveryMonths[severity]
	if !ok {
		base = baseRecoveryMonths[SeverityModerate]
	}
	return int(math.Round(base * (1 + math.Abs(rentImpact))))
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
