package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

func calmMetric() market.MarketMetric {
	return market.MarketMetric{
		Location:           "austin",
		Timestamp:          time.Now(),
		MedianRent:         2000,
		RentYoYChange:      1.5,
		InventoryLevel:     1000,
		DaysOnMarket:       30,
		AboveAskPercentage: 40,
		SeasonalIndex:      50,
	}
}

func ctxWith(latest market.MarketMetric, older ...market.MarketMetric) *RuleContext {
	history := append([]market.MarketMetric{latest}, older...)
	return &RuleContext{History: history, Now: time.Now()}
}

func TestHighInventoryRule(t *testing.T) {
	rule := &HighInventoryRule{}

	t.Run("fires above 120% of trailing average", func(t *testing.T) {
		latest := calmMetric()
		latest.InventoryLevel = 2000
		older := calmMetric()
		older.InventoryLevel = 1000
		// Mean of [2000, 1000, 1000] = 1333.3; 2000 > 1600.
		fired := rule.Evaluate(ctxWith(latest, older, older))

		require.Len(t, fired, 1)
		assert.Equal(t, TypeLeverage, fired[0].Type)
		assert.Equal(t, SeverityHigh, fired[0].Severity)
		assert.Equal(t, 0.85, fired[0].Confidence)
		assert.NotNil(t, fired[0].ExpiresAt)
		assert.InDelta(t, 2000*0.12, fired[0].SavingsPotential, 0.01)
	})

	t.Run("silent at average inventory", func(t *testing.T) {
		fired := rule.Evaluate(ctxWith(calmMetric(), calmMetric(), calmMetric()))
		assert.Empty(t, fired)
	})

	t.Run("silent on empty history", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(&RuleContext{Now: time.Now()}))
	})
}

func TestDaysOnMarketRule(t *testing.T) {
	rule := &DaysOnMarketRule{}

	tests := []struct {
		name     string
		days     float64
		fires    bool
		severity Severity
	}{
		{"fast market", 30, false, ""},
		{"at threshold", 45, false, ""},
		{"slow market", 50, true, SeverityMedium},
		{"stagnant market", 75, true, SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := calmMetric()
			m.DaysOnMarket = tt.days
			fired := rule.Evaluate(ctxWith(m))

			if !tt.fires {
				assert.Empty(t, fired)
				return
			}
			require.Len(t, fired, 1)
			assert.Equal(t, tt.severity, fired[0].Severity)
			assert.Equal(t, 0.90, fired[0].Confidence)
		})
	}
}

func TestDecliningRentRule(t *testing.T) {
	rule := &DecliningRentRule{}

	m := calmMetric()
	m.RentYoYChange = -4.5
	fired := rule.Evaluate(ctxWith(m))

	require.Len(t, fired, 1)
	assert.Equal(t, 0.95, fired[0].Confidence)
	assert.Contains(t, fired[0].Description, "4.5%")
	assert.InDelta(t, 2000*4.5/100, fired[0].SavingsPotential, 0.01)

	m.RentYoYChange = -2
	assert.Empty(t, rule.Evaluate(ctxWith(m)), "boundary is exclusive")
}

func TestPeakSeasonRule(t *testing.T) {
	rule := &PeakSeasonRule{}

	m := calmMetric()
	m.SeasonalIndex = 90
	fired := rule.Evaluate(ctxWith(m))

	require.Len(t, fired, 1)
	assert.Equal(t, TypeSeasonal, fired[0].Type)
	assert.InDelta(t, 2000*2.5, fired[0].SavingsPotential, 0.01)

	m.SeasonalIndex = 75
	assert.Empty(t, rule.Evaluate(ctxWith(m)))
}

func TestTimingPressureRules(t *testing.T) {
	m := calmMetric()
	m.QuarterEndPressure = true
	m.MonthEndPressure = true
	ctx := ctxWith(m)

	quarter := (&QuarterEndRule{}).Evaluate(ctx)
	require.Len(t, quarter, 1)
	assert.Equal(t, TypeTiming, quarter[0].Type)
	require.NotNil(t, quarter[0].ExpiresAt)
	assert.True(t, quarter[0].ExpiresAt.After(ctx.Now))

	month := (&MonthEndRule{}).Evaluate(ctx)
	require.Len(t, month, 1)
	assert.Equal(t, SeverityMedium, month[0].Severity)
	assert.Equal(t, 0.70, month[0].Confidence)
}

func TestWeakDemandRule(t *testing.T) {
	rule := &WeakDemandRule{}

	m := calmMetric()
	m.AboveAskPercentage = 12
	fired := rule.Evaluate(ctxWith(m))

	require.Len(t, fired, 1)
	assert.Equal(t, TypeCompetition, fired[0].Type)
	assert.Contains(t, fired[0].Description, "12%")

	m.AboveAskPercentage = 20
	assert.Empty(t, rule.Evaluate(ctxWith(m)))
}

func TestOwnershipRules(t *testing.T) {
	t.Run("all silent without ownership analysis", func(t *testing.T) {
		ctx := ctxWith(calmMetric())
		assert.Empty(t, (&MajorLeverageRule{}).Evaluate(ctx))
		assert.Empty(t, (&HighMarginRule{}).Evaluate(ctx))
		assert.Empty(t, (&ThinMarginRule{}).Evaluate(ctx))
	})

	t.Run("major leverage when rent dwarfs ownership cost", func(t *testing.T) {
		own, err := ownership.Analyze(200000, 4000)
		require.NoError(t, err)
		require.Greater(t, own.CurrentRent, own.EstimatedOwnershipCost*1.3)

		ctx := ctxWith(calmMetric())
		ctx.Ownership = own

		fired := (&MajorLeverageRule{}).Evaluate(ctx)
		require.Len(t, fired, 1)
		assert.Equal(t, TypeOwnership, fired[0].Type)
		assert.Equal(t, 0.95, fired[0].Confidence)
		assert.Equal(t, own.LandlordMonthlyProfit, fired[0].SavingsPotential)

		// Margin is 50%, so the high-margin rule fires too.
		margin := (&HighMarginRule{}).Evaluate(ctx)
		require.Len(t, margin, 1)
		assert.InDelta(t, own.LandlordMonthlyProfit*0.6, margin[0].SavingsPotential, 0.01)
	})

	t.Run("thin margin shifts to retention leverage", func(t *testing.T) {
		own, err := ownership.Analyze(300000, 3000)
		require.NoError(t, err)
		require.Less(t, own.LandlordProfitMargin, 0.1)

		ctx := ctxWith(calmMetric())
		ctx.Ownership = own

		fired := (&ThinMarginRule{}).Evaluate(ctx)
		require.Len(t, fired, 1)
		assert.Equal(t, SeverityMedium, fired[0].Severity)
		assert.InDelta(t, 3000*0.05, fired[0].SavingsPotential, 0.01)
		assert.Empty(t, (&MajorLeverageRule{}).Evaluate(ctx))
		assert.Empty(t, (&HighMarginRule{}).Evaluate(ctx))
	})
}
