package insights

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

func TestGenerator_SortsByDescendingConfidence(t *testing.T) {
	gen := NewGenerator(zerolog.Nop())

	// Trip the declining-rent (0.95), days-on-market (0.90) and
	// weak-demand (0.80) rules at once.
	m := calmMetric()
	m.RentYoYChange = -5
	m.DaysOnMarket = 50
	m.AboveAskPercentage = 10

	found := gen.Generate([]market.MarketMetric{m}, nil)
	require.GreaterOrEqual(t, len(found), 3)

	for i := 1; i < len(found); i++ {
		assert.GreaterOrEqual(t, found[i-1].Confidence, found[i].Confidence)
	}
	assert.Equal(t, "Declining Rent Market", found[0].Title)
}

func TestGenerator_EmptyHistoryYieldsNoInsights(t *testing.T) {
	gen := NewGenerator(zerolog.Nop())
	assert.Empty(t, gen.Generate(nil, nil))
}

func TestGenerator_CalmMarketYieldsNoInsights(t *testing.T) {
	gen := NewGenerator(zerolog.Nop())
	found := gen.Generate([]market.MarketMetric{calmMetric(), calmMetric()}, nil)
	assert.Empty(t, found)
}

func TestGenerator_OwnershipAddsFindings(t *testing.T) {
	gen := NewGenerator(zerolog.Nop())
	own, err := ownership.Analyze(200000, 4000)
	require.NoError(t, err)

	without := gen.Generate([]market.MarketMetric{calmMetric()}, nil)
	with := gen.Generate([]market.MarketMetric{calmMetric()}, own)
	assert.Greater(t, len(with), len(without))

	var sawOwnership bool
	for _, in := range with {
		if in.Type == TypeOwnership {
			sawOwnership = true
		}
	}
	assert.True(t, sawOwnership)
}

func TestRegistry_EvaluateRunsAllRules(t *testing.T) {
	registry := NewPopulatedRegistry(zerolog.Nop())

	m := calmMetric()
	m.QuarterEndPressure = true
	m.MonthEndPressure = true
	fired := registry.Evaluate(&RuleContext{History: []market.MarketMetric{m}, Now: m.Timestamp})

	assert.Len(t, fired, 2)
}
