package market

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_MapsAliasedFields(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	now := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)

	rows := []RawObservation{
		{
			"region_name":           "Austin, TX",
			"city":                  "Austin",
			"period_end":            "2026-07-31",
			"median_list_price":     2200.0,
			"median_list_price_yoy": -8.5,
			"active_listing_count":  950.0,
			"median_days_on_market": 55.0,
			"new_listing_count":     165.0,
			"sold_above_list_pct":   15.0,
			"sold_count":            150.0,
			"property_count":        200,
		},
	}

	metrics := n.Normalize(rows, now)
	require.Len(t, metrics, 1)

	m := metrics[0]
	assert.Equal(t, "Austin, TX", m.Location)
	assert.Equal(t, LevelCity, m.LocationLevel)
	assert.Equal(t, 2200.0, m.MedianRent)
	assert.Equal(t, -8.5, m.RentYoYChange)
	assert.Equal(t, 950.0, m.InventoryLevel)
	assert.Equal(t, 55.0, m.DaysOnMarket)
	assert.Equal(t, 165.0, m.NewListings)
	assert.Equal(t, 15.0, m.AboveAskPercentage)
	assert.InDelta(t, 1.1, m.ListToSoldRatio, 0.0001)
	assert.Equal(t, 200, m.SampleSize)
	assert.Equal(t, ProvenanceObserved, m.Provenance)
	assert.Equal(t, now, m.LastUpdated)
	assert.Equal(t, time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC), m.Timestamp)
}

func TestNormalize_AcceptsAlternateAliases(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	rows := []RawObservation{
		{
			"location":        "Dallas, TX",
			"median_rent":     1800.0,
			"inventory_level": 1100.0,
			"days_on_market":  42.0,
			"new_listings":    200.0,
			"above_ask_pct":   22.0,
		},
	}

	metrics := n.Normalize(rows, time.Now())
	require.Len(t, metrics, 1)
	assert.Equal(t, 1800.0, metrics[0].MedianRent)
	assert.Equal(t, 1100.0, metrics[0].InventoryLevel)
	assert.Equal(t, QualityHigh, metrics[0].DataQuality)
}

func TestNormalize_SortsMostRecentFirst(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	rows := []RawObservation{
		{"region_name": "A", "period_end": "2026-05-31", "median_rent": 1.0},
		{"region_name": "B", "period_end": "2026-07-31", "median_rent": 2.0},
		{"region_name": "C", "period_end": "2026-06-30", "median_rent": 3.0},
	}

	metrics := n.Normalize(rows, time.Now())
	require.Len(t, metrics, 3)
	assert.Equal(t, "B", metrics[0].Location)
	assert.Equal(t, "C", metrics[1].Location)
	assert.Equal(t, "A", metrics[2].Location)
}

func TestNormalize_DataQualityTiers(t *testing.T) {
	tests := []struct {
		name    string
		row     RawObservation
		quality DataQuality
	}{
		{
			name: "all five key fields high",
			row: RawObservation{
				"median_rent": 1.0, "inventory_level": 1.0, "days_on_market": 1.0,
				"new_listings": 1.0, "above_ask_pct": 1.0,
			},
			quality: QualityHigh,
		},
		{
			name: "four of five high",
			row: RawObservation{
				"median_rent": 1.0, "inventory_level": 1.0, "days_on_market": 1.0,
				"new_listings": 1.0,
			},
			quality: QualityHigh,
		},
		{
			name:    "three of five medium",
			row:     RawObservation{"median_rent": 1.0, "inventory_level": 1.0, "days_on_market": 1.0},
			quality: QualityMedium,
		},
		{
			name:    "two of five low",
			row:     RawObservation{"median_rent": 1.0, "inventory_level": 1.0},
			quality: QualityLow,
		},
		{
			name:    "empty row low",
			row:     RawObservation{"region_name": "X"},
			quality: QualityLow,
		},
	}

	n := NewNormalizer(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := n.Normalize([]RawObservation{tt.row}, time.Now())
			require.Len(t, metrics, 1)
			assert.Equal(t, tt.quality, metrics[0].DataQuality)
		})
	}
}

func TestDetermineLocationLevel_FinestWins(t *testing.T) {
	tests := []struct {
		name  string
		row   RawObservation
		level LocationLevel
	}{
		{"zip beats city", RawObservation{"zip_code": "78701", "city": "Austin"}, LevelZip},
		{"neighborhood", RawObservation{"neighborhood": "East Side"}, LevelNeighborhood},
		{"city", RawObservation{"city": "Austin"}, LevelCity},
		{"county", RawObservation{"county": "Travis"}, LevelCounty},
		{"state", RawObservation{"state": "TX"}, LevelState},
		{"metro", RawObservation{"metro": "Austin-Round Rock"}, LevelMetro},
		{"nothing national", RawObservation{}, LevelNational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, determineLocationLevel(tt.row))
		})
	}
}

func TestNormalize_MissingLocationDefaultsToUnknown(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	metrics := n.Normalize([]RawObservation{{"median_rent": 1500.0}}, time.Now())
	require.Len(t, metrics, 1)
	assert.Equal(t, "Unknown", metrics[0].Location)
}

func TestParseTimestamp_FallsBackToNow(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now, parseTimestamp(RawObservation{}, now))
	assert.Equal(t, now, parseTimestamp(RawObservation{"period_end": "not-a-date"}, now))
}
