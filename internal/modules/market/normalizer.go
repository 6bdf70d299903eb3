package market

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// keyFieldAliases maps each of the five key metric fields to the feed field
// names that may carry it, in priority order. Different trackers name the
// same column differently; the normalizer accepts any of them.
var keyFieldAliases = map[string][]string{
	"medianRent":     {"median_list_price", "median_sale_price", "median_rent"},
	"inventoryLevel": {"active_listing_count", "inventory_level", "inventory"},
	"daysOnMarket":   {"median_days_on_market", "days_on_market"},
	"newListings":    {"new_listing_count", "new_listings"},
	"aboveAskPct":    {"sold_above_list_pct", "above_ask_pct"},
}

// Normalizer converts raw location-tagged feed rows into canonical
// MarketMetric records. It is a pure transform: no side effects, safe to
// rerun on the same batch.
type Normalizer struct {
	log zerolog.Logger
}

// NewNormalizer creates a new metric normalizer.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{
		log: log.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize maps a batch of raw observations to MarketMetric records,
// ordered most-recent first. Missing numeric fields default to 0 and
// downgrade the record's quality tier. now supplies the wall clock for
// LastUpdated stamps.
func (n *Normalizer) Normalize(rows []RawObservation, now time.Time) []MarketMetric {
	metrics := make([]MarketMetric, 0, len(rows))

	for _, row := range rows {
		timestamp := parseTimestamp(row, now)

		metric := MarketMetric{
			Location:      stringField(row, "region_name", "city", "metro", "location"),
			LocationLevel: determineLocationLevel(row),
			Timestamp:     timestamp,

			MedianRent:    numericField(row, keyFieldAliases["medianRent"]...),
			RentYoYChange: numericField(row, "median_list_price_yoy", "rent_yoy_change"),
			RentMoMChange: numericField(row, "median_list_price_mm", "rent_mom_change"),

			InventoryLevel:      numericField(row, keyFieldAliases["inventoryLevel"]...),
			DaysOnMarket:        numericField(row, keyFieldAliases["daysOnMarket"]...),
			NewListings:         numericField(row, keyFieldAliases["newListings"]...),
			PriceDropPercentage: numericField(row, "price_drop_count_yoy", "price_drop_pct"),

			AboveAskPercentage: numericField(row, keyFieldAliases["aboveAskPct"]...),
			ListToSoldRatio:    listToSoldRatio(row),
			TourDemand:         numericField(row, "tours_per_listing", "tour_demand"),

			SeasonalIndex:      SeasonalIndex(timestamp),
			QuarterEndPressure: IsQuarterEndPressure(timestamp),
			MonthEndPressure:   IsMonthEndPressure(timestamp),

			DataQuality: assessDataQuality(row),
			SampleSize:  int(numericField(row, "property_count", "sample_size")),
			Provenance:  ProvenanceObserved,
			LastUpdated: now,
		}

		if metric.Location == "" {
			metric.Location = "Unknown"
		}

		metrics = append(metrics, metric)
	}

	// Most-recent first
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Timestamp.After(metrics[j].Timestamp)
	})

	n.log.Debug().
		Int("rows", len(rows)).
		Int("metrics", len(metrics)).
		Msg("Normalized feed batch")

	return metrics
}

// assessDataQuality grades a row by how many of the five key fields it carries:
// >=80% high, >=50% medium, else low.
func assessDataQuality(row RawObservation) DataQuality {
	present := 0
	for _, aliases := range keyFieldAliases {
		if _, ok := firstNumeric(row, aliases...); ok {
			present++
		}
	}

	completeness := float64(present) / float64(len(keyFieldAliases))
	switch {
	case completeness >= 0.8:
		return QualityHigh
	case completeness >= 0.5:
		return QualityMedium
	default:
		return QualityLow
	}
}

// determineLocationLevel infers granularity from which location fields the
// row carries, finest first.
func determineLocationLevel(row RawObservation) LocationLevel {
	switch {
	case hasField(row, "zip_code"):
		return LevelZip
	case hasField(row, "neighborhood"):
		return LevelNeighborhood
	case hasField(row, "city"):
		return LevelCity
	case hasField(row, "county"):
		return LevelCounty
	case hasField(row, "state"):
		return LevelState
	case hasField(row, "metro"):
		return LevelMetro
	default:
		return LevelNational
	}
}

func listToSoldRatio(row RawObservation) float64 {
	listed := numericField(row, "new_listing_count", "new_listings")
	sold := numericField(row, "sold_count")
	if sold > 0 {
		return listed / sold
	}
	return 0
}

func parseTimestamp(row RawObservation, fallback time.Time) time.Time {
	raw := stringField(row, "period_end", "timestamp")
	if raw == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return fallback
}

// hasField reports whether a key is present with a non-nil value.
func hasField(row RawObservation, key string) bool {
	v, ok := row[key]
	return ok && v != nil
}

// firstNumeric returns the first present numeric value among the given keys.
func firstNumeric(row RawObservation, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := row[key]; ok && v != nil {
			switch n := v.(type) {
			case float64:
				return n, true
			case float32:
				return float64(n), true
			case int:
				return float64(n), true
			case int64:
				return float64(n), true
			}
		}
	}
	return 0, false
}

// numericField returns the first present numeric value among keys, or 0.
func numericField(row RawObservation, keys ...string) float64 {
	v, _ := firstNumeric(row, keys...)
	return v
}

// stringField returns the first present non-empty string among keys, or "".
func stringField(row RawObservation, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
