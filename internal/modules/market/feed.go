package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Feed returns raw location-tagged observation rows from a market tracker.
// Implementations are expected to respect the context deadline; callers
// impose the timeout.
type Feed interface {
	Fetch(ctx context.Context, location string) ([]RawObservation, error)
}

// HTTPFeed fetches observation rows from an HTTP market tracker endpoint.
type HTTPFeed struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPFeed creates a feed client for the given tracker endpoint.
func NewHTTPFeed(baseURL string, timeout time.Duration, log zerolog.Logger) *HTTPFeed {
	return &HTTPFeed{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "market_feed").Logger(),
	}
}

// Fetch downloads the tracker rows for a location.
func (f *HTTPFeed) Fetch(ctx context.Context, location string) ([]RawObservation, error) {
	reqURL := fmt.Sprintf("%s?location=%s", f.baseURL, url.QueryEscape(location))
	f.log.Debug().Str("url", reqURL).Msg("Fetching market observations")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var rows []RawObservation
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	return rows, nil
}

// syntheticBaseline holds the per-location constants the synthetic series
// is built from.
type syntheticBaseline struct {
	location            string
	medianRent          float64
	rentYoYChange       float64
	rentMoMChange       float64
	inventoryLevel      float64
	daysOnMarket        float64
	newListings         float64
	priceDropPercentage float64
	aboveAskPercentage  float64
	listToSoldRatio     float64
	tourDemand          float64
	sampleSize          int
}

// syntheticBaselines are realistic market baselines for the markets the
// product launched in, plus a generic default. Values track published
// tracker medians at the time they were set.
var syntheticBaselines = map[string]syntheticBaseline{
	"austin": {
		location: "Austin, TX", medianRent: 2200, rentYoYChange: -8.5, rentMoMChange: -2.1,
		inventoryLevel: 950, daysOnMarket: 55, newListings: 165, priceDropPercentage: 32,
		aboveAskPercentage: 15, listToSoldRatio: 1.05, tourDemand: 2.0, sampleSize: 200,
	},
	"dallas": {
		location: "Dallas, TX", medianRent: 1800, rentYoYChange: -3.2, rentMoMChange: -0.8,
		inventoryLevel: 1100, daysOnMarket: 42, newListings: 200, priceDropPercentage: 18,
		aboveAskPercentage: 22, listToSoldRatio: 1.08, tourDemand: 1.8, sampleSize: 180,
	},
	"houston": {
		location: "Houston, TX", medianRent: 1600, rentYoYChange: -1.8, rentMoMChange: -0.3,
		inventoryLevel: 1300, daysOnMarket: 38, newListings: 250, priceDropPercentage: 15,
		aboveAskPercentage: 28, listToSoldRatio: 1.1, tourDemand: 1.6, sampleSize: 210,
	},
}

var genericBaseline = syntheticBaseline{
	medianRent: 1800, rentYoYChange: 0, rentMoMChange: 0,
	inventoryLevel: 600, daysOnMarket: 40, newListings: 100, priceDropPercentage: 18,
	aboveAskPercentage: 25, listToSoldRatio: 1.0, tourDemand: 1.0, sampleSize: 100,
}

// syntheticHistoryMonths is the depth of the generated fallback series.
const syntheticHistoryMonths = 6

// SyntheticSeries generates a deterministic metric history for a location,
// tagged provenance=estimated. Used when the feed is unreachable so callers
// always get a usable series. The same (location, now) input yields the
// same output.
func SyntheticSeries(location string, now time.Time) []MarketMetric {
	baseline := genericBaseline
	baseline.location = location

	locationLower := strings.ToLower(location)
	for key, b := range syntheticBaselines {
		if strings.Contains(locationLower, key) {
			baseline = b
			break
		}
	}

	metrics := make([]MarketMetric, 0, syntheticHistoryMonths)
	for i := 0; i < syntheticHistoryMonths; i++ {
		ts := now.AddDate(0, -i, 0)
		seasonal := SeasonalIndex(ts)

		// Seasonal drift keeps older months plausible without randomness:
		// rent tracks the concession index, inventory moves against demand.
		drift := (seasonal - 50) / 100

		metrics = append(metrics, MarketMetric{
			Location:      baseline.location,
			LocationLevel: LevelMetro,
			Timestamp:     ts,

			MedianRent:    roundTo(baseline.medianRent*(1-drift*0.05), 0),
			RentYoYChange: baseline.rentYoYChange,
			RentMoMChange: baseline.rentMoMChange,

			InventoryLevel:      roundTo(baseline.inventoryLevel*(1+drift*0.2), 0),
			DaysOnMarket:        roundTo(baseline.daysOnMarket*(1+drift*0.1), 0),
			NewListings:         baseline.newListings,
			PriceDropPercentage: baseline.priceDropPercentage,

			AboveAskPercentage: baseline.aboveAskPercentage,
			ListToSoldRatio:    baseline.listToSoldRatio,
			TourDemand:         baseline.tourDemand,

			SeasonalIndex:      seasonal,
			QuarterEndPressure: IsQuarterEndPressure(ts),
			MonthEndPressure:   IsMonthEndPressure(ts),

			DataQuality: QualityMedium,
			SampleSize:  baseline.sampleSize,
			Provenance:  ProvenanceEstimated,
			LastUpdated: now,
		})
	}

	return metrics
}

func roundTo(v float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}
