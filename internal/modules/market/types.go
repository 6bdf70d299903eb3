// Package market provides rental market observation normalization and retrieval.
package market

import "time"

// LocationLevel is the granularity of a market observation, coarse to fine.
type LocationLevel string

const (
	LevelNational     LocationLevel = "national"
	LevelMetro        LocationLevel = "metro"
	LevelState        LocationLevel = "state"
	LevelCounty       LocationLevel = "county"
	LevelCity         LocationLevel = "city"
	LevelZip          LocationLevel = "zip"
	LevelNeighborhood LocationLevel = "neighborhood"
)

// DataQuality grades how complete an observation was.
type DataQuality string

const (
	QualityHigh   DataQuality = "high"
	QualityMedium DataQuality = "medium"
	QualityLow    DataQuality = "low"
)

// Provenance records whether a metric came from a live feed or a synthetic fallback.
type Provenance string

const (
	ProvenanceObserved  Provenance = "observed"
	ProvenanceEstimated Provenance = "estimated"
)

// RawObservation is one permissive feed row. Field names vary by source;
// the normalizer maps known aliases onto the strict MarketMetric shape.
type RawObservation map[string]any

// MarketMetric is one canonical snapshot of a location at a point in time.
// Immutable once produced; a location has an ordered sequence of these by
// time, most-recent first.
type MarketMetric struct {
	Location      string        `json:"location"`
	LocationLevel LocationLevel `json:"locationLevel"`
	Timestamp     time.Time     `json:"timestamp"`

	// Core rental metrics
	MedianRent    float64 `json:"medianRent"`
	RentYoYChange float64 `json:"rentYoYChange"`
	RentMoMChange float64 `json:"rentMoMChange"`

	// Market leverage indicators
	InventoryLevel      float64 `json:"inventoryLevel"`
	DaysOnMarket        float64 `json:"daysOnMarket"`
	NewListings         float64 `json:"newListings"`
	PriceDropPercentage float64 `json:"priceDropPercentage"`

	// Competition metrics
	AboveAskPercentage float64 `json:"aboveAskPercentage"`
	ListToSoldRatio    float64 `json:"listToSoldRatio"`
	TourDemand         float64 `json:"tourDemand"`

	// Seasonal and timing data
	SeasonalIndex      float64 `json:"seasonalIndex"`
	QuarterEndPressure bool    `json:"quarterEndPressure"`
	MonthEndPressure   bool    `json:"monthEndPressure"`

	// Confidence and quality
	DataQuality DataQuality `json:"dataQuality"`
	SampleSize  int         `json:"sampleSize"`
	Provenance  Provenance  `json:"provenance"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

// TrendDirection classifies the movement of a metric series.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
)

// TrendVelocity classifies how fast a trend is moving.
type TrendVelocity string

const (
	VelocityRapid    TrendVelocity = "rapid"
	VelocityModerate TrendVelocity = "moderate"
	VelocitySlow     TrendVelocity = "slow"
)

// MarketTrend summarizes the direction of one metric across a location's history.
type MarketTrend struct {
	Metric                string         `json:"metric"`
	Direction             TrendDirection `json:"direction"`
	Velocity              TrendVelocity  `json:"velocity"`
	ChangePercent         float64        `json:"changePercent"`
	MovingAverage         float64        `json:"movingAverage"`
	Periods               int            `json:"periods"`
	PredictedContinuation float64        `json:"predictedContinuation"`
}
