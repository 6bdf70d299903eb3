package intelligence

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/insights"
	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

// Leverage score weights. Market signals contribute up to 50 points on
// top of the neutral base; ownership economics contribute the rest.
const (
	baseLeverageScore      = 50.0
	highInventoryBonus     = 15.0
	slowMarketBonus        = 10.0
	decliningRentBonus     = 15.0
	peakSeasonBonus        = 10.0
	ownershipLeverageShare = 0.6
	extremeAdvantageBonus  = 20.0
	extremeAdvantageRatio  = 1.4
)

// Reliability weights for the overall confidence blend.
const (
	marketReliabilityWeight    = 0.4
	ownershipReliabilityWeight = 0.6
)

// Service orchestrates market history, ownership analysis, and insight
// generation into a unified recommendation. Results are cached per
// request shape so repeated lookups within the TTL are free.
type Service struct {
	marketService *market.Service
	generator     *insights.Generator
	cache         *Cache
	log           zerolog.Logger
}

// NewService creates the unified intelligence orchestrator.
func NewService(
	marketService *market.Service,
	generator *insights.Generator,
	cache *Cache,
	log zerolog.Logger,
) *Service {
	return &Service{
		marketService: marketService,
		generator:     generator,
		cache:         cache,
		log:           log.With().Str("module", "intelligence").Logger(),
	}
}

// Analyze produces a unified intelligence report for the request.
// It never fails: when every data layer is unavailable it degrades to
// a conservative fallback report instead of returning an error.
func (s *Service) Analyze(ctx context.Context, req Request) *UnifiedIntelligence {
	key := s.cacheKey(req)
	if cached := s.cache.Get(key); cached != nil {
		s.log.Debug().Str("location", req.Location).Msg("Intelligence cache hit")
		return cached
	}

	history := s.marketService.History(ctx, req.Location)

	var ownAnalysis *ownership.Analysis
	if req.CurrentRent > 0 && req.PropertyValue > 0 {
		analysis, err := ownership.Analyze(req.PropertyValue, req.CurrentRent)
		if err != nil {
			s.log.Warn().Err(err).
				Str("location", req.Location).
				Msg("Ownership analysis rejected, continuing market-only")
		} else {
			ownAnalysis = analysis
		}
	}

	if len(history) == 0 && ownAnalysis == nil {
		s.log.Warn().Str("location", req.Location).Msg("No data available, using fallback intelligence")
		result := s.fallbackIntelligence(req)
		s.cache.Set(key, result)
		return result
	}

	combined := s.generator.Generate(history, ownAnalysis)
	score := s.leverageScore(history, ownAnalysis)

	result := &UnifiedIntelligence{
		Location:             req.Location,
		MarketData:           history,
		OwnershipAnalysis:    ownAnalysis,
		CombinedInsights:     combined,
		OverallLeverageScore: score,
		Recommendation:       s.recommend(history, ownAnalysis, score),
		DataStatus:           s.assessDataStatus(history, ownAnalysis),
	}

	s.cache.Set(key, result)
	s.log.Info().
		Str("location", req.Location).
		Float64("leverage_score", score).
		Str("action", string(result.Recommendation.Action)).
		Int("insights", len(combined)).
		Msg("Unified intelligence generated")

	return result
}

// leverageScore combines market conditions and ownership economics into
// a 0-100 negotiation leverage score.
func (s *Service) leverageScore(history []market.MarketMetric, own *ownership.Analysis) float64 {
	score := baseLeverageScore

	if len(history) > 0 {
		latest := history[0]
		if latest.InventoryLevel > 1000 {
			score += highInventoryBonus
		}
		if latest.DaysOnMarket > 45 {
			score += slowMarketBonus
		}
		if latest.RentYoYChange < -2 {
			score += decliningRentBonus
		}
		if latest.SeasonalIndex > 75 {
			score += peakSeasonBonus
		}
	}

	if own != nil {
		score += own.NegotiationLeverage * ownershipLeverageShare
		if own.CurrentRent > own.EstimatedOwnershipCost*extremeAdvantageRatio {
			score += extremeAdvantageBonus
		}
	}

	return math.Min(100, math.Max(0, score))
}

func (s *Service) recommend(history []market.MarketMetric, own *ownership.Analysis, score float64) Recommendation {
	medianRent := 2000.0
	if len(history) > 0 && history[0].MedianRent > 0 {
		medianRent = history[0].MedianRent
	}

	if own != nil && own.Recommendation == ownership.RecommendBuy {
		return Recommendation{
			Action: ActionBuyImmediately,
			Reasoning: fmt.Sprintf(
				"Ownership costs ($%.0f) are significantly below rent ($%.0f). This is a financial no-brainer.",
				own.EstimatedOwnershipCost, own.CurrentRent),
			KeyTactics: []string{
				"Get pre-approved for mortgage immediately",
				"Use ownership analysis as negotiation leverage",
				"If buying isn't possible, demand 20%+ rent reduction",
			},
			ExpectedSavings: own.LandlordMonthlyProfit,
		}
	}

	if score > 80 {
		return Recommendation{
			Action: ActionNegotiateAggressively,
			Reasoning: fmt.Sprintf(
				"Exceptional leverage (%.0f/100). Market conditions and ownership analysis both favor aggressive negotiation.", score),
			KeyTactics: []string{
				"Start with 20% below asking rent",
				"Demand 2-3 months free rent",
				"Negotiate waived fees and deposits",
				"Request lease flexibility terms",
			},
			ExpectedSavings: medianRent * 0.15,
		}
	}

	if score > 60 {
		return Recommendation{
			Action: ActionRentAndNegotiate,
			Reasoning: fmt.Sprintf(
				"Good leverage (%.0f/100). Solid negotiation position with moderate expectations.", score),
			KeyTactics: []string{
				"Request 10-15% rent reduction",
				"Negotiate one month free rent",
				"Ask for waived application/admin fees",
				"Time application for month/quarter end",
			},
			ExpectedSavings: medianRent * 0.10,
		}
	}

	return Recommendation{
		Action: ActionStayFlexible,
		Reasoning: fmt.Sprintf(
			"Moderate leverage (%.0f/100). Focus on timing and relationship-building for best results.", score),
		KeyTactics: []string{
			"Focus on lease length for concessions",
			"Negotiate minor fee waivers",
			"Timing-based leverage (month/quarter end)",
			"Emphasize tenant quality and stability",
		},
		ExpectedSavings: medianRent * 0.05,
	}
}

func (s *Service) assessDataStatus(history []market.MarketMetric, own *ownership.Analysis) DataStatus {
	marketReliability := ReliabilityLow
	if len(history) > 0 {
		if history[0].Provenance == market.ProvenanceObserved {
			marketReliability = ReliabilityHigh
		} else {
			marketReliability = ReliabilityMedium
		}
	}

	ownershipReliability := ReliabilityMedium
	if own != nil {
		ownershipReliability = ReliabilityHigh
	}

	overall := reliabilityScore(marketReliability)*marketReliabilityWeight +
		reliabilityScore(ownershipReliability)*ownershipReliabilityWeight

	return DataStatus{
		MarketDataReliability:    marketReliability,
		OwnershipDataReliability: ownershipReliability,
		OverallConfidence:        int(math.Round(overall * 100)),
	}
}

func reliabilityScore(r Reliability) float64 {
	switch r {
	case ReliabilityHigh:
		return 1.0
	case ReliabilityMedium:
		return 0.7
	default:
		return 0.4
	}
}

// fallbackIntelligence is the last-resort report when neither market
// history nor ownership inputs are usable.
func (s *Service) fallbackIntelligence(req Request) *UnifiedIntelligence {
	return &UnifiedIntelligence{
		Location:          req.Location,
		MarketData:        []market.MarketMetric{},
		OwnershipAnalysis: nil,
		CombinedInsights: []insights.Insight{
			{
				Type:        insights.TypeLeverage,
				Severity:    insights.SeverityMedium,
				Title:       "General Negotiation Advice",
				Description: "Data temporarily unavailable",
				Action:      "Focus on seasonal timing (winter months) and end-of-month/quarter pressure for negotiation leverage.",
				Confidence:  0.5,
			},
		},
		OverallLeverageScore: baseLeverageScore,
		Recommendation: Recommendation{
			Action:          ActionStayFlexible,
			Reasoning:       "Limited data available for detailed analysis",
			KeyTactics:      []string{"Time negotiations for month/quarter end", "Emphasize tenant quality"},
			ExpectedSavings: req.CurrentRent * 0.05,
		},
		DataStatus: DataStatus{
			MarketDataReliability:    ReliabilityLow,
			OwnershipDataReliability: ReliabilityLow,
			OverallConfidence:        40,
		},
	}
}

func (s *Service) cacheKey(req Request) string {
	return fmt.Sprintf("%s_%.0f_%.0f", strings.ToLower(req.Location), req.CurrentRent, req.PropertyValue)
}
