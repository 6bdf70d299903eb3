package insights

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

// RuleContext carries everything a rule may inspect. History is
// most-recent first; Ownership may be nil when no property value was
// supplied. Now supplies the wall clock for expiry calculations.
type RuleContext struct {
	History   []market.MarketMetric
	Ownership *ownership.Analysis
	Now       time.Time
}

// Latest returns the most recent metric, or nil for an empty history.
func (c *RuleContext) Latest() *market.MarketMetric {
	if len(c.History) == 0 {
		return nil
	}
	return &c.History[0]
}

// Rule is the interface all insight rules implement. Each rule evaluates one
// market or ownership condition and emits zero or more insights.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Evaluate inspects the context and returns any insights that fire.
	Evaluate(ctx *RuleContext) []Insight
}

// Registry holds all registered insight rules.
type Registry struct {
	rules []Rule
	log   zerolog.Logger
}

// NewRegistry creates an empty rule registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		log: log.With().Str("component", "insight_registry").Logger(),
	}
}

// Register registers a rule. Registration order is the evaluation order;
// ranking happens afterwards by confidence.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
	r.log.Debug().Str("name", rule.Name()).Msg("Registered insight rule")
}

// Evaluate runs every registered rule and collects all fired insights.
// Rules are independent: multiple insights of the same type are all kept.
func (r *Registry) Evaluate(ctx *RuleContext) []Insight {
	var all []Insight
	for _, rule := range r.rules {
		fired := rule.Evaluate(ctx)
		if len(fired) > 0 {
			r.log.Debug().
				Str("rule", rule.Name()).
				Int("insights", len(fired)).
				Msg("Rule fired")
		}
		all = append(all, fired...)
	}
	return all
}

// NewPopulatedRegistry creates a registry with every built-in market and
// ownership rule registered.
func NewPopulatedRegistry(log zerolog.Logger) *Registry {
	registry := NewRegistry(log)

	// Market rules
	registry.Register(&HighInventoryRule{})
	registry.Register(&DaysOnMarketRule{})
	registry.Register(&DecliningRentRule{})
	registry.Register(&PeakSeasonRule{})
	registry.Register(&QuarterEndRule{})
	registry.Register(&MonthEndRule{})
	registry.Register(&WeakDemandRule{})

	// Ownership rules
	registry.Register(&MajorLeverageRule{})
	registry.Register(&HighMarginRule{})
	registry.Register(&ThinMarginRule{})

	return registry
}
