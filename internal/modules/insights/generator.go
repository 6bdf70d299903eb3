package insights

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

// Generator provides the main API for the insights module.
type Generator struct {
	registry *Registry
	log      zerolog.Logger
}

// NewGenerator creates an insight generator with all built-in rules.
func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{
		registry: NewPopulatedRegistry(log),
		log:      log.With().Str("module", "insights").Logger(),
	}
}

// Generate evaluates every rule against the given history and optional
// ownership analysis, returning insights sorted by descending confidence.
// An empty result is valid: no insights means no leverage found, not an
// error.
func (g *Generator) Generate(history []market.MarketMetric, own *ownership.Analysis) []Insight {
	ctx := &RuleContext{
		History:   history,
		Ownership: own,
		Now:       time.Now(),
	}

	found := g.registry.Evaluate(ctx)

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Confidence > found[j].Confidence
	})

	g.log.Debug().Int("insights", len(found)).Msg("Generated insights")
	return found
}

// Registry returns the rule registry for advanced usage.
func (g *Generator) Registry() *Registry {
	return g.registry
}
