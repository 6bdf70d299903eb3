package scenarios

import "fmt"

// unitActions is the response checklist for a unit at the given risk
// tier.
func unitActions(risk RiskLevel) []string {
	switch risk {
	case RiskCritical:
		return []string{
			"Implement emergency pricing strategy",
			"Offer significant concessions",
			"Increase marketing spend by 200%",
			"Consider temporary rent reduction",
		}
	case RiskHigh:
		return []string{
			"Adjust pricing strategy",
			"Implement targeted concessions",
			"Enhance marketing efforts",
		}
	case RiskMedium:
		return []string{
			"Monitor market closely",
			"Prepare contingency pricing",
		}
	default:
		return []string{
			"Maintain current strategy",
			"Monitor for opportunities",
		}
	}
}

func marketStrategicOptions(position CompetitivePosition) []string {
	switch position {
	case PositionSeverelyImpacted:
		return []string{
			"Consider strategic disposal of underperforming assets",
			"Implement aggressive cost reduction",
			"Explore alternative revenue streams",
			"Negotiate debt restructuring",
		}
	case PositionWeakened:
		return []string{
			"Enhance property differentiation",
			"Implement targeted marketing campaigns",
			"Consider strategic partnerships",
			"Optimize operational efficiency",
		}
	case PositionImproved:
		return []string{
			"Capitalize on competitive advantage",
			"Consider strategic acquisitions",
			"Expand market presence",
			"Invest in premium positioning",
		}
	default:
		return []string{
			"Maintain market position",
			"Monitor competitive landscape",
			"Prepare for market opportunities",
			"Focus on operational excellence",
		}
	}
}

func strategicRecommendations(def *Definition) []StrategicRecommendation {
	var recs []StrategicRecommendation

	if def.Severity == SeveritySevere || def.Severity == SeverityExtreme {
		recs = append(recs, StrategicRecommendation{
			Priority:       PriorityImmediate,
			Category:       "risk",
			Recommendation: "Implement comprehensive risk mitigation strategy",
			Rationale:      fmt.Sprintf("%s poses significant risk to portfolio performance", def.Name),
			Implementation: Implementation{
				Timeline:     "30 days",
				Cost:         50000,
				Resources:    []string{"Management team", "External consultants"},
				Dependencies: []string{"Board approval", "Stakeholder alignment"},
			},
			ExpectedBenefit:    "Reduce portfolio risk by 40-50%",
			RiskMitigation:     45,
			SuccessProbability: 0.8,
		})
	}

	if p := def.Param(ParamMarketRent); p != nil && p.ChangePercent < -5 {
		recs = append(recs, StrategicRecommendation{
			Priority:       PriorityHigh,
			Category:       "pricing",
			Recommendation: "Implement defensive pricing strategy",
			Rationale:      "Market rent decline requires proactive pricing adjustments",
			Implementation: Implementation{
				Timeline:     "14 days",
				Cost:         25000,
				Resources:    []string{"Revenue management team", "Pricing tools"},
				Dependencies: []string{"Market analysis", "Competitive intelligence"},
			},
			ExpectedBenefit:    "Maintain occupancy levels and minimize revenue loss",
			RiskMitigation:     30,
			SuccessProbability: 0.75,
		})
	}

	return recs
}

func contingencyPlans(def *Definition) []ContingencyPlan {
	var plans []ContingencyPlan

	if p := def.Param(ParamMarketRent); p != nil && p.ChangePercent < -10 {
		plans = append(plans, ContingencyPlan{
			Trigger: "Revenue decline exceeds 15%",
			TriggerMetrics: []TriggerMetric{
				{Metric: "monthly_revenue", Threshold: -15, Operator: "less_than"},
				{Metric: "occupancy_rate", Threshold: 80, Operator: "less_than"},
			},
			Actions: []ContingencyAction{
				{
					Action:        "Implement emergency cost reduction",
					Description:   "Reduce operating expenses by 20%",
					Cost:          0,
					Timeline:      "30 days",
					Impact:        "Preserve cash flow",
					Reversibility: "partially_reversible",
				},
				{
					Action:        "Access emergency credit facility",
					Description:   "Draw on available credit lines",
					Cost:          15000,
					Timeline:      "7 days",
					Impact:        "Maintain liquidity",
					Reversibility: "reversible",
				},
			},
			DecisionPoint:        "Monthly performance review",
			EscalationPath:       []string{"Property Manager", "Regional Manager", "Executive Team"},
			ResourceRequirements: []string{"Finance team", "Operations team"},
			Timeline:             "90 days",
			SuccessCriteria:      []string{"Cash flow stabilization", "Occupancy recovery"},
		})
	}

	return plans
}

func monitoringMetrics(def *Definition) []MonitoringMetric {
	metrics := []MonitoringMetric{
		{
			Metric:            "Portfolio Revenue",
			CurrentValue:      125000,
			WarningThreshold:  115000,
			CriticalThreshold: 105000,
			Frequency:         "weekly",
			DataSource:        "Property management system",
			ResponsibleParty:  "Revenue Manager",
		},
		{
			Metric:            "Occupancy Rate",
			CurrentValue:      88.5,
			WarningThreshold:  85.0,
			CriticalThreshold: 80.0,
			Frequency:         "daily",
			DataSource:        "Leasing system",
			ResponsibleParty:  "Leasing Manager",
		},
	}

	if p := def.Param(ParamUnemploymentRate); p != nil {
		metrics = append(metrics, MonitoringMetric{
			Metric:            "Regional Unemployment Rate",
			CurrentValue:      p.BaseValue,
			WarningThreshold:  p.BaseValue * 1.5,
			CriticalThreshold: p.ScenarioValue * 0.8,
			Frequency:         "monthly",
			DataSource:        "Bureau of Labor Statistics",
			ResponsibleParty:  "Market Research Analyst",
		})
	}

	return metrics
}
