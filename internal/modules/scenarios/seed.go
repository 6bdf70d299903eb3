package scenarios

import "time"

// SeedDefinitions returns the built-in scenario library. These are
// installed on startup when not already present in storage.
func SeedDefinitions(now time.Time) []Definition {
	return []Definition{
		{
			ID:          "economic-recession",
			Name:        "Economic Recession",
			Description: "Moderate economic downturn affecting employment and rental demand",
			Category:    CategoryEconomicCycle,
			Timeframe:   TimeframeMediumTerm,
			Probability: 0.25,
			Severity:    SeverityModerate,
			Parameters: []Parameter{
				{
					Parameter:     ParamUnemploymentRate,
					BaseValue:     3.5,
					ScenarioValue: 7.2,
					ChangePercent: 105.7,
					Unit:          "%",
					Description:   "Regional unemployment rate",
					Confidence:    0.8,
				},
				{
					Parameter:     "median_income",
					BaseValue:     65000,
					ScenarioValue: 58500,
					ChangePercent: -10.0,
					Unit:          "$",
					Description:   "Median household income",
					Confidence:    0.7,
				},
				{
					Parameter:     ParamRentalDemand,
					BaseValue:     100,
					ScenarioValue: 75,
					ChangePercent: -25.0,
					Unit:          "index",
					Description:   "Rental demand index",
					Confidence:    0.85,
				},
				{
					Parameter:     ParamMarketRent,
					BaseValue:     2500,
					ScenarioValue: 2125,
					ChangePercent: -15.0,
					Unit:          "$",
					Description:   "Average market rent",
					Confidence:    0.75,
				},
			},
			Assumptions: []string{
				"Recession lasts 12-18 months",
				"Government stimulus limited",
				"No major industry relocations",
				"Gradual recovery over 24 months",
			},
			CreatedBy: "system",
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:          "supply-surge",
			Name:        "New Supply Surge",
			Description: "Significant increase in new apartment supply causing market saturation",
			Category:    CategoryMarketShock,
			Timeframe:   TimeframeShortTerm,
			Probability: 0.4,
			Severity:    SeverityModerate,
			Parameters: []Parameter{
				{
					Parameter:     ParamNewSupply,
					BaseValue:     1200,
					ScenarioValue: 3500,
					ChangePercent: 191.7,
					Unit:          "units",
					Description:   "New units coming to market",
					Confidence:    0.9,
				},
				{
					Parameter:     ParamVacancyRate,
					BaseValue:     8.5,
					ScenarioValue: 15.2,
					ChangePercent: 78.8,
					Unit:          "%",
					Description:   "Market vacancy rate",
					Confidence:    0.85,
				},
				{
					Parameter:     "absorption_rate",
					BaseValue:     85,
					ScenarioValue: 60,
					ChangePercent: -29.4,
					Unit:          "%",
					Description:   "Monthly absorption rate",
					Confidence:    0.8,
				},
			},
			Assumptions: []string{
				"New supply concentrated in similar property class",
				"Demand remains relatively stable",
				"Competitive pricing pressure",
				"Market rebalances within 18 months",
			},
			CreatedBy: "system",
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:          "interest-rate-spike",
			Name:        "Interest Rate Spike",
			Description: "Rapid increase in interest rates affecting refinancing and property values",
			Category:    CategoryEconomicCycle,
			Timeframe:   TimeframeShortTerm,
			Probability: 0.35,
			Severity:    SeveritySevere,
			Parameters: []Parameter{
				{
					Parameter:     ParamInterestRates,
					BaseValue:     4.5,
					ScenarioValue: 8.2,
					ChangePercent: 82.2,
					Unit:          "%",
					Description:   "Commercial mortgage rates",
					Confidence:    0.7,
				},
				{
					Parameter:     "property_values",
					BaseValue:     100,
					ScenarioValue: 85,
					ChangePercent: -15.0,
					Unit:          "index",
					Description:   "Property value index",
					Confidence:    0.75,
				},
				{
					Parameter:     ParamRefinancingCost,
					BaseValue:     100000,
					ScenarioValue: 180000,
					ChangePercent: 80.0,
					Unit:          "$",
					Description:   "Annual debt service increase",
					Confidence:    0.85,
				},
			},
			Assumptions: []string{
				"Fed raises rates aggressively",
				"Credit markets tighten",
				"Property sales volume decreases",
				"Rental demand increases (buy vs rent)",
			},
			CreatedBy: "system",
			CreatedAt: now,
			IsActive:  true,
		},
	}
}
