package pricing

import (
	"github.com/quoteforge/quoteforge/models"
	"github.com/shopspring/decimal"
)

// qualifyingIntegrationTypes are the integration types that contribute to the
// complexity score. All other types contribute nothing.
var qualifyingIntegrationTypes = map[string]bool{
	"payment":    true,
	"blockchain": true,
	"ai":         true,
	"custom_api": true,
}

var (
	featureWeight     = decimal.RequireFromString("0.5")
	featureCap        = decimal.RequireFromString("3.0")
	integrationWeight = decimal.RequireFromString("0.8")
	integrationCap    = decimal.RequireFromString("3.0")
	scoreCap          = decimal.RequireFromString("10.0")

	timelineUrgentBonus   = decimal.RequireFromString("1.5")
	timelineCriticalBonus = decimal.RequireFromString("2.5")

	urgencyUrgentBonus   = decimal.RequireFromString("0.5")
	urgencyCriticalBonus = decimal.RequireFromString("1.0")

	typeBaseContribution = map[models.ProjectType]decimal.Decimal{
		models.ProjectTypeCreative:     decimal.RequireFromString("1.0"),
		models.ProjectTypeFullstack:    decimal.RequireFromString("2.0"),
		models.ProjectTypeWeb3:         decimal.RequireFromString("3.0"),
		models.ProjectTypeAIAutomation: decimal.RequireFromString("2.5"),
	}
)

// EstimateComplexity derives a 0-10 complexity score from the project scope.
// Additive scoring with per-factor caps, then a global cap at 10.0. Pure and
// deterministic; callers validate the project type before calling, unknown
// types simply contribute no type base.
func EstimateComplexity(projectType models.ProjectType, scope models.ProjectScope, urgency models.UrgencyLevel) decimal.Decimal {
	score := decimal.Zero

	featureScore := featureWeight.Mul(decimal.NewFromInt(int64(len(scope.Features))))
	score = score.Add(decimal.Min(featureScore, featureCap))

	qualifying := 0
	for _, integration := range scope.Integrations {
		if qualifyingIntegrationTypes[integration.Type] {
			qualifying++
		}
	}
	integrationScore := integrationWeight.Mul(decimal.NewFromInt(int64(qualifying)))
	score = score.Add(decimal.Min(integrationScore, integrationCap))

	switch scope.Timeline {
	case "urgent":
		score = score.Add(timelineUrgentBonus)
	case "critical":
		score = score.Add(timelineCriticalBonus)
	}

	score = score.Add(typeBaseContribution[projectType])

	switch urgency {
	case models.UrgencyUrgent:
		score = score.Add(urgencyUrgentBonus)
	case models.UrgencyCritical:
		score = score.Add(urgencyCriticalBonus)
	}

	return decimal.Min(score, scoreCap)
}
