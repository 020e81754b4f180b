package pricing

import (
	"testing"
	"time"

	"github.com/quoteforge/quoteforge/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables(t *testing.T) *Tables {
	t.Helper()

	tables, err := NewTables(
		map[string]float64{"creative": 5000, "fullstack": 8000, "web3": 15000, "ai_automation": 12000},
		map[string]float64{"low": 1.0, "medium": 1.2, "high": 1.5, "critical": 2.0},
		map[string]float64{"standard": 1.0, "urgent": 1.3, "critical": 1.6},
		map[string]int{"creative": 4, "fullstack": 8, "web3": 12, "ai_automation": 10},
	)
	require.NoError(t, err)
	return tables
}

func TestNewTables_Validation(t *testing.T) {
	t.Run("missing base rate", func(t *testing.T) {
		_, err := NewTables(
			map[string]float64{"creative": 5000},
			map[string]float64{"low": 1.0, "medium": 1.2, "high": 1.5, "critical": 2.0},
			map[string]float64{"standard": 1.0, "urgent": 1.3, "critical": 1.6},
			map[string]int{"creative": 4, "fullstack": 8, "web3": 12, "ai_automation": 10},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base rate")
	})

	t.Run("baseline complexity multiplier must be 1.0", func(t *testing.T) {
		_, err := NewTables(
			map[string]float64{"creative": 5000, "fullstack": 8000, "web3": 15000, "ai_automation": 12000},
			map[string]float64{"low": 1.1, "medium": 1.2, "high": 1.5, "critical": 2.0},
			map[string]float64{"standard": 1.0, "urgent": 1.3, "critical": 1.6},
			map[string]int{"creative": 4, "fullstack": 8, "web3": 12, "ai_automation": 10},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "baseline")
	})

	t.Run("baseline urgency multiplier must be 1.0", func(t *testing.T) {
		_, err := NewTables(
			map[string]float64{"creative": 5000, "fullstack": 8000, "web3": 15000, "ai_automation": 12000},
			map[string]float64{"low": 1.0, "medium": 1.2, "high": 1.5, "critical": 2.0},
			map[string]float64{"standard": 1.2, "urgent": 1.3, "critical": 1.6},
			map[string]int{"creative": 4, "fullstack": 8, "web3": 12, "ai_automation": 10},
		)
		require.Error(t, err)
	})
}

func TestTables_BaseRateFallback(t *testing.T) {
	tables := testTables(t)

	rate := tables.BaseRate(models.ProjectType("unknown"))
	assert.True(t, rate.Equal(decimal.NewFromInt(5000)))
}

func TestEstimateComplexity(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		scope := models.ProjectScope{
			Features: []string{"auth", "dashboard", "reports", "billing"},
			Integrations: []models.Integration{
				{Type: "payment", Name: "stripe"},
				{Type: "payment", Name: "paypal"},
			},
		}

		score := EstimateComplexity(models.ProjectTypeFullstack, scope, models.UrgencyUrgent)
		// 4 features -> 2.0, 2 payment integrations -> 1.6, fullstack base 2.0, urgent +0.5
		assert.True(t, score.Equal(decimal.RequireFromString("6.1")), "got %s", score)
	})

	t.Run("empty scope yields the type base", func(t *testing.T) {
		score := EstimateComplexity(models.ProjectTypeCreative, models.ProjectScope{}, models.UrgencyStandard)
		assert.True(t, score.Equal(decimal.RequireFromString("1.0")))
	})

	t.Run("feature contribution capped at 3.0", func(t *testing.T) {
		many := make([]string, 20)
		scope := models.ProjectScope{Features: many}

		score := EstimateComplexity(models.ProjectTypeCreative, scope, models.UrgencyStandard)
		assert.True(t, score.Equal(decimal.RequireFromString("4.0")), "got %s", score)
	})

	t.Run("non-qualifying integrations contribute nothing", func(t *testing.T) {
		scope := models.ProjectScope{
			Integrations: []models.Integration{
				{Type: "email"},
				{Type: "analytics"},
			},
		}

		score := EstimateComplexity(models.ProjectTypeCreative, scope, models.UrgencyStandard)
		assert.True(t, score.Equal(decimal.RequireFromString("1.0")))
	})

	t.Run("integration contribution capped at 3.0", func(t *testing.T) {
		integrations := make([]models.Integration, 10)
		for i := range integrations {
			integrations[i] = models.Integration{Type: "blockchain"}
		}
		scope := models.ProjectScope{Integrations: integrations}

		score := EstimateComplexity(models.ProjectTypeCreative, scope, models.UrgencyStandard)
		assert.True(t, score.Equal(decimal.RequireFromString("4.0")), "got %s", score)
	})

	t.Run("timeline pressure", func(t *testing.T) {
		urgent := EstimateComplexity(models.ProjectTypeCreative, models.ProjectScope{Timeline: "urgent"}, models.UrgencyStandard)
		assert.True(t, urgent.Equal(decimal.RequireFromString("2.5")))

		critical := EstimateComplexity(models.ProjectTypeCreative, models.ProjectScope{Timeline: "critical"}, models.UrgencyStandard)
		assert.True(t, critical.Equal(decimal.RequireFromString("3.5")))
	})

	t.Run("global cap at 10.0", func(t *testing.T) {
		scope := models.ProjectScope{
			Features: make([]string, 20),
			Integrations: []models.Integration{
				{Type: "payment"}, {Type: "blockchain"}, {Type: "ai"}, {Type: "custom_api"}, {Type: "ai"},
			},
			Timeline: "critical",
		}

		score := EstimateComplexity(models.ProjectTypeWeb3, scope, models.UrgencyCritical)
		assert.True(t, score.Equal(decimal.RequireFromString("10.0")), "got %s", score)
	})

	t.Run("deterministic", func(t *testing.T) {
		scope := models.ProjectScope{
			Features:     []string{"a", "b", "c"},
			Integrations: []models.Integration{{Type: "ai"}},
			Timeline:     "urgent",
		}

		first := EstimateComplexity(models.ProjectTypeAIAutomation, scope, models.UrgencyUrgent)
		second := EstimateComplexity(models.ProjectTypeAIAutomation, scope, models.UrgencyUrgent)
		assert.True(t, first.Equal(second))
	})
}

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score    string
		expected ComplexityLevel
	}{
		{"0", ComplexityLow},
		{"2.99", ComplexityLow},
		{"3", ComplexityMedium},
		{"5.99", ComplexityMedium},
		{"6", ComplexityHigh},
		{"6.1", ComplexityHigh},
		{"7.99", ComplexityHigh},
		{"8", ComplexityCritical},
		{"10", ComplexityCritical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, LevelForScore(decimal.RequireFromString(tc.score)), "score %s", tc.score)
	}
}

func TestQuoteCalculator_Compute(t *testing.T) {
	calc := NewQuoteCalculator(testTables(t))
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("worked example", func(t *testing.T) {
		result := calc.Compute(models.ProjectTypeFullstack, models.UrgencyUrgent, decimal.RequireFromString("6.1"), now)

		assert.Equal(t, ComplexityHigh, result.ComplexityLevel)
		assert.True(t, result.BaseRate.Equal(decimal.NewFromInt(8000)))
		assert.True(t, result.ComplexityAdjustment.Equal(decimal.NewFromInt(4000)), "got %s", result.ComplexityAdjustment)
		assert.True(t, result.UrgencyAdjustment.Equal(decimal.NewFromInt(2400)), "got %s", result.UrgencyAdjustment)
		assert.True(t, result.TotalEstimate.Equal(decimal.NewFromInt(14400)))
		assert.True(t, result.NotToExceed.Equal(decimal.NewFromInt(16560)), "got %s", result.NotToExceed)
		assert.Equal(t, 12, result.EstimatedTimelineWeeks)
		assert.Equal(t, now.Add(12*7*24*time.Hour), result.DeliveryDate)
		assert.Equal(t, now.Add(30*24*time.Hour), result.ValidUntil)
	})

	t.Run("standard urgency has zero urgency adjustment", func(t *testing.T) {
		result := calc.Compute(models.ProjectTypeCreative, models.UrgencyStandard, decimal.RequireFromString("1.0"), now)

		assert.True(t, result.UrgencyAdjustment.IsZero())
		assert.True(t, result.ComplexityAdjustment.IsZero())
		assert.True(t, result.TotalEstimate.Equal(decimal.NewFromInt(5000)))
		assert.Equal(t, 4, result.EstimatedTimelineWeeks)
	})

	t.Run("ceiling never below the total", func(t *testing.T) {
		for _, score := range []string{"0", "3.5", "6.1", "9.9"} {
			for _, urgency := range []models.UrgencyLevel{models.UrgencyStandard, models.UrgencyUrgent, models.UrgencyCritical} {
				result := calc.Compute(models.ProjectTypeWeb3, urgency, decimal.RequireFromString(score), now)
				assert.True(t, result.NotToExceed.GreaterThanOrEqual(result.TotalEstimate),
					"score=%s urgency=%s", score, urgency)
			}
		}
	})

	t.Run("timeline rounds up on fractional weeks", func(t *testing.T) {
		// creative base 4 weeks at the medium multiplier 1.2 -> 4.8 -> 5
		result := calc.Compute(models.ProjectTypeCreative, models.UrgencyStandard, decimal.RequireFromString("4.0"), now)
		assert.Equal(t, 5, result.EstimatedTimelineWeeks)

		result = calc.Compute(models.ProjectTypeCreative, models.UrgencyStandard, decimal.RequireFromString("7.0"), now)
		assert.Equal(t, 6, result.EstimatedTimelineWeeks)
	})
}

func TestSplitPayments(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		ps := SplitPayments(decimal.NewFromInt(14400))

		assert.True(t, ps.Deposit.Equal(decimal.NewFromInt(4320)))
		assert.True(t, ps.Milestone1.Equal(decimal.NewFromInt(4320)))
		assert.True(t, ps.Milestone2.Equal(decimal.NewFromInt(2880)))
		assert.True(t, ps.Final.Equal(decimal.NewFromInt(2880)))
		assert.True(t, ps.Sum().Equal(decimal.NewFromInt(14400)))
	})

	t.Run("remainder lands on the final installment", func(t *testing.T) {
		total := decimal.RequireFromString("10001")
		ps := SplitPayments(total)

		assert.True(t, ps.Deposit.Equal(decimal.NewFromInt(3000)))
		assert.True(t, ps.Milestone1.Equal(decimal.NewFromInt(3000)))
		assert.True(t, ps.Milestone2.Equal(decimal.NewFromInt(2000)))
		assert.True(t, ps.Final.Equal(decimal.NewFromInt(2001)), "got %s", ps.Final)
		assert.True(t, ps.Sum().Equal(total))
	})

	t.Run("sum always equals the total", func(t *testing.T) {
		for _, raw := range []string{"1", "99", "5000", "10001", "14400", "12345.67"} {
			total := decimal.RequireFromString(raw)
			assert.True(t, SplitPayments(total).Sum().Equal(total), "total %s", raw)
		}
	})
}

func TestCalculateBundlePrice(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		result := CalculateBundlePrice(
			decimal.NewFromInt(5000),
			decimal.RequireFromString("1.5"),
			decimal.RequireFromString("1.35"),
		)

		assert.True(t, result.Breakdown.ScaleAdjustment.Equal(decimal.NewFromInt(2500)), "got %s", result.Breakdown.ScaleAdjustment)
		assert.True(t, result.Breakdown.ComplexityAdjustment.Equal(decimal.NewFromInt(2625)), "got %s", result.Breakdown.ComplexityAdjustment)
		assert.True(t, result.FinalPrice.Equal(decimal.RequireFromString("10125.00")), "got %s", result.FinalPrice)
	})

	t.Run("complexity compounds on the scale-adjusted amount", func(t *testing.T) {
		compounded := CalculateBundlePrice(
			decimal.NewFromInt(1000),
			decimal.RequireFromString("2.0"),
			decimal.RequireFromString("1.5"),
		)

		// Against the raw base this would be 1000 + 1000 + 500 = 2500;
		// compounding yields 1000 + 1000 + 1000 = 3000.
		assert.True(t, compounded.FinalPrice.Equal(decimal.NewFromInt(3000)), "got %s", compounded.FinalPrice)
	})

	t.Run("neutral multipliers return the base", func(t *testing.T) {
		one := decimal.NewFromInt(1)
		result := CalculateBundlePrice(decimal.RequireFromString("1234.56"), one, one)

		assert.True(t, result.Breakdown.ScaleAdjustment.IsZero())
		assert.True(t, result.Breakdown.ComplexityAdjustment.IsZero())
		assert.True(t, result.FinalPrice.Equal(decimal.RequireFromString("1234.56")))
	})
}
