// Package pricing implements the deterministic pricing engine: complexity
// estimation, quote computation, and bundle price computation. All components
// are pure functions over read-only tables built once at startup, so they are
// safe for unsynchronized concurrent use.
package pricing

import (
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
)

// ComplexityLevel is the discrete bucket a complexity score maps to
type ComplexityLevel string

const (
	ComplexityLow      ComplexityLevel = "low"
	ComplexityMedium   ComplexityLevel = "medium"
	ComplexityHigh     ComplexityLevel = "high"
	ComplexityCritical ComplexityLevel = "critical"
)

// String returns the string representation of the level
func (l ComplexityLevel) String() string {
	return string(l)
}

var (
	levelMediumFloor = decimal.NewFromInt(3)
	levelHighFloor   = decimal.NewFromInt(6)
	levelCritFloor   = decimal.NewFromInt(8)
)

// LevelForScore buckets a 0-10 complexity score into a discrete level.
func LevelForScore(score decimal.Decimal) ComplexityLevel {
	switch {
	case score.LessThan(levelMediumFloor):
		return ComplexityLow
	case score.LessThan(levelHighFloor):
		return ComplexityMedium
	case score.LessThan(levelCritFloor):
		return ComplexityHigh
	default:
		return ComplexityCritical
	}
}

// Tables holds the static rate and multiplier tables the calculators read.
// Built once from configuration and never mutated afterwards.
type Tables struct {
	baseRates             map[models.ProjectType]decimal.Decimal
	complexityMultipliers map[ComplexityLevel]decimal.Decimal
	urgencyMultipliers    map[models.UrgencyLevel]decimal.Decimal
	baseTimelineWeeks     map[models.ProjectType]int
	defaultBaseRate       decimal.Decimal
}

// NewTables builds the lookup tables from string-keyed configuration maps.
// Every known project type must carry a base rate and a base timeline, every
// complexity level and urgency level must carry a multiplier, and the
// baseline tiers (low, standard) must be exactly 1.0.
func NewTables(
	baseRates map[string]float64,
	complexityMultipliers map[string]float64,
	urgencyMultipliers map[string]float64,
	baseTimelineWeeks map[string]int,
) (*Tables, error) {
	t := &Tables{
		baseRates:             make(map[models.ProjectType]decimal.Decimal),
		complexityMultipliers: make(map[ComplexityLevel]decimal.Decimal),
		urgencyMultipliers:    make(map[models.UrgencyLevel]decimal.Decimal),
		baseTimelineWeeks:     make(map[models.ProjectType]int),
		defaultBaseRate:       decimal.RequireFromString(utils.DefaultBaseRate),
	}

	for _, pt := range []models.ProjectType{
		models.ProjectTypeCreative,
		models.ProjectTypeFullstack,
		models.ProjectTypeWeb3,
		models.ProjectTypeAIAutomation,
	} {
		rate, ok := baseRates[pt.String()]
		if !ok {
			return nil, fmt.Errorf("missing base rate for project type %q", pt)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("base rate for project type %q must be positive, got %v", pt, rate)
		}
		t.baseRates[pt] = decimal.NewFromFloat(rate)

		weeks, ok := baseTimelineWeeks[pt.String()]
		if !ok {
			return nil, fmt.Errorf("missing base timeline for project type %q", pt)
		}
		if weeks <= 0 {
			return nil, fmt.Errorf("base timeline for project type %q must be positive, got %d", pt, weeks)
		}
		t.baseTimelineWeeks[pt] = weeks
	}

	for _, level := range []ComplexityLevel{ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityCritical} {
		m, ok := complexityMultipliers[level.String()]
		if !ok {
			return nil, fmt.Errorf("missing complexity multiplier for level %q", level)
		}
		if m < 0 {
			return nil, fmt.Errorf("complexity multiplier for level %q must be non-negative, got %v", level, m)
		}
		t.complexityMultipliers[level] = decimal.NewFromFloat(m)
	}
	if !t.complexityMultipliers[ComplexityLow].Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("complexity multiplier for baseline level %q must be 1.0", ComplexityLow)
	}

	for _, u := range []models.UrgencyLevel{models.UrgencyStandard, models.UrgencyUrgent, models.UrgencyCritical} {
		m, ok := urgencyMultipliers[string(u)]
		if !ok {
			return nil, fmt.Errorf("missing urgency multiplier for level %q", u)
		}
		if m < 0 {
			return nil, fmt.Errorf("urgency multiplier for level %q must be non-negative, got %v", u, m)
		}
		t.urgencyMultipliers[u] = decimal.NewFromFloat(m)
	}
	if !t.urgencyMultipliers[models.UrgencyStandard].Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("urgency multiplier for baseline level %q must be 1.0", models.UrgencyStandard)
	}

	return t, nil
}

// BaseRate returns the base rate for the project type, falling back to the
// default rate for unmapped types. The fallback is defensive; validation
// upstream should reject unknown types before pricing.
func (t *Tables) BaseRate(projectType models.ProjectType) decimal.Decimal {
	if rate, ok := t.baseRates[projectType]; ok {
		return rate
	}
	return t.defaultBaseRate
}

// ComplexityMultiplier returns the multiplier for the discrete level.
func (t *Tables) ComplexityMultiplier(level ComplexityLevel) decimal.Decimal {
	if m, ok := t.complexityMultipliers[level]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// UrgencyMultiplier returns the multiplier for the urgency level, treating
// unknown or empty urgency as standard.
func (t *Tables) UrgencyMultiplier(urgency models.UrgencyLevel) decimal.Decimal {
	if m, ok := t.urgencyMultipliers[urgency]; ok {
		return m
	}
	return t.urgencyMultipliers[models.UrgencyStandard]
}

// BaseTimelineWeeks returns the base delivery timeline for the project type.
func (t *Tables) BaseTimelineWeeks(projectType models.ProjectType) int {
	return t.baseTimelineWeeks[projectType]
}
