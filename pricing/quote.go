package pricing

import (
	"time"

	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
)

var (
	notToExceedBuffer = decimal.RequireFromString(utils.NotToExceedBuffer)

	depositShare    = decimal.RequireFromString(utils.DepositShare)
	milestone1Share = decimal.RequireFromString(utils.Milestone1Share)
	milestone2Share = decimal.RequireFromString(utils.Milestone2Share)
)

// QuoteComputation is the full output of a quote calculation: every
// intermediate figure is kept so the persisted quote carries a transparent
// breakdown.
type QuoteComputation struct {
	ComplexityScore        decimal.Decimal
	ComplexityLevel        ComplexityLevel
	BaseRate               decimal.Decimal
	ComplexityAdjustment   decimal.Decimal
	UrgencyAdjustment      decimal.Decimal
	TotalEstimate          decimal.Decimal
	NotToExceed            decimal.Decimal
	EstimatedTimelineWeeks int
	DeliveryDate           time.Time
	PaymentStructure       models.PaymentStructure
	ValidUntil             time.Time
}

// QuoteCalculator computes quotes from a project's type, urgency, and
// complexity score against the injected tables.
type QuoteCalculator struct {
	tables *Tables
}

// NewQuoteCalculator creates a calculator over the given tables.
func NewQuoteCalculator(tables *Tables) *QuoteCalculator {
	return &QuoteCalculator{tables: tables}
}

// Compute prices a project at the given instant. Both the complexity and the
// urgency adjustments are taken against the raw base rate; the bundle pricing
// path compounds instead, and the two intentionally differ.
func (c *QuoteCalculator) Compute(projectType models.ProjectType, urgency models.UrgencyLevel, complexityScore decimal.Decimal, now time.Time) QuoteComputation {
	level := LevelForScore(complexityScore)
	complexityMultiplier := c.tables.ComplexityMultiplier(level)
	urgencyMultiplier := c.tables.UrgencyMultiplier(urgency)

	baseRate := c.tables.BaseRate(projectType)
	one := decimal.NewFromInt(1)

	complexityAdjustment := baseRate.Mul(complexityMultiplier.Sub(one))
	urgencyAdjustment := baseRate.Mul(urgencyMultiplier.Sub(one))
	totalEstimate := baseRate.Add(complexityAdjustment).Add(urgencyAdjustment)

	// Hard ceiling shown to the client; rounded up to the next whole unit.
	notToExceed := totalEstimate.Mul(notToExceedBuffer).Ceil()

	baseWeeks := decimal.NewFromInt(int64(c.tables.BaseTimelineWeeks(projectType)))
	timelineWeeks := int(baseWeeks.Mul(complexityMultiplier).Ceil().IntPart())

	return QuoteComputation{
		ComplexityScore:        complexityScore,
		ComplexityLevel:        level,
		BaseRate:               baseRate,
		ComplexityAdjustment:   complexityAdjustment,
		UrgencyAdjustment:      urgencyAdjustment,
		TotalEstimate:          totalEstimate,
		NotToExceed:            notToExceed,
		EstimatedTimelineWeeks: timelineWeeks,
		DeliveryDate:           now.Add(time.Duration(timelineWeeks) * 7 * 24 * time.Hour),
		PaymentStructure:       SplitPayments(totalEstimate),
		ValidUntil:             now.Add(utils.QuoteValidity),
	}
}

// SplitPayments splits the total into the fixed 30/30/20/20 installments.
// The first three are rounded to whole currency units; the final installment
// absorbs the rounding remainder so the four always sum to the total exactly.
func SplitPayments(total decimal.Decimal) models.PaymentStructure {
	deposit := total.Mul(depositShare).Round(0)
	milestone1 := total.Mul(milestone1Share).Round(0)
	milestone2 := total.Mul(milestone2Share).Round(0)
	final := total.Sub(deposit).Sub(milestone1).Sub(milestone2)

	return models.PaymentStructure{
		Deposit:    deposit,
		Milestone1: milestone1,
		Milestone2: milestone2,
		Final:      final,
	}
}
