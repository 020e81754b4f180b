// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quoteforge/quoteforge/app/dto"
	businessflow "github.com/quoteforge/quoteforge/business_flow"
	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/pricing"
	"github.com/quoteforge/quoteforge/repository"
	testingutil "github.com/quoteforge/quoteforge/testing"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultRateTables builds the calculator with the documented default rates
func defaultRateTables(t *testing.T) *pricing.QuoteCalculator {
	t.Helper()

	tables, err := pricing.NewTables(
		map[string]float64{"creative": 5000, "fullstack": 8000, "web3": 15000, "ai_automation": 12000},
		map[string]float64{"low": 1.0, "medium": 1.2, "high": 1.5, "critical": 2.0},
		map[string]float64{"standard": 1.0, "urgent": 1.3, "critical": 1.6},
		map[string]int{"creative": 4, "fullstack": 8, "web3": 12, "ai_automation": 10},
	)
	require.NoError(t, err)

	return pricing.NewQuoteCalculator(tables)
}

func newQuoteFlow(t *testing.T, testDB *testingutil.TestDB) businessflow.QuoteFlow {
	t.Helper()

	return businessflow.NewQuoteFlow(
		testDB.DB,
		repository.NewCustomerRepository(testDB.DB),
		repository.NewProjectRepository(testDB.DB),
		repository.NewQuoteRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		defaultRateTables(t),
	)
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("192.0.2.10", "quoteforge-tests/1.0")
}

// fullstackUrgentScope yields a 6.1 complexity score for a fullstack project
// at urgent urgency: 4 features, 2 qualifying integrations, no timeline
// pressure keywords.
func fullstackUrgentScope() models.ProjectScope {
	return models.ProjectScope{
		Features: []string{"auth", "billing", "dashboard", "api"},
		Integrations: []models.Integration{
			{Type: "payment", Name: "stripe"},
			{Type: "blockchain", Name: "ethereum"},
		},
		Timeline: "flexible",
	}
}

func TestGenerateQuote(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newQuoteFlow(t, testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		t.Run("FullstackUrgentPricing", func(t *testing.T) {
			project, err := fixtures.CreateTestProject(customer.ID, models.ProjectTypeFullstack, models.UrgencyUrgent, fullstackUrgentScope())
			require.NoError(t, err)

			resp, err := flow.GenerateQuote(ctx, &dto.GenerateQuoteRequest{
				ProjectUUID: project.UUID.String(),
				CustomerID:  customer.ID,
			}, testMetadata())
			require.NoError(t, err)

			quote := resp.Quote
			assert.Equal(t, "pending", quote.Status)
			assert.Equal(t, project.UUID.String(), quote.ProjectUUID)
			assert.True(t, quote.BaseRate.Equal(decimal.RequireFromString("8000")), "base rate %s", quote.BaseRate)
			assert.True(t, quote.ComplexityAdjustment.Equal(decimal.RequireFromString("4000")), "complexity adj %s", quote.ComplexityAdjustment)
			assert.True(t, quote.UrgencyAdjustment.Equal(decimal.RequireFromString("2400")), "urgency adj %s", quote.UrgencyAdjustment)
			assert.True(t, quote.TotalEstimate.Equal(decimal.RequireFromString("14400")), "total %s", quote.TotalEstimate)
			assert.True(t, quote.NotToExceed.Equal(decimal.RequireFromString("16560")), "nte %s", quote.NotToExceed)
			assert.Equal(t, 12, quote.EstimatedTimelineWeeks)

			// 30/30/20/20 split in whole units
			assert.True(t, quote.PaymentStructure.Deposit.Equal(decimal.RequireFromString("4320")))
			assert.True(t, quote.PaymentStructure.Milestone1.Equal(decimal.RequireFromString("4320")))
			assert.True(t, quote.PaymentStructure.Milestone2.Equal(decimal.RequireFromString("2880")))
			assert.True(t, quote.PaymentStructure.Final.Equal(decimal.RequireFromString("2880")))

			// Complexity score is cached on the project and its status advances
			var stored models.Project
			require.NoError(t, testDB.DB.First(&stored, project.ID).Error)
			require.NotNil(t, stored.ComplexityScore)
			assert.True(t, stored.ComplexityScore.Equal(decimal.RequireFromString("6.1")), "score %s", stored.ComplexityScore)
			assert.Equal(t, models.ProjectStatusQuoteGenerated, stored.Status)

			// Generation leaves an audit trail
			var audit models.AuditLog
			require.NoError(t, testDB.DB.Where("action = ?", models.AuditActionQuoteGenerated).First(&audit).Error)
			assert.Equal(t, customer.ID, *audit.CustomerID)
		})

		t.Run("DuplicateActiveQuote", func(t *testing.T) {
			project, err := fixtures.CreateTestProject(customer.ID, models.ProjectTypeCreative, models.UrgencyStandard, testingutil.DefaultScope())
			require.NoError(t, err)

			req := &dto.GenerateQuoteRequest{ProjectUUID: project.UUID.String(), CustomerID: customer.ID}
			_, err = flow.GenerateQuote(ctx, req, testMetadata())
			require.NoError(t, err)

			_, err = flow.GenerateQuote(ctx, req, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsDuplicateActiveQuote(err))
		})

		t.Run("ProjectNotFound", func(t *testing.T) {
			_, err := flow.GenerateQuote(ctx, &dto.GenerateQuoteRequest{
				ProjectUUID: uuid.NewString(),
				CustomerID:  customer.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsProjectNotFound(err))
		})

		t.Run("ProjectOwnedByAnotherCustomer", func(t *testing.T) {
			other, err := fixtures.CreateTestCustomer()
			require.NoError(t, err)
			project, err := fixtures.CreateTestProject(other.ID, models.ProjectTypeCreative, models.UrgencyStandard, testingutil.DefaultScope())
			require.NoError(t, err)

			_, err = flow.GenerateQuote(ctx, &dto.GenerateQuoteRequest{
				ProjectUUID: project.UUID.String(),
				CustomerID:  customer.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsProjectAccessDenied(err))
		})

		t.Run("InactiveCustomer", func(t *testing.T) {
			inactive, err := fixtures.CreateInactiveCustomer()
			require.NoError(t, err)
			project, err := fixtures.CreateTestProject(inactive.ID, models.ProjectTypeCreative, models.UrgencyStandard, testingutil.DefaultScope())
			require.NoError(t, err)

			_, err = flow.GenerateQuote(ctx, &dto.GenerateQuoteRequest{
				ProjectUUID: project.UUID.String(),
				CustomerID:  inactive.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountInactive(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestQuoteLifecycle(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newQuoteFlow(t, testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		generate := func(t *testing.T) dto.QuoteDTO {
			t.Helper()
			project, err := fixtures.CreateTestProject(customer.ID, models.ProjectTypeCreative, models.UrgencyStandard, testingutil.DefaultScope())
			require.NoError(t, err)
			resp, err := flow.GenerateQuote(ctx, &dto.GenerateQuoteRequest{
				ProjectUUID: project.UUID.String(),
				CustomerID:  customer.ID,
			}, testMetadata())
			require.NoError(t, err)
			return resp.Quote
		}

		t.Run("SendThenAccept", func(t *testing.T) {
			quote := generate(t)

			sent, err := flow.SendQuote(ctx, &dto.SendQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "sent", sent.Quote.Status)

			accepted, err := flow.AcceptQuote(ctx, &dto.AcceptQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "accepted", accepted.Quote.Status)
			assert.True(t, accepted.Quote.TermsAccepted)
			require.NotNil(t, accepted.Quote.AcceptedAt)

			var stored models.Quote
			require.NoError(t, testDB.DB.Where("uuid = ?", quote.UUID).First(&stored).Error)
			assert.Equal(t, models.QuoteStatusAccepted, stored.Status)

			var project models.Project
			require.NoError(t, testDB.DB.First(&project, stored.ProjectID).Error)
			assert.Equal(t, models.ProjectStatusQuoteAccepted, project.Status)
		})

		t.Run("AcceptPendingDirectly", func(t *testing.T) {
			quote := generate(t)

			accepted, err := flow.AcceptQuote(ctx, &dto.AcceptQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "accepted", accepted.Quote.Status)
		})

		t.Run("AcceptExpiredQuote", func(t *testing.T) {
			quote := generate(t)

			// Push the validity window into the past
			past := utils.UTCNow().Add(-time.Hour)
			require.NoError(t, testDB.DB.Model(&models.Quote{}).
				Where("uuid = ?", quote.UUID).
				Update("valid_until", past).Error)

			_, err := flow.AcceptQuote(ctx, &dto.AcceptQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsQuoteExpired(err))

			// The expiry is persisted even though the accept failed
			var stored models.Quote
			require.NoError(t, testDB.DB.Where("uuid = ?", quote.UUID).First(&stored).Error)
			assert.Equal(t, models.QuoteStatusExpired, stored.Status)

			// And a second accept attempt reports the stored terminal status
			_, err = flow.AcceptQuote(ctx, &dto.AcceptQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidQuoteTransition(err))
		})

		t.Run("DeclineWithReason", func(t *testing.T) {
			quote := generate(t)

			reason := "budget pushed to next quarter"
			declined, err := flow.DeclineQuote(ctx, &dto.DeclineQuoteRequest{
				UUID:       quote.UUID,
				CustomerID: customer.ID,
				Reason:     &reason,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "declined", declined.Quote.Status)
			require.NotNil(t, declined.Quote.DeclineReason)
			assert.Equal(t, reason, *declined.Quote.DeclineReason)

			// Re-declining succeeds and overwrites the reason
			newReason := "went with another vendor"
			redeclined, err := flow.DeclineQuote(ctx, &dto.DeclineQuoteRequest{
				UUID:       quote.UUID,
				CustomerID: customer.ID,
				Reason:     &newReason,
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, redeclined.Quote.DeclineReason)
			assert.Equal(t, newReason, *redeclined.Quote.DeclineReason)
		})

		t.Run("DeclineAcceptedQuote", func(t *testing.T) {
			quote := generate(t)

			_, err := flow.AcceptQuote(ctx, &dto.AcceptQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.NoError(t, err)

			_, err = flow.DeclineQuote(ctx, &dto.DeclineQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidQuoteTransition(err))
		})

		t.Run("SendDeclinedQuote", func(t *testing.T) {
			quote := generate(t)

			_, err := flow.DeclineQuote(ctx, &dto.DeclineQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.NoError(t, err)

			_, err = flow.SendQuote(ctx, &dto.SendQuoteRequest{UUID: quote.UUID, CustomerID: customer.ID}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidQuoteTransition(err))
		})

		t.Run("LifecycleScopedToOwner", func(t *testing.T) {
			quote := generate(t)

			other, err := fixtures.CreateTestCustomer()
			require.NoError(t, err)

			_, err = flow.AcceptQuote(ctx, &dto.AcceptQuoteRequest{UUID: quote.UUID, CustomerID: other.ID}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsQuoteAccessDenied(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestGetAndListQuotes(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newQuoteFlow(t, testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		var generated []dto.QuoteDTO
		for i := 0; i < 3; i++ {
			project, err := fixtures.CreateTestProject(customer.ID, models.ProjectTypeCreative, models.UrgencyStandard, testingutil.DefaultScope())
			require.NoError(t, err)
			resp, err := flow.GenerateQuote(ctx, &dto.GenerateQuoteRequest{
				ProjectUUID: project.UUID.String(),
				CustomerID:  customer.ID,
			}, testMetadata())
			require.NoError(t, err)
			generated = append(generated, resp.Quote)
		}

		t.Run("GetQuote", func(t *testing.T) {
			resp, err := flow.GetQuote(ctx, &dto.GetQuoteRequest{UUID: generated[0].UUID, CustomerID: customer.ID})
			require.NoError(t, err)
			assert.Equal(t, generated[0].UUID, resp.Quote.UUID)
		})

		t.Run("GetQuoteNotFound", func(t *testing.T) {
			_, err := flow.GetQuote(ctx, &dto.GetQuoteRequest{UUID: uuid.NewString(), CustomerID: customer.ID})
			require.Error(t, err)
			assert.True(t, businessflow.IsQuoteNotFound(err))
		})

		t.Run("ListQuotesPaginated", func(t *testing.T) {
			resp, err := flow.ListQuotes(ctx, &dto.ListQuotesRequest{CustomerID: customer.ID, Page: 1, PageSize: 2})
			require.NoError(t, err)
			assert.Len(t, resp.Items, 2)
			assert.Equal(t, int64(3), resp.Total)

			resp, err = flow.ListQuotes(ctx, &dto.ListQuotesRequest{CustomerID: customer.ID, Page: 2, PageSize: 2})
			require.NoError(t, err)
			assert.Len(t, resp.Items, 1)
		})

		t.Run("ListQuotesOtherCustomerEmpty", func(t *testing.T) {
			other, err := fixtures.CreateTestCustomer()
			require.NoError(t, err)

			resp, err := flow.ListQuotes(ctx, &dto.ListQuotesRequest{CustomerID: other.ID})
			require.NoError(t, err)
			assert.Empty(t, resp.Items)
			assert.Equal(t, int64(0), resp.Total)
		})

		return nil
	})
	require.NoError(t, err)
}
