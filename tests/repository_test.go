// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/repository"
	testingutil "github.com/quoteforge/quoteforge/testing"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewCustomerRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		t.Run("ByID", func(t *testing.T) {
			found, err := repo.ByID(ctx, customer.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, customer.Email, found.Email)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			found, err := repo.ByID(ctx, 99999)
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ByUUID", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, customer.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, customer.ID, found.ID)
		})

		t.Run("ByEmail", func(t *testing.T) {
			found, err := repo.ByEmail(ctx, customer.Email)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, customer.ID, found.ID)
		})

		t.Run("ByEmailNotFound", func(t *testing.T) {
			found, err := repo.ByEmail(ctx, "nobody@example.com")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProjectRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewProjectRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)
		project, err := fixtures.CreateTestProject(customer.ID, models.ProjectTypeWeb3, models.UrgencyCritical, testingutil.DefaultScope())
		require.NoError(t, err)

		t.Run("ByUUID", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, project.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, models.ProjectTypeWeb3, found.Type)
			assert.Equal(t, models.UrgencyCritical, found.Urgency)
		})

		t.Run("ByUUIDNotFound", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, uuid.NewString())
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("UpdateStatus", func(t *testing.T) {
			require.NoError(t, repo.UpdateStatus(ctx, project.ID, models.ProjectStatusQuoteGenerated))

			found, err := repo.ByID(ctx, project.ID)
			require.NoError(t, err)
			assert.Equal(t, models.ProjectStatusQuoteGenerated, found.Status)
		})

		t.Run("UpdateComplexityScore", func(t *testing.T) {
			score := decimal.RequireFromString("7.30")
			require.NoError(t, repo.UpdateComplexityScore(ctx, project.ID, score))

			found, err := repo.ByID(ctx, project.ID)
			require.NoError(t, err)
			require.NotNil(t, found.ComplexityScore)
			assert.True(t, found.ComplexityScore.Equal(score))
		})

		t.Run("ListByCustomer", func(t *testing.T) {
			projects, err := repo.ListByCustomer(ctx, customer.ID, 10, 0)
			require.NoError(t, err)
			assert.Len(t, projects, 1)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestQuoteRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewQuoteRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)
		project, err := fixtures.CreateTestProject(customer.ID, models.ProjectTypeCreative, models.UrgencyStandard, testingutil.DefaultScope())
		require.NoError(t, err)

		quote := newStoredQuote(project, customer)
		require.NoError(t, repo.Save(ctx, quote))

		t.Run("ByUUIDPreloadsRelations", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, quote.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			require.NotNil(t, found.Project)
			require.NotNil(t, found.Customer)
			assert.Equal(t, project.UUID, found.Project.UUID)
			assert.Equal(t, customer.ID, found.Customer.ID)
		})

		t.Run("ActiveByProjectID", func(t *testing.T) {
			found, err := repo.ActiveByProjectID(ctx, project.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, quote.ID, found.ID)
		})

		t.Run("ActiveByProjectIDIgnoresTerminal", func(t *testing.T) {
			require.NoError(t, testDB.DB.Model(quote).Update("status", models.QuoteStatusExpired).Error)

			found, err := repo.ActiveByProjectID(ctx, project.ID)
			require.NoError(t, err)
			assert.Nil(t, found)

			require.NoError(t, testDB.DB.Model(quote).Update("status", models.QuoteStatusPending).Error)
		})

		t.Run("ByFilterStatus", func(t *testing.T) {
			status := models.QuoteStatusPending
			quotes, err := repo.ByFilter(ctx, models.QuoteFilter{Status: &status}, "", 10, 0)
			require.NoError(t, err)
			assert.Len(t, quotes, 1)
		})

		t.Run("ByFilterActiveOnly", func(t *testing.T) {
			quotes, err := repo.ByFilter(ctx, models.QuoteFilter{ActiveOnly: true}, "", 10, 0)
			require.NoError(t, err)
			assert.Len(t, quotes, 1)
		})

		t.Run("Count", func(t *testing.T) {
			count, err := repo.Count(ctx, models.QuoteFilter{CustomerID: &customer.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ListByCustomer", func(t *testing.T) {
			quotes, err := repo.ListByCustomer(ctx, customer.ID, 10, 0)
			require.NoError(t, err)
			assert.Len(t, quotes, 1)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestPricingCatalogRepositories(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		category, scale, err := fixtures.SeedPricingCatalog()
		require.NoError(t, err)

		categoryRepo := repository.NewRevenueCategoryRepository(testDB.DB)
		scaleRepo := repository.NewCompanyScaleRepository(testDB.DB)
		tierRepo := repository.NewComplexityTierRepository(testDB.DB)
		priceRepo := repository.NewBundlePriceRepository(testDB.DB)

		t.Run("CategoryByCode", func(t *testing.T) {
			found, err := categoryRepo.ByCodeOrName(ctx, "saas")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, category.ID, found.ID)
		})

		t.Run("CategoryByDisplayNameCaseInsensitive", func(t *testing.T) {
			found, err := categoryRepo.ByCodeOrName(ctx, "SAAS")
			require.NoError(t, err)
			require.NotNil(t, found)

			found, err = categoryRepo.ByCodeOrName(ctx, "SaaS")
			require.NoError(t, err)
			require.NotNil(t, found)
		})

		t.Run("CategoryMiss", func(t *testing.T) {
			found, err := categoryRepo.ByCodeOrName(ctx, "fintech")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ScaleByCodeOrName", func(t *testing.T) {
			found, err := scaleRepo.ByCodeOrName(ctx, "Enterprise")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, scale.ID, found.ID)
		})

		t.Run("TierByRating", func(t *testing.T) {
			tier, err := tierRepo.ByRating(ctx, 5)
			require.NoError(t, err)
			require.NotNil(t, tier)
			assert.True(t, tier.Multiplier.Equal(decimal.RequireFromString("1.35")))
		})

		t.Run("TierByRatingMiss", func(t *testing.T) {
			tier, err := tierRepo.ByRating(ctx, 7)
			assert.NoError(t, err)
			assert.Nil(t, tier)
		})

		t.Run("PriceByTriple", func(t *testing.T) {
			price, err := priceRepo.ByTriple(ctx, "audit-standard", category.ID, scale.ID)
			require.NoError(t, err)
			require.NotNil(t, price)
			assert.True(t, price.BasePrice.Equal(decimal.RequireFromString("5000")))
		})

		t.Run("PriceByTripleMiss", func(t *testing.T) {
			price, err := priceRepo.ByTriple(ctx, "audit-premium", category.ID, scale.ID)
			assert.NoError(t, err)
			assert.Nil(t, price)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAuditLogRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewAuditLogRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		entries := []*models.AuditLog{
			{
				CustomerID:  &customer.ID,
				Action:      models.AuditActionQuoteGenerated,
				Description: utils.ToPtr("quote generated"),
				Success:     utils.ToPtr(true),
			},
			{
				CustomerID:  &customer.ID,
				Action:      models.AuditActionQuoteDeclined,
				Description: utils.ToPtr("quote declined"),
				Success:     utils.ToPtr(true),
			},
			{
				Action:       models.AuditActionBundlePricingFailed,
				Description:  utils.ToPtr("no base price"),
				Success:      utils.ToPtr(false),
				ErrorMessage: utils.ToPtr("no base price for combination"),
			},
		}
		require.NoError(t, repo.SaveBatch(ctx, entries))

		t.Run("ListByCustomer", func(t *testing.T) {
			logs, err := repo.ListByCustomer(ctx, customer.ID, 10, 0)
			require.NoError(t, err)
			assert.Len(t, logs, 2)
		})

		t.Run("ListByAction", func(t *testing.T) {
			logs, err := repo.ListByAction(ctx, models.AuditActionQuoteGenerated, 10, 0)
			require.NoError(t, err)
			assert.Len(t, logs, 1)
		})

		t.Run("ListFailedActions", func(t *testing.T) {
			logs, err := repo.ListFailedActions(ctx, 10, 0)
			require.NoError(t, err)
			require.Len(t, logs, 1)
			assert.Equal(t, models.AuditActionBundlePricingFailed, logs[0].Action)
		})

		return nil
	})
	require.NoError(t, err)
}
