// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/quoteforge/quoteforge/app/dto"
	businessflow "github.com/quoteforge/quoteforge/business_flow"
	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/repository"
	testingutil "github.com/quoteforge/quoteforge/testing"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBundlePricingFlow(testDB *testingutil.TestDB) businessflow.BundlePricingFlow {
	return businessflow.NewBundlePricingFlow(
		repository.NewRevenueCategoryRepository(testDB.DB),
		repository.NewCompanyScaleRepository(testDB.DB),
		repository.NewComplexityTierRepository(testDB.DB),
		repository.NewBundlePriceRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		nil, // no cache in tests
	)
}

func TestCalculateBundlePricing(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newBundlePricingFlow(testDB)
		ctx := testingutil.CreateTestContext()

		_, _, err := fixtures.SeedPricingCatalog()
		require.NoError(t, err)

		t.Run("FullBreakdown", func(t *testing.T) {
			// base 5000, scale 1.5, tier 5 -> 1.35:
			//   scale adjustment 2500, complexity adjustment 2625, final 10125.00
			rating := 5
			resp, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:         "audit-standard",
				RevenueCategory:  "saas",
				CompanyScale:     "enterprise",
				ComplexityRating: &rating,
			}, testMetadata())
			require.NoError(t, err)

			assert.Equal(t, "audit-standard", resp.BundleID)
			assert.Equal(t, "saas", resp.RevenueCategory)
			assert.Equal(t, "enterprise", resp.CompanyScale)
			assert.Equal(t, 5, resp.ComplexityRating)
			assert.Equal(t, utils.USDCurrency, resp.Currency)

			assert.True(t, resp.BasePrice.Equal(decimal.RequireFromString("5000")))
			assert.True(t, resp.Breakdown.ScaleAdjustment.Equal(decimal.RequireFromString("2500")), "scale adj %s", resp.Breakdown.ScaleAdjustment)
			assert.True(t, resp.Breakdown.ComplexityAdjustment.Equal(decimal.RequireFromString("2625")), "complexity adj %s", resp.Breakdown.ComplexityAdjustment)
			assert.True(t, resp.FinalPrice.Equal(decimal.RequireFromString("10125.00")), "final %s", resp.FinalPrice)
		})

		t.Run("CaseInsensitiveLookup", func(t *testing.T) {
			rating := 5
			resp, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:         "audit-standard",
				RevenueCategory:  "SaaS",
				CompanyScale:     "ENTERPRISE",
				ComplexityRating: &rating,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "saas", resp.RevenueCategory)
			assert.Equal(t, "enterprise", resp.CompanyScale)
		})

		t.Run("MissingTierDefaultsToNeutral", func(t *testing.T) {
			// Rating 7 is not seeded; the multiplier silently falls back to 1.0
			rating := 7
			resp, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:         "audit-standard",
				RevenueCategory:  "saas",
				CompanyScale:     "enterprise",
				ComplexityRating: &rating,
			}, testMetadata())
			require.NoError(t, err)

			assert.True(t, resp.ComplexityMultiplier.Equal(decimal.NewFromInt(1)))
			assert.True(t, resp.Breakdown.ComplexityAdjustment.IsZero())
			assert.True(t, resp.FinalPrice.Equal(decimal.RequireFromString("7500.00")), "final %s", resp.FinalPrice)
		})

		t.Run("DefaultRatingWhenOmitted", func(t *testing.T) {
			resp, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:        "audit-standard",
				RevenueCategory: "saas",
				CompanyScale:    "enterprise",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, utils.DefaultComplexityRating, resp.ComplexityRating)
		})

		t.Run("UnknownCategoryIsStrict", func(t *testing.T) {
			_, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:        "audit-standard",
				RevenueCategory: "fintech",
				CompanyScale:    "enterprise",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsRevenueCategoryNotFound(err))
		})

		t.Run("UnknownScaleIsStrict", func(t *testing.T) {
			_, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:        "audit-standard",
				RevenueCategory: "saas",
				CompanyScale:    "garage",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsCompanyScaleNotFound(err))
		})

		t.Run("MissingPriceIsStrictAndAudited", func(t *testing.T) {
			_, err := flow.CalculatePricing(ctx, &dto.BundlePricingRequest{
				BundleID:        "audit-premium",
				RevenueCategory: "saas",
				CompanyScale:    "enterprise",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsBundlePricingNotFound(err))

			var audit models.AuditLog
			require.NoError(t, testDB.DB.Where("action = ?", models.AuditActionBundlePricingFailed).First(&audit).Error)
			assert.True(t, audit.IsFailed())
		})

		return nil
	})
	require.NoError(t, err)
}
