// Package testing provides test utilities and database setup for testing the quoting system
package testing

import (
	"fmt"
	"math/rand"

	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCustomer creates an active test customer with a unique email
func (tf *TestFixtures) CreateTestCustomer() (*models.Customer, error) {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	customer := &models.Customer{
		Email:    fmt.Sprintf("jane.doe.%s@example.com", randomDigits),
		FullName: "Jane Doe",
		IsActive: utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test customer: %w", err)
	}

	return customer, nil
}

// CreateInactiveCustomer creates a deactivated customer
func (tf *TestFixtures) CreateInactiveCustomer() (*models.Customer, error) {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	customer := &models.Customer{
		Email:    fmt.Sprintf("gone.%s@example.com", randomDigits),
		FullName: "Former Customer",
		IsActive: utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create inactive customer: %w", err)
	}

	return customer, nil
}

// CreateTestProject creates a project in intake status for the given customer
func (tf *TestFixtures) CreateTestProject(customerID uint, projectType models.ProjectType, urgency models.UrgencyLevel, scope models.ProjectScope) (*models.Project, error) {
	project := &models.Project{
		CustomerID:  customerID,
		Type:        projectType,
		Description: "Security audit engagement",
		Scope:       scope,
		Urgency:     urgency,
		Status:      models.ProjectStatusIntake,
	}

	if err := tf.DB.DB.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create test project: %w", err)
	}

	return project, nil
}

// DefaultScope returns a scope with a couple of features and one qualifying integration
func DefaultScope() models.ProjectScope {
	return models.ProjectScope{
		Features: []string{"dashboard", "reporting"},
		Integrations: []models.Integration{
			{Type: "payment", Name: "stripe"},
		},
		Timeline: "flexible",
	}
}

// SeedPricingCatalog inserts revenue categories, company scales, complexity
// tiers, and one bundle price row, returning the seeded category and scale.
func (tf *TestFixtures) SeedPricingCatalog() (*models.RevenueCategory, *models.CompanyScale, error) {
	category := &models.RevenueCategory{
		Code:        "saas",
		DisplayName: "SaaS",
		Multiplier:  decimal.RequireFromString("1.5"),
	}
	if err := tf.DB.DB.Create(category).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to seed revenue category: %w", err)
	}

	scale := &models.CompanyScale{
		Code:        "enterprise",
		DisplayName: "Enterprise",
		Multiplier:  decimal.RequireFromString("1.5"),
	}
	if err := tf.DB.DB.Create(scale).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to seed company scale: %w", err)
	}

	tiers := []*models.ComplexityTier{
		{Rating: 3, Label: "simple", Multiplier: decimal.RequireFromString("1.1")},
		{Rating: 5, Label: "moderate", Multiplier: decimal.RequireFromString("1.35")},
		{Rating: 8, Label: "involved", Multiplier: decimal.RequireFromString("1.7")},
	}
	for _, tier := range tiers {
		if err := tf.DB.DB.Create(tier).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to seed complexity tier %d: %w", tier.Rating, err)
		}
	}

	price := &models.BundlePrice{
		BundleID:          "audit-standard",
		RevenueCategoryID: category.ID,
		CompanyScaleID:    scale.ID,
		BasePrice:         decimal.RequireFromString("5000"),
	}
	if err := tf.DB.DB.Create(price).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to seed bundle price: %w", err)
	}

	return category, scale, nil
}
