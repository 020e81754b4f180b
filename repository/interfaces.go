// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/quoteforge/quoteforge/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
}

// CustomerRepository defines operations for customers
type CustomerRepository interface {
	Repository[models.Customer, models.CustomerFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Customer, error)
	ByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// ProjectRepository defines operations for projects
type ProjectRepository interface {
	Repository[models.Project, models.ProjectFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Project, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateStatus(ctx context.Context, projectID uint, status models.ProjectStatus) error
	UpdateComplexityScore(ctx context.Context, projectID uint, score decimal.Decimal) error
}

// QuoteRepository defines operations for quotes
type QuoteRepository interface {
	Repository[models.Quote, models.QuoteFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Quote, error)
	ActiveByProjectID(ctx context.Context, projectID uint) (*models.Quote, error)
	ByFilter(ctx context.Context, filter models.QuoteFilter, orderBy string, limit, offset int) ([]*models.Quote, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.Quote, error)
	Update(ctx context.Context, quote *models.Quote) error
	Count(ctx context.Context, filter models.QuoteFilter) (int64, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}

// RevenueCategoryRepository defines operations for revenue categories
type RevenueCategoryRepository interface {
	Repository[models.RevenueCategory, models.RevenueCategoryFilter]
	ByCodeOrName(ctx context.Context, key string) (*models.RevenueCategory, error)
	ListAll(ctx context.Context) ([]*models.RevenueCategory, error)
}

// CompanyScaleRepository defines operations for company scales
type CompanyScaleRepository interface {
	Repository[models.CompanyScale, models.CompanyScaleFilter]
	ByCodeOrName(ctx context.Context, key string) (*models.CompanyScale, error)
	ListAll(ctx context.Context) ([]*models.CompanyScale, error)
}

// ComplexityTierRepository defines operations for complexity tiers
type ComplexityTierRepository interface {
	Repository[models.ComplexityTier, models.ComplexityTierFilter]
	ByRating(ctx context.Context, rating int) (*models.ComplexityTier, error)
}

// BundlePriceRepository defines operations for bundle base prices
type BundlePriceRepository interface {
	Repository[models.BundlePrice, models.BundlePriceFilter]
	ByTriple(ctx context.Context, bundleID string, revenueCategoryID, companyScaleID uint) (*models.BundlePrice, error)
}
