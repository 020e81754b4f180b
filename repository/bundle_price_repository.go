// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"gorm.io/gorm"
)

// BundlePriceRepositoryImpl implements BundlePriceRepository interface
type BundlePriceRepositoryImpl struct {
	*BaseRepository[models.BundlePrice, models.BundlePriceFilter]
}

// NewBundlePriceRepository creates a new bundle price repository
func NewBundlePriceRepository(db *gorm.DB) BundlePriceRepository {
	return &BundlePriceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.BundlePrice, models.BundlePriceFilter](db),
	}
}

// ByTriple retrieves the base price row for the exact (bundle, revenue
// category, company scale) combination. Returns nil without error on a miss.
func (r *BundlePriceRepositoryImpl) ByTriple(ctx context.Context, bundleID string, revenueCategoryID, companyScaleID uint) (*models.BundlePrice, error) {
	db := r.getDB(ctx)

	var price models.BundlePrice
	err := db.Where("bundle_id = ? AND revenue_category_id = ? AND company_scale_id = ?",
		bundleID, revenueCategoryID, companyScaleID).
		Last(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find bundle price: %w", err)
	}

	return &price, nil
}
