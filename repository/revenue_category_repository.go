// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"gorm.io/gorm"
)

// RevenueCategoryRepositoryImpl implements RevenueCategoryRepository interface
type RevenueCategoryRepositoryImpl struct {
	*BaseRepository[models.RevenueCategory, models.RevenueCategoryFilter]
}

// NewRevenueCategoryRepository creates a new revenue category repository
func NewRevenueCategoryRepository(db *gorm.DB) RevenueCategoryRepository {
	return &RevenueCategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RevenueCategory, models.RevenueCategoryFilter](db),
	}
}

// ByCodeOrName resolves a revenue category case-insensitively, first by code
// and then by display name. Two indexed lookups in sequence, not a fuzzy
// query. Returns nil without error when neither matches.
func (r *RevenueCategoryRepositoryImpl) ByCodeOrName(ctx context.Context, key string) (*models.RevenueCategory, error) {
	db := r.getDB(ctx)

	var category models.RevenueCategory
	err := db.Where("LOWER(code) = LOWER(?)", key).Last(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find revenue category by code: %w", err)
	}

	err = db.Where("LOWER(display_name) = LOWER(?)", key).Last(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find revenue category by name: %w", err)
	}

	return &category, nil
}

// ListAll retrieves all revenue categories
func (r *RevenueCategoryRepositoryImpl) ListAll(ctx context.Context) ([]*models.RevenueCategory, error) {
	db := r.getDB(ctx)

	var categories []*models.RevenueCategory
	if err := db.Order("code ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list revenue categories: %w", err)
	}

	return categories, nil
}
