// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"gorm.io/gorm"
)

// ComplexityTierRepositoryImpl implements ComplexityTierRepository interface
type ComplexityTierRepositoryImpl struct {
	*BaseRepository[models.ComplexityTier, models.ComplexityTierFilter]
}

// NewComplexityTierRepository creates a new complexity tier repository
func NewComplexityTierRepository(db *gorm.DB) ComplexityTierRepository {
	return &ComplexityTierRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ComplexityTier, models.ComplexityTierFilter](db),
	}
}

// ByRating retrieves a complexity tier by its exact integer rating.
// Returns nil without error on a miss; the calculator treats that as a
// neutral 1.0 multiplier.
func (r *ComplexityTierRepositoryImpl) ByRating(ctx context.Context, rating int) (*models.ComplexityTier, error) {
	db := r.getDB(ctx)

	var tier models.ComplexityTier
	err := db.Where("rating = ?", rating).Last(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find complexity tier by rating: %w", err)
	}

	return &tier, nil
}
