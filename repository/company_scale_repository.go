// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"gorm.io/gorm"
)

// CompanyScaleRepositoryImpl implements CompanyScaleRepository interface
type CompanyScaleRepositoryImpl struct {
	*BaseRepository[models.CompanyScale, models.CompanyScaleFilter]
}

// NewCompanyScaleRepository creates a new company scale repository
func NewCompanyScaleRepository(db *gorm.DB) CompanyScaleRepository {
	return &CompanyScaleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CompanyScale, models.CompanyScaleFilter](db),
	}
}

// ByCodeOrName resolves a company scale case-insensitively, first by code and
// then by display name. Returns nil without error when neither matches.
func (r *CompanyScaleRepositoryImpl) ByCodeOrName(ctx context.Context, key string) (*models.CompanyScale, error) {
	db := r.getDB(ctx)

	var scale models.CompanyScale
	err := db.Where("LOWER(code) = LOWER(?)", key).Last(&scale).Error
	if err == nil {
		return &scale, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find company scale by code: %w", err)
	}

	err = db.Where("LOWER(display_name) = LOWER(?)", key).Last(&scale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company scale by name: %w", err)
	}

	return &scale, nil
}

// ListAll retrieves all company scales
func (r *CompanyScaleRepositoryImpl) ListAll(ctx context.Context) ([]*models.CompanyScale, error) {
	db := r.getDB(ctx)

	var scales []*models.CompanyScale
	if err := db.Order("code ASC").Find(&scales).Error; err != nil {
		return nil, fmt.Errorf("failed to list company scales: %w", err)
	}

	return scales, nil
}
