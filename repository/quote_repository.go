// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/utils"
	"gorm.io/gorm"
)

// activeQuoteStatuses are the statuses counted against the one-active-quote-
// per-project constraint. Must match the partial unique index on quotes.
var activeQuoteStatuses = []models.QuoteStatus{
	models.QuoteStatusPending,
	models.QuoteStatusSent,
	models.QuoteStatusAccepted,
}

// QuoteRepositoryImpl implements QuoteRepository interface
type QuoteRepositoryImpl struct {
	*BaseRepository[models.Quote, models.QuoteFilter]
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &QuoteRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Quote, models.QuoteFilter](db),
	}
}

// ByUUID retrieves a quote by its UUID
func (r *QuoteRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Quote, error) {
	db := r.getDB(ctx)

	var quote models.Quote
	err := db.Where("uuid = ?", uuid).Preload("Project").Preload("Customer").Last(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find quote by UUID: %w", err)
	}

	return &quote, nil
}

// ActiveByProjectID retrieves the single active quote for a project, if any
func (r *QuoteRepositoryImpl) ActiveByProjectID(ctx context.Context, projectID uint) (*models.Quote, error) {
	db := r.getDB(ctx)

	var quote models.Quote
	err := db.Where("project_id = ? AND status IN ?", projectID, activeQuoteStatuses).
		Last(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active quote by project: %w", err)
	}

	return &quote, nil
}

// ListByCustomer retrieves quotes owned by a customer with pagination
func (r *QuoteRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.Quote, error) {
	db := r.getDB(ctx)

	var quotes []*models.Quote
	query := db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Preload("Project")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to list quotes by customer: %w", err)
	}

	return quotes, nil
}

// Update persists all fields of an existing quote
func (r *QuoteRepositoryImpl) Update(ctx context.Context, quote *models.Quote) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	now := utils.UTCNow()
	quote.UpdatedAt = &now

	err = db.Save(quote).Error
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	return nil
}

// applyFilter applies filter conditions to the GORM query
func (r *QuoteRepositoryImpl) applyFilter(db *gorm.DB, filter models.QuoteFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.ProjectID != nil {
		db = db.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.ActiveOnly {
		db = db.Where("status IN ?", activeQuoteStatuses)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.ValidAfter != nil {
		db = db.Where("valid_until >= ?", *filter.ValidAfter)
	}
	if filter.ValidBefore != nil {
		db = db.Where("valid_until <= ?", *filter.ValidBefore)
	}
	return db
}

// ByFilter retrieves quotes based on filter criteria
func (r *QuoteRepositoryImpl) ByFilter(ctx context.Context, filter models.QuoteFilter, orderBy string, limit, offset int) ([]*models.Quote, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Quote{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var quotes []*models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to find quotes by filter: %w", err)
	}

	return quotes, nil
}

// Count returns the number of quotes matching the filter
func (r *QuoteRepositoryImpl) Count(ctx context.Context, filter models.QuoteFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.Quote{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	return count, nil
}
