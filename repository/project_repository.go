// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectRepositoryImpl implements ProjectRepository interface
type ProjectRepositoryImpl struct {
	*BaseRepository[models.Project, models.ProjectFilter]
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Project, models.ProjectFilter](db),
	}
}

// ByUUID retrieves a project by its UUID
func (r *ProjectRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Project, error) {
	db := r.getDB(ctx)

	var project models.Project
	err := db.Where("uuid = ?", uuid).Last(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project by UUID: %w", err)
	}

	return &project, nil
}

// ListByCustomer retrieves projects owned by a customer with pagination
func (r *ProjectRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.Project, error) {
	db := r.getDB(ctx)

	var projects []*models.Project
	query := db.Where("customer_id = ?", customerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects by customer: %w", err)
	}

	return projects, nil
}

// Update persists all fields of an existing project
func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *models.Project) error {
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
	project.UpdatedAt = &now

	err = db.Save(project).Error
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// UpdateStatus updates only the status of a project
func (r *ProjectRepositoryImpl) UpdateStatus(ctx context.Context, projectID uint, status models.ProjectStatus) error {
	db := r.getDB(ctx)

	err := db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	return nil
}

// UpdateComplexityScore caches a computed complexity score on the project
func (r *ProjectRepositoryImpl) UpdateComplexityScore(ctx context.Context, projectID uint, score decimal.Decimal) error {
	db := r.getDB(ctx)

	err := db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"complexity_score": score,
			"updated_at":       utils.UTCNow(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update project complexity score: %w", err)
	}

	return nil
}
