package comments

import (
	"context"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes comment persistence.
type Repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]models.Comment, error)
	CountBySubmission(ctx context.Context, submissionID string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, authorEmail string) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a comments repo bound to the provided base.
func NewRepository(base repo.Base) Repository {
	return &repository{Base: base}
}

func (r *repository) Create(ctx context.Context, comment *models.Comment) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(comment).Error
	})
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("id = ?", id).First(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *repository) ListBySubmission(ctx context.Context, submissionID string) ([]models.Comment, error) {
	var rows []models.Comment
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("submission_id = ?", submissionID).
			Order("created_at ASC, id ASC").
			Find(&rows).Error
	})
	return rows, err
}

func (r *repository) CountBySubmission(ctx context.Context, submissionID string) (int64, error) {
	var count int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Model(&models.Comment{}).Where("submission_id = ?", submissionID).Count(&count).Error
	})
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID, authorEmail string) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Where("id = ? AND author_email = ?", id, authorEmail).Delete(&models.Comment{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
