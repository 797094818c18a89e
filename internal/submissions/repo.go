package submissions

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/angelmondragon/reviewhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes submission persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, submission *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	FindOwned(ctx context.Context, id, ownerEmail string) (*models.Submission, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Submission, error)
	ListByStatuses(ctx context.Context, statuses []enums.SubmissionStatus, oldestFirst bool, limit int, cursor *pagination.Cursor) ([]models.Submission, *pagination.Cursor, error)
	Delete(ctx context.Context, id, ownerEmail string) (bool, error)
	UpdateStatusIf(ctx context.Context, id string, expected, next enums.SubmissionStatus, now time.Time) (bool, error)
	AppendHistory(ctx context.Context, change *models.SubmissionStatusChange) error
	History(ctx context.Context, id string) ([]models.SubmissionStatusChange, error)
	CountByStatus(ctx context.Context) (map[enums.SubmissionStatus]int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a submissions repo bound to the provided base.
func NewRepository(base repo.Base) Repository {
	return &repository{Base: base}
}

// IsNotFound reports whether err means no submission matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, submission *models.Submission) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(submission).Error
	})
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("id = ?", id).First(&submission).Error
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *repository) FindOwned(ctx context.Context, id, ownerEmail string) (*models.Submission, error) {
	var submission models.Submission
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("id = ? AND owner_email = ?", id, ownerEmail).First(&submission).Error
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Submission, error) {
	var rows []models.Submission
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("owner_email = ?", ownerEmail).
			Order("created_at DESC, id DESC").
			Find(&rows).Error
	})
	return rows, err
}

// ListByStatuses pages one status group by (created_at, id). The cursor is
// the first row of the next page, so it is included on resume.
func (r *repository) ListByStatuses(ctx context.Context, statuses []enums.SubmissionStatus, oldestFirst bool, limit int, cursor *pagination.Cursor) ([]models.Submission, *pagination.Cursor, error) {
	order, after := "created_at DESC, id DESC", "(created_at < ?) OR (created_at = ? AND id <= ?)"
	if oldestFirst {
		order, after = "created_at ASC, id ASC", "(created_at > ?) OR (created_at = ? AND id >= ?)"
	}
	var rows []models.Submission
	err := r.Do(ctx, func(conn *gorm.DB) error {
		query := conn.Where("status IN ?", statuses)
		if cursor != nil {
			query = query.Where(after, cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		}
		return query.Order(order).
			Limit(pagination.LimitWithBuffer(limit)).
			Find(&rows).Error
	})
	if err != nil {
		return nil, nil, err
	}
	page, next := pagination.Trim(rows, limit, func(s models.Submission) pagination.Cursor {
		return pagination.Cursor{CreatedAt: s.CreatedAt, ID: s.ID}
	})
	return page, next, nil
}

func (r *repository) Delete(ctx context.Context, id, ownerEmail string) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Where("id = ? AND owner_email = ?", id, ownerEmail).Delete(&models.Submission{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// UpdateStatusIf moves the row to next only while it still holds expected.
func (r *repository) UpdateStatusIf(ctx context.Context, id string, expected, next enums.SubmissionStatus, now time.Time) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Model(&models.Submission{}).
			Where("id = ? AND status = ?", id, expected).
			UpdateColumns(map[string]any{"status": next, "updated_at": now})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *repository) AppendHistory(ctx context.Context, change *models.SubmissionStatusChange) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(change).Error
	})
}

func (r *repository) History(ctx context.Context, id string) ([]models.SubmissionStatusChange, error) {
	var rows []models.SubmissionStatusChange
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("submission_id = ?", id).
			Order("created_at ASC, id ASC").
			Find(&rows).Error
	})
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context) (map[enums.SubmissionStatus]int64, error) {
	var rows []struct {
		Status enums.SubmissionStatus
		Total  int64
	}
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Model(&models.Submission{}).
			Select("status, COUNT(*) AS total").
			Group("status").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.SubmissionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
