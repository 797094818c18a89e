package validationqueue

import (
	"context"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes validation queue persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, submissionID, adminEmail string, now time.Time) (*models.ValidationQueueItem, error)
	ListOpen(ctx context.Context, adminEmail string) ([]models.ValidationQueueItem, error)
	UpdateStatus(ctx context.Context, submissionID, adminEmail string, status enums.QueueStatus, now time.Time) (bool, error)
	ReleaseStale(ctx context.Context, cutoff, now time.Time) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a queue repo bound to the provided base.
func NewRepository(base repo.Base) Repository {
	return &repository{Base: base}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

// Upsert inserts the entry or resets an existing one back to pending.
func (r *repository) Upsert(ctx context.Context, submissionID, adminEmail string, now time.Time) (*models.ValidationQueueItem, error) {
	item := &models.ValidationQueueItem{
		SubmissionID: submissionID,
		AdminEmail:   adminEmail,
		Status:       enums.QueueStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := r.Do(ctx, func(conn *gorm.DB) error {
		if err := conn.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "submission_id"}, {Name: "admin_email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     enums.QueueStatusPending,
				"updated_at": now,
			}),
		}).Create(item).Error; err != nil {
			return err
		}
		return conn.Where("submission_id = ? AND admin_email = ?", submissionID, adminEmail).First(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) ListOpen(ctx context.Context, adminEmail string) ([]models.ValidationQueueItem, error) {
	var rows []models.ValidationQueueItem
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("admin_email = ? AND status IN ?", adminEmail,
			[]enums.QueueStatus{enums.QueueStatusPending, enums.QueueStatusInProgress}).
			Order("created_at ASC, submission_id ASC").
			Find(&rows).Error
	})
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, submissionID, adminEmail string, status enums.QueueStatus, now time.Time) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Model(&models.ValidationQueueItem{}).
			Where("submission_id = ? AND admin_email = ?", submissionID, adminEmail).
			UpdateColumns(map[string]any{"status": status, "updated_at": now})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// ReleaseStale returns in_progress entries untouched since cutoff to pending.
func (r *repository) ReleaseStale(ctx context.Context, cutoff, now time.Time) (int64, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Model(&models.ValidationQueueItem{}).
			Where("status = ? AND updated_at < ?", enums.QueueStatusInProgress, cutoff).
			UpdateColumns(map[string]any{"status": enums.QueueStatusPending, "updated_at": now})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
