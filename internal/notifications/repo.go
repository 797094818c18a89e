package notifications

import (
	"context"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for notifications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, params listNotificationsParams) ([]models.Notification, *pagination.Cursor, error)
	MarkRead(ctx context.Context, recipient string, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error)
	MarkAllRead(ctx context.Context, recipient string, now time.Time) (int64, error)
	Delete(ctx context.Context, recipient string, notificationID uuid.UUID) (bool, error)
	UnreadCount(ctx context.Context, recipient string) (int64, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a notifications repository bound to the provided base.
func NewRepository(base repo.Base) Repository {
	return &repositoryImpl{Base: base}
}

type listNotificationsParams struct {
	Recipient  string
	Limit      int
	Cursor     *pagination.Cursor
	UnreadOnly bool
}

type notificationMarkResult struct {
	Updated bool
	Found   bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: r.Base.WithTx(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, notification *models.Notification) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(notification).Error
	})
}

func (r *repositoryImpl) List(ctx context.Context, params listNotificationsParams) ([]models.Notification, *pagination.Cursor, error) {
	var notifications []models.Notification
	err := r.Do(ctx, func(conn *gorm.DB) error {
		query := conn.Model(&models.Notification{}).Where("recipient_email = ?", params.Recipient)
		if params.UnreadOnly {
			query = query.Where("is_read = ?", false)
		}
		if params.Cursor != nil {
			query = query.Where("(created_at < ?) OR (created_at = ? AND id <= ?)",
				params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID)
		}
		return query.Order("created_at DESC, id DESC").
			Limit(pagination.LimitWithBuffer(params.Limit)).
			Find(&notifications).Error
	})
	if err != nil {
		return nil, nil, err
	}

	page, next := pagination.Trim(notifications, params.Limit, func(n models.Notification) pagination.Cursor {
		return pagination.Cursor{CreatedAt: n.CreatedAt, ID: n.ID.String()}
	})
	return page, next, nil
}

func (r *repositoryImpl) MarkRead(ctx context.Context, recipient string, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error) {
	var mark notificationMarkResult
	err := r.Do(ctx, func(conn *gorm.DB) error {
		result := conn.Model(&models.Notification{}).
			Where("id = ? AND recipient_email = ? AND is_read = ?", notificationID, recipient, false).
			Updates(map[string]any{"is_read": true, "read_at": now, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		mark = notificationMarkResult{Updated: result.RowsAffected > 0, Found: result.RowsAffected > 0}
		if mark.Found {
			return nil
		}

		var count int64
		if err := conn.Model(&models.Notification{}).
			Where("id = ? AND recipient_email = ?", notificationID, recipient).
			Count(&count).Error; err != nil {
			return err
		}
		mark.Found = count > 0
		return nil
	})
	return mark, err
}

func (r *repositoryImpl) MarkAllRead(ctx context.Context, recipient string, now time.Time) (int64, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		result := conn.Model(&models.Notification{}).
			Where("recipient_email = ? AND is_read = ?", recipient, false).
			Updates(map[string]any{"is_read": true, "read_at": now, "updated_at": now})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

func (r *repositoryImpl) Delete(ctx context.Context, recipient string, notificationID uuid.UUID) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		result := conn.Where("id = ? AND recipient_email = ?", notificationID, recipient).
			Delete(&models.Notification{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected > 0, err
}

func (r *repositoryImpl) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	var count int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Model(&models.Notification{}).
			Where("recipient_email = ? AND is_read = ?", recipient, false).
			Count(&count).Error
	})
	return count, err
}

func (r *repositoryImpl) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		result := conn.Where("is_read = ? AND read_at < ?", true, cutoff).
			Delete(&models.Notification{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
