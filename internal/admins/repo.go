package admins

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes admin and audit persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, admin *models.Admin, replaceStatus bool) (*models.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	List(ctx context.Context, filter ListFilter) ([]models.Admin, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdminAccountStatus) (bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CreateAction(ctx context.Context, action *models.AdminAction) error
	ListActions(ctx context.Context, filter ActionFilter) ([]models.AdminAction, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs an admins repo bound to the provided base.
func NewRepository(base repo.Base) Repository {
	return &repository{Base: base}
}

// IsNotFound reports whether err means no admin matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

// Upsert inserts the admin or refreshes the profile of the existing email.
// An existing account keeps its status unless replaceStatus is set.
func (r *repository) Upsert(ctx context.Context, admin *models.Admin, replaceStatus bool) (*models.Admin, error) {
	columns := []string{"name", "password_hash", "role", "country", "updated_at"}
	if replaceStatus {
		columns = append(columns, "account_status")
	}
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).Create(admin).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, admin.Email)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("id = ?", id).First(&admin).Error
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("email = ?", email).First(&admin).Error
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Admin, error) {
	var rows []models.Admin
	err := r.Do(ctx, func(conn *gorm.DB) error {
		query := conn.Model(&models.Admin{})
		if filter.Role != nil {
			query = query.Where("role = ?", *filter.Role)
		}
		if filter.Status != nil {
			query = query.Where("account_status = ?", *filter.Status)
		}
		return query.Order("created_at DESC, email ASC").Find(&rows).Error
	})
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdminAccountStatus) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Model(&models.Admin{}).Where("id = ?", id).Update("account_status", status)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Model(&models.Admin{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Where("id = ?", id).Delete(&models.Admin{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *repository) CreateAction(ctx context.Context, action *models.AdminAction) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(action).Error
	})
}

func (r *repository) ListActions(ctx context.Context, filter ActionFilter) ([]models.AdminAction, error) {
	var rows []models.AdminAction
	err := r.Do(ctx, func(conn *gorm.DB) error {
		query := conn.Model(&models.AdminAction{})
		if filter.AdminID != nil {
			query = query.Where("admin_id = ?", *filter.AdminID)
		}
		if filter.ActionType != "" {
			query = query.Where("action_type = ?", filter.ActionType)
		}
		return query.Order("created_at DESC, id DESC").
			Limit(filter.Limit).
			Offset(filter.Offset).
			Find(&rows).Error
	})
	return rows, err
}
