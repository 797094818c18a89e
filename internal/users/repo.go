package users

import (
	"context"
	"errors"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes user-related persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided base.
func NewRepository(base repo.Base) Repository {
	return &repository{Base: base}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

// Upsert inserts the user unless the email already exists, then returns the
// stored row. An existing row is left untouched.
func (r *repository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	var inserted int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(user)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return nil, err
	}
	if inserted > 0 {
		return user, nil
	}
	return r.FindByEmail(ctx, user.Email)
}

func (r *repository) Create(ctx context.Context, user *models.User) error {
	return r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(user).Error
	})
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.First(&user, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("email = ?", email).First(&user).Error
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var rows []models.User
	err := r.Do(ctx, func(conn *gorm.DB) error {
		return conn.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error
	})
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var affected int64
	err := r.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Where("id = ?", id).Delete(&models.User{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
