package entities

import (
	"context"
	"errors"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no entity row matches.
var ErrNotFound = errors.New("entity not found")

// Store persists one entity table. PT is the pointer type implementing models.Entity.
type Store[T any, PT interface {
	*T
	models.Entity
}] struct {
	base   repo.Base
	prefix string
}

// NewStore builds a store whose ids are "<prefix>_<submission id>".
func NewStore[T any, PT interface {
	*T
	models.Entity
}](base repo.Base, prefix string) *Store[T, PT] {
	return &Store[T, PT]{base: base, prefix: prefix}
}

// WithTx binds the store to tx.
func (s *Store[T, PT]) WithTx(tx *gorm.DB) *Store[T, PT] {
	return &Store[T, PT]{base: s.base.WithTx(tx), prefix: s.prefix}
}

// Prefix returns the id prefix of the store.
func (s *Store[T, PT]) Prefix() string {
	return s.prefix
}

// EntityID returns the id the store assigns to the row of submissionID.
func (s *Store[T, PT]) EntityID(submissionID string) string {
	return s.prefix + "_" + submissionID
}

// Create inserts entity, assigning its composite id from the submission id.
func (s *Store[T, PT]) Create(ctx context.Context, entity PT) error {
	base := entity.Base()
	base.ID = s.EntityID(base.SubmissionID)
	return s.base.Do(ctx, func(conn *gorm.DB) error {
		return conn.Create(entity).Error
	})
}

// ListByOwner returns the owner's rows, newest first.
func (s *Store[T, PT]) ListByOwner(ctx context.Context, ownerEmail string) ([]T, error) {
	var rows []T
	err := s.base.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("owner_email = ?", ownerEmail).
			Order("created_at DESC, id DESC").
			Find(&rows).Error
	})
	return rows, err
}

// GetBySubmissionID returns the row attached to the submission or ErrNotFound.
func (s *Store[T, PT]) GetBySubmissionID(ctx context.Context, submissionID string) (*T, error) {
	var rows []T
	if err := s.base.Do(ctx, func(conn *gorm.DB) error {
		return conn.Where("submission_id = ?", submissionID).Limit(1).Find(&rows).Error
	}); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// Delete removes the row with id owned by ownerEmail. It reports whether a row was removed.
func (s *Store[T, PT]) Delete(ctx context.Context, id, ownerEmail string) (bool, error) {
	return s.deleteWhere(ctx, "id = ? AND owner_email = ?", id, ownerEmail)
}

// DeleteBySubmission removes the row attached to the submission for the owner.
func (s *Store[T, PT]) DeleteBySubmission(ctx context.Context, submissionID, ownerEmail string) (bool, error) {
	return s.deleteWhere(ctx, "submission_id = ? AND owner_email = ?", submissionID, ownerEmail)
}

func (s *Store[T, PT]) deleteWhere(ctx context.Context, query string, args ...any) (bool, error) {
	var affected int64
	err := s.base.Do(ctx, func(conn *gorm.DB) error {
		res := conn.Where(query, args...).Delete(PT(new(T)))
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
