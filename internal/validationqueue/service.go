package validationqueue

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/users"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"gorm.io/gorm"
)

// MaxBulk caps the ids accepted by the bulk operations.
const MaxBulk = 200

// Service defines per-admin queue operations.
type Service interface {
	Enqueue(ctx context.Context, submissionID, adminEmail string) (*models.ValidationQueueItem, error)
	EnqueueBulk(ctx context.Context, submissionIDs []string, adminEmail string) ([]models.ValidationQueueItem, error)
	List(ctx context.Context, adminEmail string) ([]models.ValidationQueueItem, error)
	UpdateStatus(ctx context.Context, submissionID, adminEmail string, status enums.QueueStatus) error
	Dequeue(ctx context.Context, submissionID, adminEmail string) error
	DequeueBulk(ctx context.Context, submissionIDs []string, adminEmail string) error
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx   txRunner
	repo Repository
	now  func() time.Time
}

// NewService wires queue dependencies.
func NewService(tx txRunner, repo Repository) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "queue repository required")
	}
	return &service{tx: tx, repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Enqueue(ctx context.Context, submissionID, adminEmail string) (*models.ValidationQueueItem, error) {
	submissionID, adminEmail, err := normalizeKey(submissionID, adminEmail)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.Upsert(ctx, submissionID, adminEmail, s.now())
	if err != nil {
		return nil, mapWriteError(err, "enqueue submission")
	}
	return item, nil
}

func (s *service) EnqueueBulk(ctx context.Context, submissionIDs []string, adminEmail string) ([]models.ValidationQueueItem, error) {
	ids, adminEmail, err := normalizeBulk(submissionIDs, adminEmail)
	if err != nil {
		return nil, err
	}

	items := make([]models.ValidationQueueItem, 0, len(ids))
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		now := s.now()
		for _, id := range ids {
			item, err := txRepo.Upsert(ctx, id, adminEmail, now)
			if err != nil {
				return mapWriteError(err, "enqueue submission "+id)
			}
			items = append(items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) List(ctx context.Context, adminEmail string) ([]models.ValidationQueueItem, error) {
	adminEmail = users.NormalizeEmail(adminEmail)
	if adminEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin email is required")
	}
	rows, err := s.repo.ListOpen(ctx, adminEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list queue")
	}
	if rows == nil {
		rows = []models.ValidationQueueItem{}
	}
	return rows, nil
}

func (s *service) UpdateStatus(ctx context.Context, submissionID, adminEmail string, status enums.QueueStatus) error {
	submissionID, adminEmail, err := normalizeKey(submissionID, adminEmail)
	if err != nil {
		return err
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid queue status")
	}
	return s.update(ctx, s.repo, submissionID, adminEmail, status)
}

func (s *service) Dequeue(ctx context.Context, submissionID, adminEmail string) error {
	return s.UpdateStatus(ctx, submissionID, adminEmail, enums.QueueStatusCompleted)
}

func (s *service) DequeueBulk(ctx context.Context, submissionIDs []string, adminEmail string) error {
	ids, adminEmail, err := normalizeBulk(submissionIDs, adminEmail)
	if err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, id := range ids {
			if err := s.update(ctx, txRepo, id, adminEmail, enums.QueueStatusCompleted); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *service) ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "stale threshold must be positive")
	}
	now := s.now()
	count, err := s.repo.ReleaseStale(ctx, now.Add(-olderThan), now)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release stale queue entries")
	}
	return count, nil
}

func (s *service) update(ctx context.Context, repo Repository, submissionID, adminEmail string, status enums.QueueStatus) error {
	found, err := repo.UpdateStatus(ctx, submissionID, adminEmail, status, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update queue entry")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "queue entry not found").
			WithDetails(map[string]string{"submissionId": submissionID})
	}
	return nil
}

func normalizeKey(submissionID, adminEmail string) (string, string, error) {
	submissionID = strings.TrimSpace(submissionID)
	adminEmail = users.NormalizeEmail(adminEmail)
	if submissionID == "" || adminEmail == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "submission id and admin email are required")
	}
	return submissionID, adminEmail, nil
}

func normalizeBulk(submissionIDs []string, adminEmail string) ([]string, string, error) {
	adminEmail = users.NormalizeEmail(adminEmail)
	if adminEmail == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "admin email is required")
	}
	if len(submissionIDs) == 0 {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "at least one submission id is required")
	}
	if len(submissionIDs) > MaxBulk {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "too many submission ids")
	}

	seen := make(map[string]struct{}, len(submissionIDs))
	ids := make([]string, 0, len(submissionIDs))
	for _, raw := range submissionIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "submission ids must not be empty")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, adminEmail, nil
}

func mapWriteError(err error, message string) error {
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
