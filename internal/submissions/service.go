package submissions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/entities"
	"github.com/angelmondragon/reviewhub-backend/internal/notifications"
	"github.com/angelmondragon/reviewhub-backend/internal/users"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"
	"github.com/angelmondragon/reviewhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service defines the submission workflow.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Submission, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Submission, error)
	Get(ctx context.Context, id string) (*models.Submission, error)
	Delete(ctx context.Context, id, ownerEmail string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status enums.SubmissionStatus, opts UpdateOptions) (*models.Submission, error)
	ListByStatus(ctx context.Context, group enums.StatusGroup, limit int, cursor string) (*ListResult, error)
	History(ctx context.Context, id string) ([]models.SubmissionStatusChange, error)
	Stats(ctx context.Context) (*Stats, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type connAcquirer interface {
	Acquire(ctx context.Context) (*db.Handle, error)
}

// ServiceParams groups the submission service dependencies.
type ServiceParams struct {
	Tx            txRunner
	Conns         connAcquirer
	Repo          Repository
	Users         users.Repository
	Entities      *entities.Registry
	Notifications notifications.Repository
	Metrics       *metrics.ReviewMetrics
}

type service struct {
	tx            txRunner
	conns         connAcquirer
	repo          Repository
	users         users.Repository
	entities      *entities.Registry
	notifications notifications.Repository
	metrics       *metrics.ReviewMetrics
	now           func() time.Time
}

// NewService wires submission dependencies. Metrics are optional.
func NewService(params ServiceParams) (Service, error) {
	switch {
	case params.Tx == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	case params.Conns == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "connection provider required")
	case params.Repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "submissions repository required")
	case params.Users == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	case params.Entities == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "entity registry required")
	case params.Notifications == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{
		tx:            params.Tx,
		conns:         params.Conns,
		repo:          params.Repo,
		users:         params.Users,
		entities:      params.Entities,
		notifications: params.Notifications,
		metrics:       params.Metrics,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Submission, error) {
	owner := users.NormalizeEmail(input.UserEmail)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fileName is required")
	}
	fileType, err := enums.ParseFileType(input.FileType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fileType")
	}
	if input.FileSize < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fileSize must not be negative")
	}
	target, err := s.entities.For(fileType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve entity store")
	}

	submission := &models.Submission{
		OwnerEmail:  owner,
		FileName:    fileName,
		FileType:    fileType,
		FileSize:    input.FileSize,
		Status:      enums.SubmissionStatusPending,
		PreviewData: input.PreviewData,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := users.UpsertTx(ctx, s.users, tx, owner, input.UserName); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Create(ctx, submission); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert submission")
		}
		if submission.PreviewData == nil || *submission.PreviewData == "" {
			return nil
		}
		if err := target.CreateFromSubmission(ctx, tx, submission, input.Metadata); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert "+string(fileType)+" entity")
		}
		return nil
	})
	if err != nil {
		return nil, asDependency(err, "create submission")
	}

	s.metrics.SubmissionCreated(string(fileType))
	return submission, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Submission, error) {
	owner := users.NormalizeEmail(ownerEmail)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}

	handle, err := s.conns.Acquire(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire connection")
	}
	defer handle.Release()

	if err := handle.DisableStatementTimeout(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "prepare owner listing")
	}
	rows, err := s.repo.WithTx(handle.DB()).ListByOwner(ctx, owner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submissions")
	}
	if rows == nil {
		rows = []models.Submission{}
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return submission, nil
}

func (s *service) Delete(ctx context.Context, id, ownerEmail string) (bool, error) {
	id = strings.TrimSpace(id)
	owner := users.NormalizeEmail(ownerEmail)
	if id == "" || owner == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "submission id and userEmail are required")
	}

	var deleted bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		submission, err := txRepo.FindOwned(ctx, id, owner)
		if IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := s.entities.For(submission.FileType)
		if err != nil {
			return err
		}
		if _, err := target.DeleteBySubmission(ctx, tx, id, owner); err != nil {
			return fmt.Errorf("delete entity: %w", err)
		}
		deleted, err = txRepo.Delete(ctx, id, owner)
		return err
	})
	if err != nil {
		return false, asDependency(err, "delete submission")
	}
	return deleted, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status enums.SubmissionStatus, opts UpdateOptions) (*models.Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	var (
		updated  *models.Submission
		previous enums.SubmissionStatus
		applied  bool
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		current, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return mapLookupError(err)
		}
		previous = current.Status
		if !CanTransition(current.Status, status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
				WithDetails(map[string]any{
					"from":    current.Status,
					"to":      status,
					"allowed": NextStatuses(current.Status),
				})
		}

		now := s.now()
		ok, err := txRepo.UpdateStatusIf(ctx, id, current.Status, status, now)
		if err != nil {
			return err
		}
		if !ok {
			latest, err := txRepo.FindByID(ctx, id)
			if err != nil {
				return mapLookupError(err)
			}
			if latest.Status == status {
				updated = latest
				return nil
			}
			return pkgerrors.New(pkgerrors.CodeConflict, "submission status changed concurrently")
		}

		if current.Status != status {
			applied = true
			if err := s.recordTransition(ctx, tx, current, status, opts, now); err != nil {
				return err
			}
		}

		updated, err = txRepo.FindByID(ctx, id)
		if err != nil {
			return mapLookupError(err)
		}
		return nil
	})
	if err != nil {
		return nil, asDependency(err, "update submission status")
	}

	if applied {
		s.metrics.Transition(string(previous), string(status))
	}
	return updated, nil
}

// recordTransition appends the history row and, for review outcomes, the
// owner notification. Both run on tx.
func (s *service) recordTransition(ctx context.Context, tx *gorm.DB, current *models.Submission, status enums.SubmissionStatus, opts UpdateOptions, now time.Time) error {
	change := &models.SubmissionStatusChange{
		SubmissionID: current.ID,
		OldStatus:    current.Status,
		NewStatus:    status,
		ChangedBy:    opts.ChangedBy,
		Reason:       opts.Reason,
		CreatedAt:    now,
	}
	if err := s.repo.WithTx(tx).AppendHistory(ctx, change); err != nil {
		return fmt.Errorf("append status history: %w", err)
	}

	notice, ok := outcomes[status]
	if !ok {
		return nil
	}
	message := fmt.Sprintf(notice.body, current.FileName)
	if opts.Reason != nil && strings.TrimSpace(*opts.Reason) != "" {
		message += " Reason: " + strings.TrimSpace(*opts.Reason)
	}
	actionURL := "/submissions/" + current.ID
	notification := &models.Notification{
		RecipientEmail: current.OwnerEmail,
		Type:           notice.kind,
		Title:          notice.title,
		Message:        message,
		ActionURL:      &actionURL,
	}
	if err := s.notifications.WithTx(tx).Create(ctx, notification); err != nil {
		return fmt.Errorf("notify owner: %w", err)
	}
	return nil
}

func (s *service) ListByStatus(ctx context.Context, group enums.StatusGroup, limit int, cursor string) (*ListResult, error) {
	statuses := group.Statuses()
	if len(statuses) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status group")
	}
	from, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByStatuses(ctx, statuses, group.OldestFirst(), limit, from)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submissions by status")
	}
	if rows == nil {
		rows = []models.Submission{}
	}
	result := &ListResult{Group: group, Items: rows}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) History(ctx context.Context, id string) ([]models.SubmissionStatusChange, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.History(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load status history")
	}
	if rows == nil {
		rows = []models.SubmissionStatusChange{}
	}
	return rows, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count submissions")
	}
	stats := &Stats{ByStatus: make(map[enums.SubmissionStatus]int64)}
	for _, status := range enums.AllSubmissionStatuses() {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}
	return stats, nil
}

func mapLookupError(err error) error {
	if IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
}

// asDependency keeps typed errors and wraps raw driver errors.
func asDependency(err error, message string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
