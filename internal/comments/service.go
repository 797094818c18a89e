package comments

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/reviewhub-backend/internal/users"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const storageMissingMessage = "comments storage is not initialized"

// MaxTextLength bounds a single comment body.
const MaxTextLength = 5000

// Service defines submission comment operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Comment, error)
	List(ctx context.Context, submissionID string) ([]models.Comment, error)
	Count(ctx context.Context, submissionID string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, authorEmail string) error
}

// CreateInput is the payload for POST /api/submissions/{id}/comments.
type CreateInput struct {
	SubmissionID string     `json:"-"`
	AuthorEmail  string     `json:"authorEmail" validate:"required,email"`
	AuthorType   string     `json:"authorType" validate:"required,oneof=user admin"`
	Text         string     `json:"text" validate:"required"`
	ParentID     *uuid.UUID `json:"parentCommentId,omitempty"`
}

type service struct {
	repo Repository
}

// NewService wires comment dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "comments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Comment, error) {
	submissionID := strings.TrimSpace(input.SubmissionID)
	author := users.NormalizeEmail(input.AuthorEmail)
	text := strings.TrimSpace(input.Text)
	if submissionID == "" || author == "" || text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id, author email and text are required")
	}
	if len(text) > MaxTextLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment text is too long")
	}
	authorType, err := enums.ParseAuthorType(input.AuthorType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid author type")
	}

	if input.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *input.ParentID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent comment not found")
		case err != nil:
			return nil, mapStorageError(err, "load parent comment")
		case parent.SubmissionID != submissionID:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent comment belongs to another submission")
		}
	}

	comment := &models.Comment{
		SubmissionID: submissionID,
		AuthorEmail:  author,
		AuthorType:   authorType,
		Text:         text,
		ParentID:     input.ParentID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, mapStorageError(err, "create comment")
	}
	return comment, nil
}

// List returns the submission's comments oldest first. A missing table reads as empty.
func (s *service) List(ctx context.Context, submissionID string) ([]models.Comment, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	rows, err := s.repo.ListBySubmission(ctx, submissionID)
	if db.IsUndefinedTable(err) {
		return []models.Comment{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	if rows == nil {
		rows = []models.Comment{}
	}
	return rows, nil
}

// Count returns the number of comments on a submission. A missing table counts as zero.
func (s *service) Count(ctx context.Context, submissionID string) (int64, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	count, err := s.repo.CountBySubmission(ctx, submissionID)
	if db.IsUndefinedTable(err) {
		return 0, nil
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count comments")
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, authorEmail string) error {
	author := users.NormalizeEmail(authorEmail)
	if id == uuid.Nil || author == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment id and author email are required")
	}
	deleted, err := s.repo.Delete(ctx, id, author)
	if err != nil {
		return mapStorageError(err, "delete comment")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
	}
	return nil
}

func mapStorageError(err error, message string) error {
	if db.IsUndefinedTable(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, storageMissingMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
