package notifications

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/users"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service defines notification create/list/read operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Notification, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, recipient string, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
	Delete(ctx context.Context, recipient string, notificationID uuid.UUID) error
	UnreadCount(ctx context.Context, recipient string) (int64, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// CreateInput describes a notification sent to one recipient.
type CreateInput struct {
	RecipientEmail string                 `json:"recipientEmail" validate:"required,email"`
	Type           enums.NotificationType `json:"type" validate:"required"`
	Title          string                 `json:"title" validate:"required,max=200"`
	Message        string                 `json:"message" validate:"required"`
	ActionURL      *string                `json:"actionUrl,omitempty" validate:"omitempty,url"`
}

// ListParams configures pagination for notifications.
type ListParams struct {
	Recipient  string
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items       []models.Notification `json:"items"`
	Cursor      string                `json:"cursor"`
	UnreadCount int64                 `json:"unreadCount"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Notification, error) {
	recipient := users.NormalizeEmail(input.RecipientEmail)
	if recipient == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient email required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and message required")
	}

	notification := &models.Notification{
		RecipientEmail: recipient,
		Type:           input.Type,
		Title:          strings.TrimSpace(input.Title),
		Message:        input.Message,
		ActionURL:      input.ActionURL,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	recipient := users.NormalizeEmail(params.Recipient)
	if recipient == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient email required")
	}

	query := listNotificationsParams{
		Recipient:  recipient,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.UnreadCount(ctx, recipient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	if rows == nil {
		rows = []models.Notification{}
	}

	return &ListResult{
		Items:       rows,
		Cursor:      cursor,
		UnreadCount: unread,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, recipient string, notificationID uuid.UUID) error {
	recipient = users.NormalizeEmail(recipient)
	if recipient == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, recipient, notificationID, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	recipient = users.NormalizeEmail(recipient)
	if recipient == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "recipient email required")
	}

	count, err := s.repo.MarkAllRead(ctx, recipient, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, recipient string, notificationID uuid.UUID) error {
	recipient = users.NormalizeEmail(recipient)
	if recipient == "" || notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email and notification id required")
	}

	deleted, err := s.repo.Delete(ctx, recipient, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete notification")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	recipient = users.NormalizeEmail(recipient)
	if recipient == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "recipient email required")
	}
	count, err := s.repo.UnreadCount(ctx, recipient)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}
	return count, nil
}

func (s *service) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	count, err := s.repo.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge read notifications")
	}
	return count, nil
}
