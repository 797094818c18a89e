package admins

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

const invalidCredentialsMessage = "invalid credentials"

// Service defines admin account and audit operations.
type Service interface {
	Create(ctx context.Context, req CreateAdminRequest) (*models.Admin, error)
	Authenticate(ctx context.Context, email, password string) (*models.Admin, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	List(ctx context.Context, filter ListFilter) ([]models.Admin, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdminAccountStatus) (*models.Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordAction(ctx context.Context, input ActionInput) error
	ListActions(ctx context.Context, filter ActionFilter) ([]models.AdminAction, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
	VerifyMissing(password string) bool
}

type service struct {
	repo   Repository
	hasher passwordHasher
	now    func() time.Time
}

// NewService wires admin dependencies.
func NewService(repo Repository, hasher passwordHasher) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admins repository required")
	}
	if hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "password hasher required")
	}
	return &service{repo: repo, hasher: hasher, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Create(ctx context.Context, req CreateAdminRequest) (*models.Admin, error) {
	email := users.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and name are required")
	}
	role, err := enums.ParseAdminRole(req.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}
	status := enums.AdminAccountStatusPending
	if req.AccountStatus != "" {
		if status, err = enums.ParseAdminAccountStatus(req.AccountStatus); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid account status")
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	admin, err := s.repo.Upsert(ctx, &models.Admin{
		Email:         email,
		Name:          name,
		PasswordHash:  hash,
		Role:          role,
		Country:       req.Country,
		AccountStatus: status,
	}, req.AccountStatus != "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save admin")
	}
	return admin, nil
}

// Authenticate verifies the credentials of an active admin and records the
// login. Every rejection carries the same message.
func (s *service) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	email = users.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			s.hasher.VerifyMissing(password)
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}

	valid, err := s.hasher.Verify(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || admin.AccountStatus != enums.AdminAccountStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	admin.LastLoginAt = &now
	return admin, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin id required")
	}
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}
	return admin, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Admin, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	if rows == nil {
		rows = []models.Admin{}
	}
	return rows, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdminAccountStatus) (*models.Admin, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid account status")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin id required")
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update admin status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "admin id required")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete admin")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
	}
	return nil
}

func (s *service) RecordAction(ctx context.Context, input ActionInput) error {
	if input.AdminID == uuid.Nil || strings.TrimSpace(input.ActionType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "admin id and action type required")
	}
	action := &models.AdminAction{
		AdminID:     input.AdminID,
		ActionType:  input.ActionType,
		TargetType:  optional(input.TargetType),
		TargetID:    optional(input.TargetID),
		Description: input.Description,
		IPAddress:   optional(input.IPAddress),
		UserAgent:   optional(input.UserAgent),
	}
	if err := s.repo.CreateAction(ctx, action); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record admin action")
	}
	return nil
}

func (s *service) ListActions(ctx context.Context, filter ActionFilter) ([]models.AdminAction, error) {
	filter.Limit = pagination.NormalizeLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	rows, err := s.repo.ListActions(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admin actions")
	}
	if rows == nil {
		rows = []models.AdminAction{}
	}
	return rows, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
