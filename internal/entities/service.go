package entities

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/reviewhub-backend/internal/users"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
)

// Service exposes the entity stores to the HTTP layer.
type Service interface {
	ListByOwner(ctx context.Context, kind Kind, ownerEmail string) (any, error)
	GetBySubmissionID(ctx context.Context, kind Kind, submissionID string) (any, error)
	Delete(ctx context.Context, kind Kind, id, ownerEmail string) error
}

type service struct {
	registry *Registry
}

// NewService wires the entity service to a registry.
func NewService(registry *Registry) (Service, error) {
	if registry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "entity registry required")
	}
	return &service{registry: registry}, nil
}

func (s *service) ListByOwner(ctx context.Context, kind Kind, ownerEmail string) (any, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	ownerEmail = users.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	rows, err := store.listByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list "+string(kind))
	}
	return rows, nil
}

func (s *service) GetBySubmissionID(ctx context.Context, kind Kind, submissionID string) (any, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(submissionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	row, err := store.getBySubmission(ctx, submissionID)
	if errors.Is(err, ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entity not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+string(kind))
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id, ownerEmail string) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	ownerEmail = users.NormalizeEmail(ownerEmail)
	if strings.TrimSpace(id) == "" || ownerEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "id and userEmail are required")
	}
	deleted, err := store.delete(ctx, id, ownerEmail)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete "+string(kind))
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "entity not found")
	}
	return nil
}

func (s *service) store(kind Kind) (kindStore, error) {
	store, err := s.registry.kind(kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "unknown entity kind")
	}
	return store, nil
}
