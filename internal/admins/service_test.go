package admins

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	hasher, err := security.NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    64,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	svc, err := NewService(NewRepository(repo.NewBase(dbtest.Open(t), db.RetryPolicy{Attempts: 1})), hasher)
	require.NoError(t, err)
	return svc.(*service)
}

func createAdmin(t *testing.T, svc Service, email, status string) uuid.UUID {
	t.Helper()
	admin, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:         email,
		Name:          "Reviewer",
		Password:      "s3cret-pass",
		Role:          "validator_admin",
		AccountStatus: status,
	})
	require.NoError(t, err)
	return admin.ID
}

func TestCreate_UpsertsByEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Create(ctx, CreateAdminRequest{Email: "Rev@Example.com", Name: "Rev", Password: "password-1", Role: "validator_admin"})
	require.NoError(t, err)
	assert.Equal(t, "rev@example.com", first.Email)
	assert.Equal(t, enums.AdminAccountStatusPending, first.AccountStatus)
	assert.NotContains(t, first.PasswordHash, "password-1")

	second, err := svc.Create(ctx, CreateAdminRequest{Email: "rev@example.com", Name: "Rev Two", Password: "password-2", Role: "super_admin", AccountStatus: "active"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Rev Two", second.Name)
	assert.Equal(t, enums.AdminRoleSuperAdmin, second.Role)

	_, err = svc.Authenticate(ctx, "rev@example.com", "password-2")
	require.NoError(t, err, "password hash is replaced on upsert")

	third, err := svc.Create(ctx, CreateAdminRequest{Email: "rev@example.com", Name: "Rev Three", Password: "password-3", Role: "validator_admin"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
	assert.Equal(t, "Rev Three", third.Name)
	assert.Equal(t, enums.AdminAccountStatusActive, third.AccountStatus, "omitted status keeps the stored one")

	suspended, err := svc.Create(ctx, CreateAdminRequest{Email: "rev@example.com", Name: "Rev Three", Password: "password-3", Role: "validator_admin", AccountStatus: "suspended"})
	require.NoError(t, err)
	assert.Equal(t, enums.AdminAccountStatusSuspended, suspended.AccountStatus)

	_, err = svc.Create(ctx, CreateAdminRequest{Email: "x@example.com", Name: "X", Password: "password", Role: "owner"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestAuthenticate_GenericFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	createAdmin(t, svc, "active@example.com", "active")
	createAdmin(t, svc, "pending@example.com", "pending")
	suspended := createAdmin(t, svc, "suspended@example.com", "active")
	_, err := svc.UpdateStatus(ctx, suspended, enums.AdminAccountStatusSuspended)
	require.NoError(t, err)

	cases := []struct{ email, password string }{
		{"active@example.com", "wrong-pass"},
		{"missing@example.com", "s3cret-pass"},
		{"pending@example.com", "s3cret-pass"},
		{"suspended@example.com", "s3cret-pass"},
		{"", "s3cret-pass"},
	}
	for _, tc := range cases {
		_, err := svc.Authenticate(ctx, tc.email, tc.password)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, tc.email)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code(), tc.email)
		assert.Equal(t, invalidCredentialsMessage, typed.Message(), tc.email)
	}
}

func TestAuthenticate_RecordsLastLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	id := createAdmin(t, svc, "active@example.com", "active")

	admin, err := svc.Authenticate(ctx, " ACTIVE@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, id, admin.ID)

	stored, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.True(t, stored.LastLoginAt.Equal(fixed))
}

func TestListFiltersAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a := createAdmin(t, svc, "a@example.com", "active")
	createAdmin(t, svc, "b@example.com", "pending")

	active := enums.AdminAccountStatusActive
	rows, err := svc.List(ctx, ListFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a, rows[0].ID)

	role := enums.AdminRoleSuperAdmin
	rows, err = svc.List(ctx, ListFilter{Role: &role})
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, svc.Delete(ctx, a))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, a), pkgerrors.CodeNotFound))

	_, err = svc.UpdateStatus(ctx, uuid.New(), enums.AdminAccountStatusActive)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestActionsAuditTrail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	adminID := createAdmin(t, svc, "a@example.com", "active")
	other := uuid.New()

	require.NoError(t, svc.RecordAction(ctx, ActionInput{
		AdminID:     adminID,
		ActionType:  ActionSubmissionStatus,
		TargetType:  "submission",
		TargetID:    "sub-1",
		Description: "pending -> validated",
		IPAddress:   "10.0.0.1",
	}))
	require.NoError(t, svc.RecordAction(ctx, ActionInput{AdminID: other, ActionType: ActionQueueEnqueue}))

	rows, err := svc.ListActions(ctx, ActionFilter{AdminID: &adminID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].TargetID)
	assert.Equal(t, "sub-1", *rows[0].TargetID)
	assert.Nil(t, rows[0].UserAgent)

	rows, err = svc.ListActions(ctx, ActionFilter{ActionType: ActionQueueEnqueue})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	err = svc.RecordAction(ctx, ActionInput{ActionType: ActionAdminDelete})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
