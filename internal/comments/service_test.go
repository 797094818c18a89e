package comments

import (
	"context"
	"testing"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(repo.NewBase(conn, db.RetryPolicy{Attempts: 1})))
	require.NoError(t, err)
	return svc, conn
}

func TestCreateListCount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	root, err := svc.Create(ctx, CreateInput{SubmissionID: "sub-1", AuthorEmail: "Ada@example.com", AuthorType: "user", Text: " first "})
	require.NoError(t, err)
	assert.Equal(t, "first", root.Text)
	assert.Equal(t, enums.AuthorTypeUser, root.AuthorType)

	reply, err := svc.Create(ctx, CreateInput{SubmissionID: "sub-1", AuthorEmail: "rev@example.com", AuthorType: "admin", Text: "reply", ParentID: &root.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{SubmissionID: "sub-2", AuthorEmail: "rev@example.com", AuthorType: "admin", Text: "x", ParentID: &root.ID})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "parent must share the submission")

	missing := uuid.New()
	_, err = svc.Create(ctx, CreateInput{SubmissionID: "sub-1", AuthorEmail: "rev@example.com", AuthorType: "admin", Text: "x", ParentID: &missing})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	rows, err := svc.List(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, root.ID, rows[0].ID)
	assert.Equal(t, reply.ID, rows[1].ID)

	count, err := svc.Count(ctx, "sub-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = svc.Create(ctx, CreateInput{SubmissionID: "sub-1", AuthorEmail: "a@example.com", AuthorType: "robot", Text: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteScopedByAuthor(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	comment, err := svc.Create(ctx, CreateInput{SubmissionID: "sub-1", AuthorEmail: "ada@example.com", AuthorType: "user", Text: "hi"})
	require.NoError(t, err)

	err = svc.Delete(ctx, comment.ID, "bob@example.com")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	require.NoError(t, svc.Delete(ctx, comment.ID, "ADA@example.com"))
}

func TestMissingTable(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	require.NoError(t, conn.Migrator().DropTable("submission_comments"))

	rows, err := svc.List(ctx, "sub-1")
	require.NoError(t, err)
	assert.Empty(t, rows)

	count, err := svc.Count(ctx, "sub-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.Create(ctx, CreateInput{SubmissionID: "sub-1", AuthorEmail: "ada@example.com", AuthorType: "user", Text: "hi"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Equal(t, storageMissingMessage, typed.Message())

	err = svc.Delete(ctx, uuid.New(), "ada@example.com")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}
