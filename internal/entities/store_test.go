package entities

import (
	"context"
	"testing"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	return NewRegistry(repo.NewBase(conn, db.RetryPolicy{Attempts: 1})), conn
}

func TestStore_CreateAssignsCompositeID(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	width, height := 640, 480
	img := &models.Image{Width: &width, Height: &height}
	img.SubmissionID = "sub-1"
	img.OwnerEmail = "ada@example.com"
	img.FileName = "cat.png"
	require.NoError(t, reg.Images.Create(ctx, img))
	assert.Equal(t, "img_sub-1", img.ID)

	found, err := reg.Images.GetBySubmissionID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "img_sub-1", found.ID)
	require.NotNil(t, found.Width)
	assert.Equal(t, 640, *found.Width)

	_, err = reg.Images.GetBySubmissionID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteScopedByOwner(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	doc := &models.WebData{Extension: "pdf"}
	doc.SubmissionID = "sub-2"
	doc.OwnerEmail = "ada@example.com"
	doc.FileName = "paper.pdf"
	require.NoError(t, reg.Documents.Create(ctx, doc))

	deleted, err := reg.Documents.Delete(ctx, doc.ID, "mallory@example.com")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = reg.Documents.Delete(ctx, doc.ID, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, deleted)

	rows, err := reg.Documents.ListByOwner(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRegistry_FanoutByFileType(t *testing.T) {
	ctx := context.Background()
	reg, conn := newTestRegistry(t)

	seconds := 12.5
	cases := []struct {
		fileType enums.FileType
		fileName string
		table    string
		wantID   string
	}{
		{enums.FileTypeImage, "a.PNG", "images", "img_s-image"},
		{enums.FileTypeVideo, "b.mp4", "videos", "vid_s-video"},
		{enums.FileTypeAudio, "c.wav", "audio_files", "aud_s-audio"},
		{enums.FileTypeDocument, "Report.Final.PDF", "web_data", "doc_s-document"},
	}
	for _, tc := range cases {
		t.Run(string(tc.fileType), func(t *testing.T) {
			sub := &models.Submission{
				ID:         "s-" + string(tc.fileType),
				OwnerEmail: "ada@example.com",
				FileName:   tc.fileName,
				FileType:   tc.fileType,
				FileSize:   10,
			}
			target, err := reg.For(tc.fileType)
			require.NoError(t, err)
			require.NoError(t, target.CreateFromSubmission(ctx, conn, sub, Metadata{DurationSeconds: &seconds}))

			var ids []string
			require.NoError(t, conn.Table(tc.table).Where("submission_id = ?", sub.ID).Pluck("id", &ids).Error)
			assert.Equal(t, []string{tc.wantID}, ids)

			deleted, err := target.DeleteBySubmission(ctx, conn, sub.ID, sub.OwnerEmail)
			require.NoError(t, err)
			assert.True(t, deleted)
		})
	}

	_, err := reg.For(enums.FileType("spreadsheet"))
	assert.Error(t, err)
}

func TestRegistry_DocumentExtension(t *testing.T) {
	ctx := context.Background()
	reg, conn := newTestRegistry(t)

	target, err := reg.For(enums.FileTypeDocument)
	require.NoError(t, err)
	sub := &models.Submission{ID: "doc-1", OwnerEmail: "ada@example.com", FileName: "Report.Final.PDF", FileType: enums.FileTypeDocument}
	require.NoError(t, target.CreateFromSubmission(ctx, conn, sub, Metadata{}))

	row, err := reg.Documents.GetBySubmissionID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "pdf", row.Extension)
}

func TestService_MapsErrors(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)
	svc, err := NewService(reg)
	require.NoError(t, err)

	rows, err := svc.ListByOwner(ctx, KindAudio, "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.AudioFile{}, rows)

	_, err = svc.ListByOwner(ctx, KindAudio, " ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.GetBySubmissionID(ctx, KindVideos, "missing")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.Delete(ctx, KindImages, "img_missing", "ada@example.com")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.ListByOwner(ctx, Kind("spreadsheets"), "ada@example.com")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestService_OwnerEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	reg, conn := newTestRegistry(t)
	svc, err := NewService(reg)
	require.NoError(t, err)

	target, err := reg.For(enums.FileTypeImage)
	require.NoError(t, err)
	sub := &models.Submission{ID: "mixed-1", OwnerEmail: "ada@x.com", FileName: "cat.png", FileType: enums.FileTypeImage}
	require.NoError(t, target.CreateFromSubmission(ctx, conn, sub, Metadata{}))

	rows, err := svc.ListByOwner(ctx, KindImages, " Ada@X.com ")
	require.NoError(t, err)
	images, ok := rows.([]models.Image)
	require.True(t, ok)
	require.Len(t, images, 1)
	assert.Equal(t, "img_mixed-1", images[0].ID)

	require.NoError(t, svc.Delete(ctx, KindImages, "img_mixed-1", "ADA@x.COM"))

	_, err = svc.GetBySubmissionID(ctx, KindImages, "mixed-1")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("Images")
	require.NoError(t, err)
	assert.Equal(t, KindImages, kind)

	_, err = ParseKind("pictures")
	assert.Error(t, err)
}
