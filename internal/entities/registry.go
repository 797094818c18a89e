package entities

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"gorm.io/gorm"
)

// Kind names an entity collection in the HTTP surface.
type Kind string

const (
	KindImages    Kind = "images"
	KindVideos    Kind = "videos"
	KindAudio     Kind = "audio"
	KindDocuments Kind = "documents"
)

// ParseKind converts a route segment into a Kind.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(value)); k {
	case KindImages, KindVideos, KindAudio, KindDocuments:
		return k, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", value)
}

// Metadata carries the optional per-type attributes supplied at submission time.
type Metadata struct {
	Width           *int     `json:"width,omitempty" validate:"omitempty,min=0"`
	Height          *int     `json:"height,omitempty" validate:"omitempty,min=0"`
	DurationSeconds *float64 `json:"durationSeconds,omitempty" validate:"omitempty,min=0"`
}

// Fanout is the part of an entity store the submission workflow drives.
type Fanout interface {
	CreateFromSubmission(ctx context.Context, tx *gorm.DB, sub *models.Submission, meta Metadata) error
	DeleteBySubmission(ctx context.Context, tx *gorm.DB, submissionID, ownerEmail string) (bool, error)
}

type kindStore interface {
	Fanout
	listByOwner(ctx context.Context, ownerEmail string) (any, error)
	getBySubmission(ctx context.Context, submissionID string) (any, error)
	delete(ctx context.Context, id, ownerEmail string) (bool, error)
}

// binding adapts a typed Store to the kind-agnostic interfaces.
type binding[T any, PT interface {
	*T
	models.Entity
}] struct {
	store *Store[T, PT]
	build func(sub *models.Submission, meta Metadata) PT
}

func (b binding[T, PT]) CreateFromSubmission(ctx context.Context, tx *gorm.DB, sub *models.Submission, meta Metadata) error {
	entity := b.build(sub, meta)
	*entity.Base() = models.MediaEntity{
		SubmissionID: sub.ID,
		OwnerEmail:   sub.OwnerEmail,
		FileName:     sub.FileName,
		FileSize:     sub.FileSize,
		PreviewData:  sub.PreviewData,
	}
	return b.store.WithTx(tx).Create(ctx, entity)
}

func (b binding[T, PT]) DeleteBySubmission(ctx context.Context, tx *gorm.DB, submissionID, ownerEmail string) (bool, error) {
	return b.store.WithTx(tx).DeleteBySubmission(ctx, submissionID, ownerEmail)
}

func (b binding[T, PT]) listByOwner(ctx context.Context, ownerEmail string) (any, error) {
	rows, err := b.store.ListByOwner(ctx, ownerEmail)
	if rows == nil {
		rows = []T{}
	}
	return rows, err
}

func (b binding[T, PT]) getBySubmission(ctx context.Context, submissionID string) (any, error) {
	return b.store.GetBySubmissionID(ctx, submissionID)
}

func (b binding[T, PT]) delete(ctx context.Context, id, ownerEmail string) (bool, error) {
	return b.store.Delete(ctx, id, ownerEmail)
}

// Registry selects the entity store for a file type.
type Registry struct {
	Images    *Store[models.Image, *models.Image]
	Videos    *Store[models.Video, *models.Video]
	Audio     *Store[models.AudioFile, *models.AudioFile]
	Documents *Store[models.WebData, *models.WebData]

	byKind     map[Kind]kindStore
	byFileType map[enums.FileType]Kind
}

// NewRegistry builds the four entity stores over base.
func NewRegistry(base repo.Base) *Registry {
	r := &Registry{
		Images:    NewStore[models.Image](base, "img"),
		Videos:    NewStore[models.Video](base, "vid"),
		Audio:     NewStore[models.AudioFile](base, "aud"),
		Documents: NewStore[models.WebData](base, "doc"),
	}
	r.byKind = map[Kind]kindStore{
		KindImages: binding[models.Image, *models.Image]{store: r.Images, build: func(_ *models.Submission, meta Metadata) *models.Image {
			return &models.Image{Width: meta.Width, Height: meta.Height}
		}},
		KindVideos: binding[models.Video, *models.Video]{store: r.Videos, build: func(_ *models.Submission, meta Metadata) *models.Video {
			return &models.Video{DurationSeconds: meta.DurationSeconds}
		}},
		KindAudio: binding[models.AudioFile, *models.AudioFile]{store: r.Audio, build: func(_ *models.Submission, meta Metadata) *models.AudioFile {
			return &models.AudioFile{DurationSeconds: meta.DurationSeconds}
		}},
		KindDocuments: binding[models.WebData, *models.WebData]{store: r.Documents, build: func(sub *models.Submission, _ Metadata) *models.WebData {
			return &models.WebData{Extension: extensionOf(sub.FileName)}
		}},
	}
	r.byFileType = map[enums.FileType]Kind{
		enums.FileTypeImage:    KindImages,
		enums.FileTypeVideo:    KindVideos,
		enums.FileTypeAudio:    KindAudio,
		enums.FileTypeDocument: KindDocuments,
	}
	return r
}

// For returns the fan-out target for a submission's file type.
func (r *Registry) For(fileType enums.FileType) (Fanout, error) {
	kind, ok := r.byFileType[fileType]
	if !ok {
		return nil, fmt.Errorf("no entity store for file type %q", fileType)
	}
	return r.byKind[kind], nil
}

func (r *Registry) kind(kind Kind) (kindStore, error) {
	store, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	return store, nil
}

func extensionOf(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}
