package submissions

import (
	"github.com/angelmondragon/reviewhub-backend/internal/entities"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
)

// CreateInput is the payload for POST /api/submissions.
type CreateInput struct {
	UserEmail   string            `json:"userEmail" validate:"required,email"`
	UserName    *string           `json:"userName,omitempty" validate:"omitempty,max=200"`
	FileName    string            `json:"fileName" validate:"required,max=512"`
	FileType    string            `json:"fileType" validate:"required"`
	FileSize    int64             `json:"fileSize" validate:"gte=0"`
	PreviewData *string           `json:"previewData,omitempty"`
	Metadata    entities.Metadata `json:"metadata"`
}

// UpdateStatusInput is the payload for PATCH /api/admin/submissions/{id}/status.
type UpdateStatusInput struct {
	Status string  `json:"status" validate:"required"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// UpdateOptions annotates an applied transition.
type UpdateOptions struct {
	ChangedBy string
	Reason    *string
}

// Stats counts submissions per status.
type Stats struct {
	Total    int64                            `json:"total"`
	ByStatus map[enums.SubmissionStatus]int64 `json:"byStatus"`
}

// ListResult is a status group page. NextCursor is empty on the last page.
type ListResult struct {
	Group      enums.StatusGroup   `json:"group"`
	Items      []models.Submission `json:"items"`
	NextCursor string              `json:"nextCursor,omitempty"`
}
