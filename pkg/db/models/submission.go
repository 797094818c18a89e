package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
)

// Submission is a single uploaded file moving through the review workflow.
type Submission struct {
	ID          string                 `gorm:"column:id;type:text;primaryKey" json:"id"`
	OwnerEmail  string                 `gorm:"column:owner_email;type:text;not null;index" json:"userEmail"`
	FileName    string                 `gorm:"column:file_name;type:text;not null" json:"fileName"`
	FileType    enums.FileType         `gorm:"column:file_type;type:text;not null" json:"fileType"`
	FileSize    int64                  `gorm:"column:file_size;not null" json:"fileSize"`
	Status      enums.SubmissionStatus `gorm:"column:status;type:text;not null;index" json:"status"`
	PreviewData *string                `gorm:"column:preview_data;type:text" json:"previewData,omitempty"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (s *Submission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = enums.SubmissionStatusPending
	}
	return nil
}

// SubmissionStatusChange records one applied status transition.
type SubmissionStatusChange struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SubmissionID string                 `gorm:"column:submission_id;type:text;not null;index" json:"submissionId"`
	OldStatus    enums.SubmissionStatus `gorm:"column:old_status;type:text;not null" json:"oldStatus"`
	NewStatus    enums.SubmissionStatus `gorm:"column:new_status;type:text;not null" json:"newStatus"`
	ChangedBy    string                 `gorm:"column:changed_by;type:text;not null;default:''" json:"changedBy"`
	Reason       *string                `gorm:"column:reason;type:text" json:"reason,omitempty"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (SubmissionStatusChange) TableName() string {
	return "submission_status_history"
}

func (c *SubmissionStatusChange) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
