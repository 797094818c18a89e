package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
)

// Comment is a discussion entry attached to a submission.
type Comment struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SubmissionID string           `gorm:"column:submission_id;type:text;not null;index" json:"submissionId"`
	AuthorEmail  string           `gorm:"column:author_email;type:text;not null" json:"authorEmail"`
	AuthorType   enums.AuthorType `gorm:"column:author_type;type:text;not null" json:"authorType"`
	Text         string           `gorm:"column:comment_text;type:text;not null" json:"text"`
	ParentID     *uuid.UUID       `gorm:"column:parent_comment_id;type:uuid" json:"parentCommentId,omitempty"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Comment) TableName() string {
	return "submission_comments"
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
