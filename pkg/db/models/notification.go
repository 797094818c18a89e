package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
)

// Notification stores in-app messages addressed to a recipient email.
type Notification struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RecipientEmail string                 `gorm:"column:recipient_email;type:text;not null;index" json:"recipientEmail"`
	Type           enums.NotificationType `gorm:"column:type;type:text;not null" json:"type"`
	Title          string                 `gorm:"column:title;type:text;not null" json:"title"`
	Message        string                 `gorm:"column:message;type:text;not null" json:"message"`
	IsRead         bool                   `gorm:"column:is_read;not null;default:false" json:"read"`
	ReadAt         *time.Time             `gorm:"column:read_at" json:"readAt,omitempty"`
	ActionURL      *string                `gorm:"column:action_url;type:text" json:"actionUrl,omitempty"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
