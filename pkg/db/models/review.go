package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
)

// ValidationQueueItem is one admin's claim on a submission. Entries for the
// same submission held by different admins are independent.
type ValidationQueueItem struct {
	SubmissionID string            `gorm:"column:submission_id;type:text;primaryKey" json:"submissionId"`
	AdminEmail   string            `gorm:"column:admin_email;type:text;primaryKey" json:"adminEmail"`
	Status       enums.QueueStatus `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ValidationQueueItem) TableName() string {
	return "validation_queue"
}

// Admin is a reviewer account.
type Admin struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email         string                   `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	Name          string                   `gorm:"column:name;type:text;not null" json:"name"`
	PasswordHash  string                   `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role          enums.AdminRole          `gorm:"column:role;type:text;not null" json:"role"`
	Country       *string                  `gorm:"column:country;type:text" json:"country,omitempty"`
	AccountStatus enums.AdminAccountStatus `gorm:"column:account_status;type:text;not null" json:"accountStatus"`
	LastLoginAt   *time.Time               `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AdminAction is an append-only audit entry.
type AdminAction struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AdminID     uuid.UUID `gorm:"column:admin_id;type:uuid;not null;index" json:"adminId"`
	ActionType  string    `gorm:"column:action_type;type:text;not null" json:"actionType"`
	TargetType  *string   `gorm:"column:target_type;type:text" json:"targetType,omitempty"`
	TargetID    *string   `gorm:"column:target_id;type:text" json:"targetId,omitempty"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	IPAddress   *string   `gorm:"column:ip_address;type:text" json:"ipAddress,omitempty"`
	UserAgent   *string   `gorm:"column:user_agent;type:text" json:"userAgent,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (a *AdminAction) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
