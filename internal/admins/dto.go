package admins

import (
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateAdminRequest is the payload for POST /api/admin/admins.
type CreateAdminRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Name          string  `json:"name" validate:"required,max=200"`
	Password      string  `json:"password" validate:"required,min=8,max=128"`
	Role          string  `json:"role" validate:"required,oneof=super_admin validator_admin"`
	Country       *string `json:"country,omitempty" validate:"omitempty,max=100"`
	AccountStatus string  `json:"accountStatus,omitempty" validate:"omitempty,oneof=active pending suspended"`
}

// UpdateStatusRequest is the payload for PATCH /api/admin/admins/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending suspended"`
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	Role   *enums.AdminRole
	Status *enums.AdminAccountStatus
}

// ActionFilter narrows the audit trail listing.
type ActionFilter struct {
	AdminID    *uuid.UUID
	ActionType string
	Limit      int
	Offset     int
}

// ActionInput describes one audited admin operation.
type ActionInput struct {
	AdminID     uuid.UUID
	ActionType  string
	TargetType  string
	TargetID    string
	Description string
	IPAddress   string
	UserAgent   string
}

// Audited action types.
const (
	ActionSubmissionStatus = "submission_status_update"
	ActionQueueEnqueue     = "queue_enqueue"
	ActionQueueUpdate      = "queue_status_update"
	ActionQueueDequeue     = "queue_dequeue"
	ActionUserDelete       = "user_delete"
	ActionNotificationSend = "notification_send"
	ActionAdminCreate      = "admin_create"
	ActionAdminStatus      = "admin_status_update"
	ActionAdminDelete      = "admin_delete"
)
