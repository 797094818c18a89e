package controllers

import (
	"net/http"

	"github.com/angelmondragon/reviewhub-backend/api/middleware"
	"github.com/angelmondragon/reviewhub-backend/internal/admins"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
)

// recordAction appends to the admin audit trail. The audited operation has
// already succeeded, so failures are logged and not returned to the caller.
func recordAction(r *http.Request, audit admins.Service, logg *logger.Logger, actionType, targetType, targetID, description string) {
	if audit == nil {
		return
	}
	identity, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		return
	}
	err := audit.RecordAction(r.Context(), admins.ActionInput{
		AdminID:     identity.ID,
		ActionType:  actionType,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		IPAddress:   middleware.ClientIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil && logg != nil {
		ctx := logg.WithFields(r.Context(), map[string]any{"action_type": actionType, "target_id": targetID})
		logg.Error(ctx, "admin.audit.failed", err)
	}
}
