package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/reviewhub-backend/api/middleware"
	"github.com/angelmondragon/reviewhub-backend/api/responses"
	"github.com/angelmondragon/reviewhub-backend/api/validators"
	"github.com/angelmondragon/reviewhub-backend/internal/admins"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
)

// AdminListAdmins lists admin accounts, optionally filtered by role and status.
func AdminListAdmins(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter admins.ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			role, err := enums.ParseAdminRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
				return
			}
			filter.Role = &role
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseAdminAccountStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filter.Status = &status
		}
		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminCreateAdmin creates or refreshes an admin account.
func AdminCreateAdmin(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admins.CreateAdminRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Create(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordAction(r, svc, logg, admins.ActionAdminCreate, "admin", admin.ID.String(), "created admin "+admin.Email)
		responses.WriteSuccessStatus(w, http.StatusCreated, admin)
	}
}

// AdminUpdateAdminStatus activates, suspends or parks an admin account.
func AdminUpdateAdminStatus(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req admins.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseAdminAccountStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		if err := guardSelf(r, id, "change your own status"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordAction(r, svc, logg, admins.ActionAdminStatus, "admin", id.String(), "status set to "+string(status))
		responses.WriteSuccess(w, admin)
	}
}

// AdminDeleteAdmin removes an admin account.
func AdminDeleteAdmin(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := guardSelf(r, id, "delete your own account"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordAction(r, svc, logg, admins.ActionAdminDelete, "admin", id.String(), "deleted admin")
		responses.WriteDeleted(w)
	}
}

// AdminListActions pages through the audit trail.
func AdminListActions(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := admins.ActionFilter{ActionType: strings.TrimSpace(r.URL.Query().Get("actionType"))}
		if raw := strings.TrimSpace(r.URL.Query().Get("adminId")); raw != "" {
			adminID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid adminId"))
				return
			}
			filter.AdminID = &adminID
		}
		limit, err := validators.ParseQueryInt(r, "limit", defaultPageSize, 1, maxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Limit = limit
		filter.Offset = offset

		rows, err := svc.ListActions(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func guardSelf(r *http.Request, target uuid.UUID, action string) error {
	if identity, ok := middleware.AdminFromContext(r.Context()); ok && identity.ID == target {
		return pkgerrors.New(pkgerrors.CodeForbidden, "you cannot "+action)
	}
	return nil
}
