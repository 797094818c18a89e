package controllers

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/reviewhub-backend/api/middleware"
	"github.com/angelmondragon/reviewhub-backend/api/responses"
	"github.com/angelmondragon/reviewhub-backend/api/validators"
	"github.com/angelmondragon/reviewhub-backend/internal/admins"
	"github.com/angelmondragon/reviewhub-backend/internal/submissions"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
)

// AdminListSubmissions returns one page of a status group of the review
// board. Follow nextCursor for the rest.
func AdminListSubmissions(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := enums.ParseStatusGroup(r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status must be pending, validated or rejected"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", defaultPageSize, 1, maxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListByStatus(r.Context(), group, limit, r.URL.Query().Get("cursor"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminSubmissionStats returns per-status counts.
func AdminSubmissionStats(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminUpdateSubmissionStatus applies a review transition on behalf of the calling admin.
func AdminUpdateSubmissionStatus(svc submissions.Service, audit admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := submissionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input submissions.UpdateStatusInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseSubmissionStatus(input.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSubmissionID(ctx, id)
		}
		identity, _ := middleware.AdminFromContext(ctx)
		sub, err := svc.UpdateStatus(ctx, id, status, submissions.UpdateOptions{
			ChangedBy: identity.Email,
			Reason:    input.Reason,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		recordAction(r, audit, logg, admins.ActionSubmissionStatus, "submission", id, fmt.Sprintf("status set to %s", status))
		responses.WriteSuccess(w, sub)
	}
}

// AdminSubmissionHistory returns the status changes of a submission oldest first.
func AdminSubmissionHistory(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := submissionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.History(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
