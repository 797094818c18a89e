package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/reviewhub-backend/api/middleware"
	"github.com/angelmondragon/reviewhub-backend/api/responses"
	"github.com/angelmondragon/reviewhub-backend/api/validators"
	"github.com/angelmondragon/reviewhub-backend/internal/admins"
	"github.com/angelmondragon/reviewhub-backend/internal/validationqueue"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
)

// queueSelection accepts a single id or a bulk list.
type queueSelection struct {
	SubmissionID  string   `json:"submissionId,omitempty"`
	SubmissionIDs []string `json:"submissionIds,omitempty" validate:"omitempty,max=200,dive,required"`
}

func (q queueSelection) bulk() bool {
	return len(q.SubmissionIDs) > 0
}

func (q queueSelection) validate() error {
	single := strings.TrimSpace(q.SubmissionID) != ""
	if single == q.bulk() {
		return pkgerrors.New(pkgerrors.CodeValidation, "provide exactly one of submissionId or submissionIds")
	}
	return nil
}

func (q queueSelection) target() string {
	if q.bulk() {
		return strings.Join(q.SubmissionIDs, ",")
	}
	return q.SubmissionID
}

type queueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// AdminListQueue returns the caller's open queue entries oldest first.
func AdminListQueue(svc validationqueue.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.AdminFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		rows, err := svc.List(r.Context(), identity.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminEnqueue adds one or many submissions to the caller's queue.
func AdminEnqueue(svc validationqueue.Service, audit admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.AdminFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		var body queueSelection
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := body.validate(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var (
			result any
			err    error
		)
		if body.bulk() {
			result, err = svc.EnqueueBulk(r.Context(), body.SubmissionIDs, identity.Email)
		} else {
			result, err = svc.Enqueue(r.Context(), body.SubmissionID, identity.Email)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordAction(r, audit, logg, admins.ActionQueueEnqueue, "submission", body.target(), "added to validation queue")
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminUpdateQueueStatus moves one of the caller's queue entries.
func AdminUpdateQueueStatus(svc validationqueue.Service, audit admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.AdminFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		submissionID, err := pathParam(r, "submissionId", "submission id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body queueStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseQueueStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid queue status"))
			return
		}
		if err := svc.UpdateStatus(r.Context(), submissionID, identity.Email, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordAction(r, audit, logg, admins.ActionQueueUpdate, "submission", submissionID, "queue status set to "+string(status))
		responses.WriteSuccess(w, map[string]string{"submissionId": submissionID, "status": string(status)})
	}
}

// AdminDequeue completes one or many of the caller's queue entries.
func AdminDequeue(svc validationqueue.Service, audit admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.AdminFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		var body queueSelection
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := body.validate(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var err error
		if body.bulk() {
			err = svc.DequeueBulk(r.Context(), body.SubmissionIDs, identity.Email)
		} else {
			err = svc.Dequeue(r.Context(), body.SubmissionID, identity.Email)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordAction(r, audit, logg, admins.ActionQueueDequeue, "submission", body.target(), "removed from validation queue")
		responses.WriteDeleted(w)
	}
}
