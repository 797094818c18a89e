package controllers

import (
	"net/http"

	"github.com/angelmondragon/reviewhub-backend/api/responses"
	"github.com/angelmondragon/reviewhub-backend/api/validators"
	"github.com/angelmondragon/reviewhub-backend/internal/comments"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
)

type commentListResponse struct {
	Items []models.Comment `json:"items"`
	Count int              `json:"count"`
}

// ListComments returns a submission's comments oldest first.
func ListComments(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := submissionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, commentListResponse{Items: rows, Count: len(rows)})
	}
}

// CreateComment adds a comment, or a reply when parentCommentId is set.
func CreateComment(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := submissionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input comments.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.SubmissionID = id
		comment, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}

// DeleteComment removes a comment written by authorEmail.
func DeleteComment(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "commentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		author, err := validators.RequireQuery(r, "authorEmail")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id, author); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDeleted(w)
	}
}
