package controllers

import (
	"net/http"

	"github.com/angelmondragon/reviewhub-backend/api/responses"
	"github.com/angelmondragon/reviewhub-backend/api/validators"
	"github.com/angelmondragon/reviewhub-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
)

// AdminAuthLogin exchanges admin credentials for a bearer token.
func AdminAuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		responses.WriteSuccess(w, result)
	}
}
