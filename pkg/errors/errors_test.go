package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataTable(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		retryable bool
		expose    bool
		details   bool
	}{
		{CodeValidation, http.StatusBadRequest, false, true, true},
		{CodeUnauthorized, http.StatusUnauthorized, false, true, false},
		{CodeForbidden, http.StatusForbidden, false, true, false},
		{CodeNotFound, http.StatusNotFound, false, true, false},
		{CodeConflict, http.StatusConflict, false, true, false},
		{CodeStateConflict, http.StatusUnprocessableEntity, false, true, true},
		{CodeRateLimit, http.StatusTooManyRequests, false, true, false},
		{CodeInternal, http.StatusInternalServerError, true, false, false},
		{CodeDependency, http.StatusServiceUnavailable, true, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.retryable, meta.Retryable)
			assert.Equal(t, tt.expose, meta.ExposeMessage)
			assert.Equal(t, tt.details, meta.DetailsAllowed)
			assert.NotEmpty(t, meta.PublicMessage)
		})
	}

	assert.Equal(t, MetadataFor(CodeInternal), MetadataFor("SOMETHING_UNKNOWN"))
}

func TestErrorMessageAndCause(t *testing.T) {
	base := Newf(CodeValidation, "missing %s", "userEmail")
	assert.Equal(t, CodeValidation, base.Code())
	assert.Equal(t, "missing userEmail", base.Message())
	assert.Equal(t, "VALIDATION_ERROR: missing userEmail", base.Error())
	assert.Nil(t, base.Details())

	base.WithDetails(map[string]string{"userEmail": "is required"})
	assert.NotNil(t, base.Details())

	cause := stdErrors.New("connection refused")
	wrapped := Wrap(CodeDependency, cause, "insert submission")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: insert submission: connection refused", wrapped.Error())

	assert.Nil(t, Wrap(CodeConflict, nil, "dup").Unwrap())

	var nilErr *Error
	assert.Equal(t, CodeInternal, nilErr.Code())
	assert.Empty(t, nilErr.Error())
	assert.Nil(t, nilErr.WithDetails("x"))
}

func TestAsAndIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "submission not found"))
	require.NotNil(t, As(err))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(stdErrors.New("plain"), CodeInternal))
	assert.Nil(t, As(nil))

	outer := Wrap(CodeDependency, New(CodeNotFound, "inner"), "outer")
	assert.True(t, IsCode(outer, CodeDependency), "the outermost code wins")
}

func TestDumpExtractsPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "submission_comments" does not exist`, TableName: "submission_comments"}
	dump := Dump(Wrap(CodeDependency, fmt.Errorf("list comments: %w", pgErr), "list comments"))

	assert.Equal(t, CodeDependency, dump.Code)
	require.NotNil(t, dump.Postgres)
	assert.Equal(t, "42P01", dump.Postgres.SQLState)
	assert.Equal(t, "submission_comments", dump.Postgres.Table)
	assert.Len(t, dump.Chain, 3)
	assert.Equal(t, "42P01", dump.LogFields()["pg_sqlstate"])

	plain := Dump(stdErrors.New("boom"))
	assert.Nil(t, plain.Postgres)
	assert.NotContains(t, plain.LogFields(), "pg_sqlstate")
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
