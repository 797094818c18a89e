package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=super_admin validator_admin"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
	var body loginBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, "a@example.com", body.Email)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","password":"pw","extra":1}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyFieldMessages(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope","role":"root"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "is required", details["password"])
	assert.Equal(t, "must be one of: super_admin validator_admin", details["role"])
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest("GET", "/?userEmail=%20a@example.com%20&limit=500&unreadOnly=true&bad=x", nil)

	value, err := RequireQuery(req, "userEmail")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", value)

	_, err = RequireQuery(req, "missing")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseQueryInt(req, "limit", 25, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	limit, err := ParseQueryInt(req, "absent", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 25, limit)

	unread, err := ParseQueryBool(req, "unreadOnly")
	require.NoError(t, err)
	assert.True(t, unread)
	_, err = ParseQueryBool(req, "bad")
	assert.Error(t, err)
}

func TestDecodeJSONBodyRejectsEmptyAndTrailingData(t *testing.T) {
	var body loginBody
	err := DecodeJSONBody(httptest.NewRequest("POST", "/", strings.NewReader("")), &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","password":"pw"} {"email":"b@example.com"}`))
	err = DecodeJSONBody(req, &body)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyRejectsOversizedBody(t *testing.T) {
	huge := `{"email":"a@example.com","password":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	var body loginBody
	err := DecodeJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(huge)), &body)
	require.Error(t, err)
	assert.Contains(t, pkgerrors.As(err).Message(), "exceeds")
}
