package auth

import (
	"context"
	"testing"

	pkgAuth "github.com/angelmondragon/reviewhub-backend/pkg/auth"
	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type fakeAuthenticator struct {
	admin *models.Admin
	err   error
}

func (f fakeAuthenticator) Authenticate(context.Context, string, string) (*models.Admin, error) {
	return f.admin, f.err
}

var testJWT = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "reviewhub",
	ExpirationMinutes: 30,
}

func TestServiceLoginMintsAdminToken(t *testing.T) {
	admin := &models.Admin{
		ID:    uuid.New(),
		Email: "rev@example.com",
		Role:  enums.AdminRoleValidatorAdmin,
	}
	svc, err := NewService(ServiceParams{Admins: fakeAuthenticator{admin: admin}, JWTConfig: testJWT})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{Email: admin.Email, Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAdminToken(testJWT, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("expected admin id %s, got %s", admin.ID, claims.AdminID)
	}
	if claims.Role != enums.AdminRoleValidatorAdmin {
		t.Fatalf("expected validator role claim, got %s", claims.Role)
	}
	if resp.ExpiresAt.IsZero() {
		t.Fatal("expected expiry to be set")
	}
}

func TestServiceLoginCountsFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewReviewMetrics(reg)
	svc, err := NewService(ServiceParams{
		Admins:    fakeAuthenticator{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")},
		JWTConfig: testJWT,
		Metrics:   m,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "x@example.com", Password: "bad"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if got := loginCount(t, reg, "failure"); got != 1 {
		t.Fatalf("expected one failed login, got %v", got)
	}
}

func loginCount(t *testing.T, reg *prometheus.Registry, result string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "reviewhub_admin_logins_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if hasLabel(metric, "result", result) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func hasLabel(metric *dto.Metric, name, value string) bool {
	for _, label := range metric.GetLabel() {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

func TestNewServiceRequiresSecret(t *testing.T) {
	if _, err := NewService(ServiceParams{Admins: fakeAuthenticator{}}); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}
