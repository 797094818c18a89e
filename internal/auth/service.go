package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/reviewhub-backend/pkg/errors"
	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"

	pkgAuth "github.com/angelmondragon/reviewhub-backend/pkg/auth"
)

// Service defines the behavior needed by the admin login controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.Admin, error)
}

type service struct {
	admins  authenticator
	jwtCfg  config.JWTConfig
	metrics *metrics.ReviewMetrics
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Admins    authenticator
	JWTConfig config.JWTConfig
	Metrics   *metrics.ReviewMetrics
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Admins == nil {
		return nil, fmt.Errorf("admin authenticator is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &service{
		admins:  params.Admins,
		jwtCfg:  params.JWTConfig,
		metrics: params.Metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.admins.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			s.metrics.Login("failure")
		}
		return nil, err
	}

	token, expiresAt, err := pkgAuth.MintAdminToken(s.jwtCfg, s.now(), pkgAuth.AdminTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	s.metrics.Login("success")
	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Admin:       admin,
	}, nil
}
