package auth

import (
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminTokenPayload captures the data available when minting an admin JWT.
type AdminTokenPayload struct {
	AdminID uuid.UUID
	Email   string
	Role    enums.AdminRole
}

// AdminClaims represents the typed JWT issued to signed-in admins.
type AdminClaims struct {
	AdminID uuid.UUID       `json:"admin_id"`
	Email   string          `json:"email"`
	Role    enums.AdminRole `json:"role"`
	jwt.RegisteredClaims
}
