package enums

import "fmt"

// AdminRole scopes what an administrator may do.
type AdminRole string

const (
	AdminRoleSuperAdmin     AdminRole = "super_admin"
	AdminRoleValidatorAdmin AdminRole = "validator_admin"
)

var validAdminRoles = []AdminRole{
	AdminRoleSuperAdmin,
	AdminRoleValidatorAdmin,
}

func (r AdminRole) String() string {
	return string(r)
}

// IsValid reports whether the role is recognized.
func (r AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseAdminRole converts raw input into AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}

// AdminAccountStatus gates whether an admin may sign in.
type AdminAccountStatus string

const (
	AdminAccountStatusActive    AdminAccountStatus = "active"
	AdminAccountStatusPending   AdminAccountStatus = "pending"
	AdminAccountStatusSuspended AdminAccountStatus = "suspended"
)

var validAdminAccountStatuses = []AdminAccountStatus{
	AdminAccountStatusActive,
	AdminAccountStatusPending,
	AdminAccountStatusSuspended,
}

func (s AdminAccountStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s AdminAccountStatus) IsValid() bool {
	for _, candidate := range validAdminAccountStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAdminAccountStatus converts raw input into AdminAccountStatus.
func ParseAdminAccountStatus(value string) (AdminAccountStatus, error) {
	for _, candidate := range validAdminAccountStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin account status %q", value)
}
