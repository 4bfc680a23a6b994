package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReviewProperty = "review:property"
	PermissionReviewKYC      = "review:kyc"
	PermissionUserRead       = "user:read"

	// Merchant permissions
	PermissionPropertyWrite = "property:write"
	PermissionRoomWrite     = "room:write"
	PermissionMemberWrite   = "member:write"
	PermissionPaymentWrite  = "payment:write"
	PermissionKYCSubmit     = "kyc:submit"

	// Shared read permissions
	PermissionPropertyRead = "property:read"
	PermissionBookingRead  = "booking:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Phone        string   `json:"phone"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReviewProperty,
			PermissionReviewKYC,
			PermissionUserRead,
			PermissionPropertyRead,
			PermissionBookingRead,
		}
	case RoleMerchant:
		return []string{
			PermissionPropertyWrite,
			PermissionRoomWrite,
			PermissionMemberWrite,
			PermissionPaymentWrite,
			PermissionKYCSubmit,
			PermissionPropertyRead,
			PermissionBookingRead,
		}
	case RoleUser:
		return []string{
			PermissionPropertyRead,
		}
	default:
		return []string{}
	}
}
