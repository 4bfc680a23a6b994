package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles resolved once at login and carried in the JWT claims. Handlers and
// middleware branch on these values as data, never on ad hoc checks.
const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
	RoleUser     = "user"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'user'"`
	BusinessName string
	Status       string `gorm:"default:'active'"`
	KYCStatus    ApprovalStatus `gorm:"default:'Pending'"`
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`
}
