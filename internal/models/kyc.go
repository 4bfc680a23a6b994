package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// KYCVerification is one review cycle for a merchant. A rejected merchant
// resubmits by creating a new record; earlier cycles are kept for audit.
type KYCVerification struct {
	gorm.Model
	MerchantID  uint           `gorm:"index;not null"`
	Documents   pq.StringArray `gorm:"type:text[]"`
	Status      ApprovalStatus `gorm:"default:'Pending'"`
	SubmittedAt time.Time
	AdminNote   string
	RejectionReason string
}
