package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PaymentStatus is derived from a member's payment dates; the stored field is
// a display cache refreshed on every payment mutation.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentOverdue PaymentStatus = "Overdue"
	// PaymentNotApplicable marks members without a room; they carry no
	// payment obligation until assigned.
	PaymentNotApplicable PaymentStatus = "N/A"
)

type Member struct {
	gorm.Model
	MerchantID uint   `gorm:"index;not null"`
	PropertyID *uint  `gorm:"index"`
	RoomID     *uint  `gorm:"index"` // nil = unassigned roster entry
	Name       string `gorm:"not null"`
	Phone      string `gorm:"not null"`
	Email      string

	GuardianName     string
	GuardianPhone    string
	GuardianRelation string

	MonthlyRent float64
	Deposit     float64
	JoiningDate time.Time

	PaymentStatus   PaymentStatus `gorm:"default:'N/A'"`
	LastPaidDate    *time.Time
	NextPaymentDate *time.Time

	Documents pq.StringArray `gorm:"type:text[]"`
	Active    bool           `gorm:"default:true"`
}

// Assigned reports whether the member currently holds a bed.
func (m *Member) Assigned() bool {
	return m.RoomID != nil
}
