package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment methods accepted for rent collection.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// Payment records one rent payment by a member. ReceiptNumber is generated,
// GatewayRef holds the charge id when the card gateway was used.
type Payment struct {
	gorm.Model
	MemberID      uint    `gorm:"index;not null"`
	PropertyID    uint    `gorm:"index"`
	Amount        float64 `gorm:"not null"`
	Method        string  `gorm:"not null"`
	ReceiptNumber string  `gorm:"uniqueIndex"`
	GatewayRef    string
	PaidAt        time.Time
	CoversUntil   time.Time
}
