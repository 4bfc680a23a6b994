package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ApprovalStatus is shared by the property and KYC review workflows.
// Approved and Rejected are terminal for a submission; re-entering Pending
// requires a new submission.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
)

// Property types mirror the listing categories merchants pick from.
const (
	PropertyTypeBoys  = "Boys"
	PropertyTypeGirls = "Girls"
	PropertyTypeMixed = "Mixed"
)

type Property struct {
	gorm.Model
	MerchantID uint   `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	Location   string `gorm:"not null"`
	Address    string `gorm:"not null"`
	Type       string `gorm:"default:'Mixed'"`
	Amenities  pq.StringArray `gorm:"type:text[]"`
	MinPrice   float64
	MaxPrice   float64

	// Derived occupancy aggregates. Recomputed from the property's rooms on
	// every occupancy mutation, never edited directly.
	TotalRooms     int     `gorm:"default:0"`
	TotalBeds      int     `gorm:"default:0"`
	OccupiedRooms  int     `gorm:"default:0"`
	OccupiedBeds   int     `gorm:"default:0"`
	MonthlyRevenue float64 `gorm:"default:0"`

	Status          ApprovalStatus `gorm:"default:'Pending'"`
	RejectionReason string
	ReviewNote      string
	Hidden          bool `gorm:"default:false"`
}

// OccupancyRate returns occupied beds as a percentage of total beds.
func (p *Property) OccupancyRate() float64 {
	if p.TotalBeds == 0 {
		return 0
	}
	return float64(p.OccupiedBeds) / float64(p.TotalBeds) * 100
}
