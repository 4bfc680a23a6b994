package models

import "gorm.io/gorm"

// Room types carry a fixed bed capacity.
const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
	RoomTypeShared = "Shared"
)

// BedsForRoomType returns the fixed capacity for a room type, or 0 for an
// unknown type.
func BedsForRoomType(roomType string) int {
	switch roomType {
	case RoomTypeSingle:
		return 1
	case RoomTypeDouble:
		return 2
	case RoomTypeShared:
		return 4
	default:
		return 0
	}
}

type Room struct {
	gorm.Model
	PropertyID uint   `gorm:"index;not null"`
	RoomNumber string `gorm:"not null"`
	Floor      int    `gorm:"default:1"`
	Type       string `gorm:"not null"`
	Beds       int    `gorm:"not null"`
	// Occupied counts members currently assigned to this room. Maintained by
	// the occupancy service; always within [0, Beds].
	Occupied int     `gorm:"default:0"`
	Rent     float64 `gorm:"not null"` // per bed, monthly
}

// HasVacancy reports whether at least one bed is free.
func (r *Room) HasVacancy() bool {
	return r.Occupied < r.Beds
}
