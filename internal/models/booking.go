package models

// Booking is a derived projection joining a member to its room and property.
// It is computed on demand for every member holding a room and never stored.
type Booking struct {
	Member   Member        `json:"member"`
	Room     Room          `json:"room"`
	Property Property      `json:"property"`
	Status   PaymentStatus `json:"status"`
}
