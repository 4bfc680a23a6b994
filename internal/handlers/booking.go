package handlers

import (
	"strings"

	"roost/internal/models"
	"roost/internal/services/listing"
	"roost/internal/services/occupancy"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	occupancy occupancy.Service
}

func NewBookingHandler(occupancyService occupancy.Service) *BookingHandler {
	return &BookingHandler{occupancy: occupancyService}
}

// bookingSchema: search over member and property name, tabs on payment
// status (all/Paid/Pending/Overdue).
var bookingSchema = listing.Schema[models.Booking]{
	SearchFields: func(b models.Booking) []string {
		return []string{b.Member.Name, b.Property.Name}
	},
	Category: func(b models.Booking) string {
		return string(b.Status)
	},
	Sorters: map[string]func(a, b models.Booking) bool{
		"member": func(a, b models.Booking) bool {
			return strings.ToLower(a.Member.Name) < strings.ToLower(b.Member.Name)
		},
		"rent": func(a, b models.Booking) bool { return a.Member.MonthlyRent > b.Member.MonthlyRent },
	},
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	merchantID := claims.UserID
	if claims.Role == models.RoleAdmin {
		merchantID = 0 // admins see every booking
	}
	bookings, err := h.occupancy.Bookings(c.Context(), merchantID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "bookings", listing.Apply(bookings, listingParams(c), bookingSchema))
}
