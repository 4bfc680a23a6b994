package handlers

import (
	"roost/internal/services/listing"

	"github.com/gofiber/fiber/v2"
)

// listingParams reads the shared ?q=&filter=&sort= query parameters every
// listing endpoint accepts.
func listingParams(c *fiber.Ctx) listing.Params {
	return listing.Params{
		Query:   c.Query("q"),
		Filter:  c.Query("filter"),
		SortKey: c.Query("sort"),
	}
}
