package handlers

import (
	"strings"

	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/services/listing"
	"roost/internal/services/occupancy"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	occupancy occupancy.Service
	store     repositories.Store
}

func NewPropertyHandler(occupancyService occupancy.Service, store repositories.Store) *PropertyHandler {
	return &PropertyHandler{occupancy: occupancyService, store: store}
}

// propertySchema drives the shared listing facade for property screens:
// search over name+location, tab filter on approval status, explicit sort
// keys only.
var propertySchema = listing.Schema[models.Property]{
	SearchFields: func(p models.Property) []string {
		return []string{p.Name, p.Location}
	},
	Category: func(p models.Property) string {
		return string(p.Status)
	},
	Sorters: map[string]func(a, b models.Property) bool{
		"name":      func(a, b models.Property) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		"occupancy": func(a, b models.Property) bool { return a.OccupancyRate() > b.OccupancyRate() },
		"revenue":   func(a, b models.Property) bool { return a.MonthlyRevenue > b.MonthlyRevenue },
	},
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	var input occupancy.CreatePropertyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	property, err := h.occupancy.CreateProperty(c.Context(), claims.UserID, input)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "property submitted for approval", property)
}

// ListMine returns the merchant's own properties.
func (h *PropertyHandler) ListMine(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	properties, err := h.store.Properties().ListByMerchant(claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	view := listing.Apply(properties, listingParams(c), propertySchema)
	return response.Success(c, "properties", view)
}

// Browse returns approved, visible properties for resident users.
func (h *PropertyHandler) Browse(c *fiber.Ctx) error {
	properties, err := h.store.Properties().List()
	if err != nil {
		return response.Domain(c, err)
	}
	visible := properties[:0:0]
	for _, property := range properties {
		if property.Status == models.StatusApproved && !property.Hidden {
			visible = append(visible, property)
		}
	}
	params := listingParams(c)
	params.Filter = "" // browse has no status tabs
	return response.Success(c, "properties", listing.Apply(visible, params, propertySchema))
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid property id")
	}
	property, err := h.store.Properties().GetByID(uint(id))
	if err != nil {
		return response.Domain(c, err)
	}
	rooms, err := h.store.Rooms().ListByProperty(property.ID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "property", fiber.Map{
		"property": property,
		"rooms":    rooms,
	})
}

func (h *PropertyHandler) SetVisibility(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid property id")
	}
	var input struct {
		Hidden bool `json:"hidden"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	property, err := h.occupancy.HideProperty(c.Context(), claims.UserID, uint(id), input.Hidden)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "visibility updated", property)
}
