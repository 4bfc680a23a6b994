package handlers

import (
	"roost/internal/models"
	"roost/internal/services/dashboard"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Merchant(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	metrics, err := h.service.ForMerchant(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "dashboard", metrics)
}

func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	metrics, err := h.service.ForAdmin(c.Context())
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "dashboard", metrics)
}
