package handlers

import (
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/services/approval"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// KYCHandler covers the merchant side of verification: submitting documents
// and checking the current cycle. Review actions live on AdminHandler.
type KYCHandler struct {
	service approval.Service
	store   repositories.Store
}

func NewKYCHandler(service approval.Service, store repositories.Store) *KYCHandler {
	return &KYCHandler{service: service, store: store}
}

func (h *KYCHandler) Submit(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	var input struct {
		Documents []string `json:"documents"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	kyc, err := h.service.SubmitKYC(c.Context(), claims.UserID, input.Documents)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "KYC submitted", kyc)
}

// Status returns the merchant's latest review cycle.
func (h *KYCHandler) Status(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	kyc, err := h.store.KYC().LatestByMerchant(claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "KYC status", kyc)
}
