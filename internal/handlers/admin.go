package handlers

import (
	"strings"

	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/services/approval"
	"roost/internal/services/listing"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the review surface: property approvals, KYC review
// and the user directory.
type AdminHandler struct {
	approvals approval.Service
	store     repositories.Store
}

func NewAdminHandler(approvals approval.Service, store repositories.Store) *AdminHandler {
	return &AdminHandler{approvals: approvals, store: store}
}

// userSchema: search over name+phone, tabs on KYC status.
var userSchema = listing.Schema[models.User]{
	SearchFields: func(u models.User) []string {
		return []string{u.Name, u.Phone, u.BusinessName}
	},
	Category: func(u models.User) string {
		return string(u.KYCStatus)
	},
	Sorters: map[string]func(a, b models.User) bool{
		"name": func(a, b models.User) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	},
}

var kycSchema = listing.Schema[models.KYCVerification]{
	Category: func(k models.KYCVerification) string {
		return string(k.Status)
	},
	Sorters: map[string]func(a, b models.KYCVerification) bool{
		"submitted": func(a, b models.KYCVerification) bool { return a.SubmittedAt.Before(b.SubmittedAt) },
	},
}

func (h *AdminHandler) ListProperties(c *fiber.Ctx) error {
	properties, err := h.store.Properties().List()
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "properties", listing.Apply(properties, listingParams(c), propertySchema))
}

func (h *AdminHandler) ApproveProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid property id")
	}
	property, err := h.approvals.ApproveProperty(c.Context(), uint(id))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "property approved", property)
}

func (h *AdminHandler) RejectProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid property id")
	}
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	property, err := h.approvals.RejectProperty(c.Context(), uint(id), input.Reason)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "property rejected", property)
}

func (h *AdminHandler) RequestPropertyChanges(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid property id")
	}
	var input struct {
		Note string `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	property, err := h.approvals.RequestPropertyChanges(c.Context(), uint(id), input.Note)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "changes requested", property)
}

func (h *AdminHandler) ListKYC(c *fiber.Ctx) error {
	records, err := h.store.KYC().List()
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "kyc records", listing.Apply(records, listingParams(c), kycSchema))
}

func (h *AdminHandler) ApproveKYC(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid kyc id")
	}
	kyc, err := h.approvals.ApproveKYC(c.Context(), uint(id))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "KYC approved", kyc)
}

func (h *AdminHandler) RejectKYC(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid kyc id")
	}
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	kyc, err := h.approvals.RejectKYC(c.Context(), uint(id), input.Reason)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "KYC rejected", kyc)
}

func (h *AdminHandler) RequestMoreDocuments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid kyc id")
	}
	var input struct {
		Note string `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	kyc, err := h.approvals.RequestMoreDocuments(c.Context(), uint(id), input.Note)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "documents requested", kyc)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.store.Users().List()
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "users", listing.Apply(users, listingParams(c), userSchema))
}
