package handlers

import (
	"strings"

	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/services/listing"
	"roost/internal/services/occupancy"
	"roost/internal/services/payment"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MemberHandler struct {
	occupancy occupancy.Service
	payments  payment.Service
	store     repositories.Store
}

func NewMemberHandler(occupancyService occupancy.Service, paymentService payment.Service, store repositories.Store) *MemberHandler {
	return &MemberHandler{occupancy: occupancyService, payments: paymentService, store: store}
}

// memberSchema: search over name+phone, tabs all/assigned/unassigned.
var memberSchema = listing.Schema[models.Member]{
	SearchFields: func(m models.Member) []string {
		return []string{m.Name, m.Phone}
	},
	Category: func(m models.Member) string {
		if m.Assigned() {
			return "assigned"
		}
		return "unassigned"
	},
	Sorters: map[string]func(a, b models.Member) bool{
		"name":    func(a, b models.Member) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		"joining": func(a, b models.Member) bool { return a.JoiningDate.Before(b.JoiningDate) },
	},
}

func (h *MemberHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	var input occupancy.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	member, err := h.occupancy.CreateMember(c.Context(), claims.UserID, input)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "member added", member)
}

func (h *MemberHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	members, err := h.store.Members().ListByMerchant(claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	active := members[:0:0]
	for _, member := range members {
		if member.Active {
			active = append(active, member)
		}
	}
	return response.Success(c, "members", listing.Apply(active, listingParams(c), memberSchema))
}

func (h *MemberHandler) Assign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid member id")
	}
	var input struct {
		RoomID uint `json:"room_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	member, err := h.occupancy.AssignMember(c.Context(), uint(id), input.RoomID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "member assigned", member)
}

func (h *MemberHandler) Unassign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid member id")
	}
	member, err := h.occupancy.UnassignMember(c.Context(), uint(id))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "member unassigned", member)
}

func (h *MemberHandler) Reassign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid member id")
	}
	var input struct {
		RoomID uint `json:"room_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	member, err := h.occupancy.ReassignMember(c.Context(), uint(id), input.RoomID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "member reassigned", member)
}

func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid member id")
	}
	if err := h.occupancy.DeactivateMember(c.Context(), uint(id)); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "member deactivated", nil)
}

func (h *MemberHandler) RecordPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid member id")
	}
	var input payment.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	input.MemberID = uint(id)
	record, err := h.payments.RecordPayment(c.Context(), input)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "payment recorded", record)
}

func (h *MemberHandler) PaymentHistory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid member id")
	}
	history, err := h.payments.History(c.Context(), uint(id))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "payments", history)
}
