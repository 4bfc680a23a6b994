package handlers

import (
	"roost/internal/models"
	"roost/internal/services/occupancy"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RoomHandler struct {
	occupancy occupancy.Service
}

func NewRoomHandler(occupancyService occupancy.Service) *RoomHandler {
	return &RoomHandler{occupancy: occupancyService}
}

func (h *RoomHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	var input occupancy.CreateRoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	room, err := h.occupancy.CreateRoom(c.Context(), claims.UserID, input)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "room added", room)
}

func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid room id")
	}
	if err := h.occupancy.DeleteRoom(c.Context(), claims.UserID, uint(id)); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "room deleted", nil)
}
