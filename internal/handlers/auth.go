package handlers

import (
	"roost/internal/models"
	"roost/internal/services/auth"
	"roost/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	pair, err := h.service.Login(c.Context(), input.Phone, input.Password)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "logged in", pair)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	pair, err := h.service.Register(c.Context(), input)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "account created", pair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	pair, err := h.service.RefreshTokens(c.Context(), input.RefreshToken)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "tokens refreshed", pair)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	if err := h.service.Logout(c.Context(), claims.UserID); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "logged out", nil)
}
