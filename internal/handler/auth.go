package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gigflow/api/internal/middleware"
	"github.com/gigflow/api/internal/model"
	"github.com/gigflow/api/internal/service"
	"github.com/gigflow/api/pkg/response"
)

type AuthHandler struct {
	service   *service.AuthService
	validator *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, v *validator.Validate) *AuthHandler {
	return &AuthHandler{
		service:   svc,
		validator: v,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Register(c.Context(), &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.Created(c, result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, result)
}

// Logout handles POST /api/auth/logout. Tokens are held client-side,
// so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"message": "Logout successful"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.service.GetMe(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, user)
}
