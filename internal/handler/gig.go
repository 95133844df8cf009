package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gigflow/api/internal/middleware"
	"github.com/gigflow/api/internal/model"
	"github.com/gigflow/api/internal/service"
	"github.com/gigflow/api/pkg/response"
)

type GigHandler struct {
	service   *service.GigService
	validator *validator.Validate
}

func NewGigHandler(svc *service.GigService, v *validator.Validate) *GigHandler {
	return &GigHandler{
		service:   svc,
		validator: v,
	}
}

// List handles GET /api/gigs. Returns open gigs, with an optional
// ?search= title filter.
func (h *GigHandler) List(c *fiber.Ctx) error {
	gigs, err := h.service.ListOpen(c.Context(), c.Query("search"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, model.GigListResponse{Count: len(gigs), Gigs: gigs})
}

// Create handles POST /api/gigs
func (h *GigHandler) Create(c *fiber.Ctx) error {
	var req model.CreateGigRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	gig, err := h.service.CreateGig(c.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.Created(c, gig)
}

// MyGigs handles GET /api/gigs/my-gigs
func (h *GigHandler) MyGigs(c *fiber.Ctx) error {
	gigs, err := h.service.ListByOwner(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, model.GigListResponse{Count: len(gigs), Gigs: gigs})
}

// Get handles GET /api/gigs/:id
func (h *GigHandler) Get(c *fiber.Ctx) error {
	gig, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, gig)
}
