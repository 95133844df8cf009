package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gigflow/api/internal/middleware"
	"github.com/gigflow/api/internal/model"
	"github.com/gigflow/api/internal/service"
	"github.com/gigflow/api/pkg/response"
)

type BidHandler struct {
	service   *service.BidService
	validator *validator.Validate
}

func NewBidHandler(svc *service.BidService, v *validator.Validate) *BidHandler {
	return &BidHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/bids
func (h *BidHandler) Create(c *fiber.Ctx) error {
	var req model.CreateBidRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	bid, err := h.service.CreateBid(c.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.Created(c, bid)
}

// MyBids handles GET /api/bids/my-bids
func (h *BidHandler) MyBids(c *fiber.Ctx) error {
	bids, err := h.service.ListForFreelancer(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, model.BidListResponse{Count: len(bids), Bids: bids})
}

// ListForGig handles GET /api/bids/:gigId (gig owner only)
func (h *BidHandler) ListForGig(c *fiber.Ctx) error {
	bids, err := h.service.ListForGig(c.Context(), c.Params("gigId"), middleware.GetUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, model.BidListResponse{Count: len(bids), Bids: bids})
}

// Hire handles PATCH /api/bids/:bidId/hire (gig owner only)
func (h *BidHandler) Hire(c *fiber.Ctx) error {
	bid, err := h.service.Hire(c.Context(), c.Params("bidId"), middleware.GetUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, bid)
}

// Reject handles PATCH /api/bids/:bidId/reject (gig owner only)
func (h *BidHandler) Reject(c *fiber.Ctx) error {
	// Body is optional; an empty body means no rejection reason.
	var req model.RejectBidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.ValidationError(c, "Invalid request body", nil)
		}
		if err := h.validator.Struct(&req); err != nil {
			return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
		}
	}

	bid, err := h.service.Reject(c.Context(), c.Params("bidId"), middleware.GetUserID(c), req.RejectionReason)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OK(c, bid)
}
