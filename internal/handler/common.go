package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gigflow/api/internal/service"
	"github.com/gigflow/api/pkg/response"
)

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}

// mapServiceError translates a service sentinel error onto the HTTP
// error surface. Unknown errors become a 500 without leaking detail.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return response.ValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrGigNotFound),
		errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotGigOwner),
		errors.Is(err, service.ErrOwnGigBid):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrGigAlreadyAssigned),
		errors.Is(err, service.ErrBidAlreadyProcessed):
		return response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrGigNotOpen),
		errors.Is(err, service.ErrDuplicateBid),
		errors.Is(err, service.ErrEmailTaken):
		return response.ValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())
	default:
		return response.ServiceError(c, "Something went wrong")
	}
}
