package handler

import (
	"errors"

	"exercise-tracker/internal/delivery/http/middleware"
	"exercise-tracker/internal/pkg/response"
	"exercise-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidationFailed, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "user not found", nil, err)
	case errors.Is(err, usecase.ErrStorageUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.KindStorageUnavailable, "storage unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, nil, err)
	}
}

func badRequest(message string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidationFailed, message, nil, cause)
}
