package handler

import (
	"context"
	"time"

	"exercise-tracker/internal/delivery/http/middleware"
	"exercise-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, response.KindStorageUnavailable, "storage unavailable", nil, err)
		}
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"status": response.MessageOK})
}
