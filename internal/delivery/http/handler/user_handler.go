package handler

import (
	"exercise-tracker/internal/delivery/http/dto"
	"exercise-tracker/internal/pkg/response"
	"exercise-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req createUserRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest("username is required", err)
	}

	created, err := h.uc.CreateUser(c.Context(), req.Username)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.UserResponse{ID: created.ID, Username: created.Username})
}

func (h *UserHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.UserResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.UserResponse{ID: it.ID, Username: it.Username})
	}
	return response.JSON(c, fiber.StatusOK, res)
}
