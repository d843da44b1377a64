package handler

import (
	"exercise-tracker/internal/delivery/http/dto"
	"exercise-tracker/internal/pkg/calendar"
	"exercise-tracker/internal/pkg/response"
	"exercise-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ExerciseHandler struct {
	uc usecase.ExerciseUsecase
}

func NewExerciseHandler(uc usecase.ExerciseUsecase) *ExerciseHandler {
	return &ExerciseHandler{uc: uc}
}

// RegisterRoutes mounts the handlers under a /users group.
func (h *ExerciseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/exercises", h.Create)
	r.Get("/:id/logs", h.Log)
}

func (h *ExerciseHandler) Create(c fiber.Ctx) error {
	var req createExerciseRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest("malformed exercise body", err)
	}

	logged, err := h.uc.AddExercise(c.Context(), usecase.AddExerciseInput{
		UserID:      c.Params("id"),
		Description: req.Description,
		Duration:    req.Duration,
		Date:        req.Date,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ExerciseResponse{
		ID:          logged.User.ID,
		Username:    logged.User.Username,
		Description: logged.Exercise.Description,
		Duration:    logged.Exercise.Duration,
		Date:        calendar.Format(logged.Exercise.Date),
	})
}

func (h *ExerciseHandler) Log(c fiber.Ctx) error {
	out, err := h.uc.GetLog(c.Context(), usecase.LogParams{
		UserID: c.Params("id"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  c.Query("limit"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	entries := make([]dto.LogEntryResponse, 0, len(out.Entries))
	for _, e := range out.Entries {
		entries = append(entries, dto.LogEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        calendar.Format(e.Date),
		})
	}

	return response.JSON(c, fiber.StatusOK, dto.LogResponse{
		ID:       out.User.ID,
		Username: out.User.Username,
		Count:    len(entries),
		Log:      entries,
	})
}
