package routes

import (
	"exercise-tracker/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	users     *handler.UserHandler
	exercises *handler.ExerciseHandler
}

func NewRegistry(health *handler.HealthHandler, users *handler.UserHandler, exercises *handler.ExerciseHandler) *Registry {
	return &Registry{health: health, users: users, exercises: exercises}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	usersGroup := app.Group("/api/users")
	if r.users != nil {
		r.users.RegisterRoutes(usersGroup)
	}
	if r.exercises != nil {
		r.exercises.RegisterRoutes(usersGroup)
	}
}
