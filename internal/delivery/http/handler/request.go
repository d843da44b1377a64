package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = validator.New()

type createUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

// createExerciseRequest is only decoded here; field rules run in the usecase after the
// user lookup so an unknown user is reported first.
type createExerciseRequest struct {
	Description string `json:"description" form:"description"`
	Duration    int    `json:"duration" form:"duration"`
	Date        string `json:"date" form:"date"`
}

// bindBody decodes a JSON, urlencoded or multipart body and validates it.
func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return err
	}
	return validate.Struct(out)
}
