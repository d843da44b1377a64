package seeder

import (
	"context"
	"errors"
	"fmt"

	"exercise-tracker/internal/usecase"
)

// Target is what seeders write through. Going through the usecases keeps seeded rows
// subject to the same validation as API writes.
type Target struct {
	Users     usecase.UserUsecase
	Exercises usecase.ExerciseUsecase
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, t Target) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, t Target) error {
	if t.Users == nil || t.Exercises == nil {
		return errors.New("nil seed target")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, t); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{DemoSeeder{}}
}
