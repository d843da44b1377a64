package seeder

import (
	"context"

	"exercise-tracker/internal/usecase"
)

type demoExercise struct {
	description string
	duration    int
	date        string
}

var demoLogs = map[string][]demoExercise{
	"demo_runner": {
		{"easy run", 30, "2024-01-01"},
		{"intervals", 45, "2024-01-03"},
		{"long run", 90, "2024-01-06"},
	},
	"demo_lifter": {
		{"squats", 40, "2024-01-02"},
		{"deadlifts", 35, "2024-01-04"},
	},
}

// demoOrder fixes creation order, since map iteration is random.
var demoOrder = []string{"demo_runner", "demo_lifter"}

// DemoSeeder creates a couple of users with a short exercise history each.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo_users_v1" }

func (DemoSeeder) Run(ctx context.Context, t Target) error {
	for _, name := range demoOrder {
		u, err := t.Users.CreateUser(ctx, name)
		if err != nil {
			return err
		}
		for _, e := range demoLogs[name] {
			if _, err := t.Exercises.AddExercise(ctx, usecase.AddExerciseInput{
				UserID:      u.ID,
				Description: e.description,
				Duration:    e.duration,
				Date:        e.date,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
