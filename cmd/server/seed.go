package main

import (
	"time"

	"exercise-tracker/internal/app"
	"exercise-tracker/internal/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users and exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.NewContainer(cfg, log)
		if err != nil {
			return err
		}
		defer c.Close()

		r := seeder.Runner{Seeders: seeder.Defaults()}
		if err := r.Run(cmd.Context(), seeder.Target{Users: c.UserUsecase, Exercises: c.ExerciseUsecase}); err != nil {
			return err
		}
		log.Info("seed completed", zap.String("driver", string(c.Driver)))
		return nil
	},
}
