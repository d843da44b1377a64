package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"exercise-tracker/internal/domain/exercise"
	"exercise-tracker/internal/domain/user"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/pkg/calendar"

	"go.uber.org/zap"
)

type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    int
	Date        string
}

// LoggedExercise is a created exercise flattened with its owner.
type LoggedExercise struct {
	User     user.User
	Exercise exercise.Exercise
}

// LogParams carries the raw query values; they are validated once the user is known.
type LogParams struct {
	UserID string
	From   string
	To     string
	Limit  string
}

type ExerciseLog struct {
	User    user.User
	Entries []exercise.Exercise
}

type ExerciseUsecase interface {
	AddExercise(ctx context.Context, in AddExerciseInput) (LoggedExercise, error)
	GetLog(ctx context.Context, params LogParams) (ExerciseLog, error)
}

// ExerciseNotifier receives every successfully logged exercise.
type ExerciseNotifier interface {
	ExerciseLogged(logged LoggedExercise)
}

type Exercise struct {
	users     user.Repository
	exercises exercise.Repository
	notifier  ExerciseNotifier
	now       func() time.Time
	logger    *zap.Logger
}

type ExerciseOption func(*Exercise)

func WithClock(now func() time.Time) ExerciseOption {
	return func(e *Exercise) {
		if now != nil {
			e.now = now
		}
	}
}

func WithNotifier(n ExerciseNotifier) ExerciseOption {
	return func(e *Exercise) {
		e.notifier = n
	}
}

func NewExerciseUsecase(users user.Repository, exercises exercise.Repository, logger *zap.Logger, opts ...ExerciseOption) *Exercise {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &Exercise{users: users, exercises: exercises, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (u *Exercise) AddExercise(ctx context.Context, in AddExerciseInput) (LoggedExercise, error) {
	owner, err := u.lookupUser(ctx, in.UserID)
	if err != nil {
		return LoggedExercise{}, err
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return LoggedExercise{}, invalid("description is required")
	}
	if in.Duration <= 0 {
		return LoggedExercise{}, invalid("duration must be a positive number of minutes")
	}

	day, err := calendar.Parse(in.Date, u.now())
	if err != nil {
		return LoggedExercise{}, invalid("date %q must be YYYY-MM-DD", in.Date)
	}

	created, err := u.exercises.Create(ctx, exercise.Exercise{
		UserID:      owner.ID,
		Description: desc,
		Duration:    in.Duration,
		Date:        day,
	})
	if err != nil {
		u.logger.Error("create exercise failed", zap.String("user_id", owner.ID), zap.Error(err))
		return LoggedExercise{}, storage("create exercise", err)
	}

	logged := LoggedExercise{User: owner, Exercise: created}
	observability.RecordExerciseLogged()
	if u.notifier != nil {
		u.notifier.ExerciseLogged(logged)
	}
	return logged, nil
}

func (u *Exercise) GetLog(ctx context.Context, params LogParams) (ExerciseLog, error) {
	owner, err := u.lookupUser(ctx, params.UserID)
	if err != nil {
		return ExerciseLog{}, err
	}

	limit, err := parseLimit(params.Limit)
	if err != nil {
		return ExerciseLog{}, err
	}

	filter := exercise.LogFilter{UserID: owner.ID, Limit: limit}
	if strings.TrimSpace(params.From) != "" {
		from, err := calendar.Parse(params.From, u.now())
		if err != nil {
			return ExerciseLog{}, invalid("from %q must be YYYY-MM-DD", params.From)
		}
		filter.From = &from
	}
	if strings.TrimSpace(params.To) != "" {
		to, err := calendar.Parse(params.To, u.now())
		if err != nil {
			return ExerciseLog{}, invalid("to %q must be YYYY-MM-DD", params.To)
		}
		filter.To = &to
	}

	entries, err := u.exercises.Find(ctx, filter)
	if err != nil {
		u.logger.Error("find exercises failed", zap.String("user_id", owner.ID), zap.Error(err))
		return ExerciseLog{}, storage("find exercises", err)
	}
	if entries == nil {
		entries = []exercise.Exercise{}
	}
	return ExerciseLog{User: owner, Entries: entries}, nil
}

// parseLimit treats a blank limit as the default cap; anything else must be a positive integer.
func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, invalid("limit %q must be a positive integer", raw)
	}
	return v, nil
}

func (u *Exercise) lookupUser(ctx context.Context, id string) (user.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return user.User{}, ErrNotFound
	}

	owner, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		u.logger.Error("lookup user failed", zap.String("user_id", id), zap.Error(err))
		return user.User{}, storage("lookup user", err)
	}
	return owner, nil
}
