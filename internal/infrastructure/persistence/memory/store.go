// Package memory is an in-process persistence gateway backed by maps.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"exercise-tracker/internal/domain/exercise"
	"exercise-tracker/internal/domain/user"

	"github.com/google/uuid"
)

type Store struct {
	mu        sync.RWMutex
	users     []user.User
	byID      map[string]int
	exercises []exercise.Exercise
}

func NewStore() *Store {
	return &Store{byID: map[string]int{}}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Exercises() *ExerciseRepository {
	return &ExerciseRepository{s: s}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, username string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	u := user.User{ID: uuid.NewString(), Username: strings.Clone(username)}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.byID[u.ID] = len(r.s.users)
	r.s.users = append(r.s.users, u)
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]user.User, len(r.s.users))
	copy(out, r.s.users)
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[i], nil
}

type ExerciseRepository struct {
	s *Store
}

func (r *ExerciseRepository) Create(ctx context.Context, e exercise.Exercise) (exercise.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return exercise.Exercise{}, err
	}
	e.ID = uuid.NewString()
	e.UserID = strings.Clone(e.UserID)
	e.Description = strings.Clone(e.Description)
	e.Date = e.Date.UTC()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.exercises = append(r.s.exercises, e)
	return e, nil
}

func (r *ExerciseRepository) Find(ctx context.Context, f exercise.LogFilter) ([]exercise.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]exercise.Exercise, 0)
	for _, e := range r.s.exercises {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	if limit := f.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
