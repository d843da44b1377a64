package exercise

import "context"

// Repository is the exercise side of the persistence gateway. Find returns matches ordered
// by date ascending, ties in insertion order, truncated to the filter's effective limit.
type Repository interface {
	Create(ctx context.Context, e Exercise) (Exercise, error)
	Find(ctx context.Context, f LogFilter) ([]Exercise, error)
}
