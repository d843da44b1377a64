package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repository is the user side of the persistence gateway. GetByID returns ErrNotFound for
// unknown ids, including ids the backend cannot parse.
type Repository interface {
	Create(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
