package usecase

import (
	"context"
	"strings"

	"exercise-tracker/internal/domain/user"

	"go.uber.org/zap"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, username string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

type User struct {
	users  user.Repository
	logger *zap.Logger
}

func NewUserUsecase(users user.Repository, logger *zap.Logger) *User {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &User{users: users, logger: logger}
}

func (u *User) CreateUser(ctx context.Context, username string) (user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return user.User{}, invalid("username is required")
	}

	created, err := u.users.Create(ctx, username)
	if err != nil {
		u.logger.Error("create user failed", zap.String("username", username), zap.Error(err))
		return user.User{}, storage("create user", err)
	}
	return created, nil
}

func (u *User) ListUsers(ctx context.Context) ([]user.User, error) {
	items, err := u.users.List(ctx)
	if err != nil {
		u.logger.Error("list users failed", zap.Error(err))
		return nil, storage("list users", err)
	}
	if items == nil {
		items = []user.User{}
	}
	return items, nil
}
