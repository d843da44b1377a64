package repository

import (
	"context"
	"errors"

	"exercise-tracker/internal/database"
	"exercise-tracker/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, username string) (user.User, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `INSERT INTO users (id, username) VALUES ($1, $2)`, id, username)
	if err != nil {
		return user.User{}, err
	}
	return user.User{ID: id.String(), Username: username}, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		var id uuid.UUID
		var u user.User
		if err := rows.Scan(&id, &u.Username); err != nil {
			return nil, err
		}
		u.ID = id.String()
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return user.User{}, user.ErrNotFound
	}

	var u user.User
	err = r.db.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, uid).Scan(&u.Username)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.ID = uid.String()
	return u, nil
}
