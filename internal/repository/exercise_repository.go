package repository

import (
	"context"
	"fmt"
	"strings"

	"exercise-tracker/internal/database"
	"exercise-tracker/internal/domain/exercise"

	"github.com/google/uuid"
)

type PostgresExerciseRepository struct {
	db database.DB
}

func NewPostgresExerciseRepository(db database.DB) *PostgresExerciseRepository {
	return &PostgresExerciseRepository{db: db}
}

func (r *PostgresExerciseRepository) Create(ctx context.Context, e exercise.Exercise) (exercise.Exercise, error) {
	uid, err := uuid.Parse(e.UserID)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("invalid user id %q: %w", e.UserID, err)
	}

	id := uuid.New()
	_, err = r.db.Exec(ctx,
		`INSERT INTO exercises (id, user_id, description, duration, date)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, uid, e.Description, e.Duration, e.Date,
	)
	if err != nil {
		return exercise.Exercise{}, err
	}

	e.ID = id.String()
	return e, nil
}

func (r *PostgresExerciseRepository) Find(ctx context.Context, f exercise.LogFilter) ([]exercise.Exercise, error) {
	uid, err := uuid.Parse(f.UserID)
	if err != nil {
		return []exercise.Exercise{}, nil
	}

	query, args := buildLogQuery(uid, f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]exercise.Exercise, 0)
	for rows.Next() {
		var id, userID uuid.UUID
		var e exercise.Exercise
		if err := rows.Scan(&id, &userID, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, err
		}
		e.ID = id.String()
		e.UserID = userID.String()
		e.Date = e.Date.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildLogQuery(userID uuid.UUID, f exercise.LogFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1`)
	args := []any{userID}

	if f.From != nil {
		args = append(args, *f.From)
		fmt.Fprintf(&sb, ` AND date >= $%d`, len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		fmt.Fprintf(&sb, ` AND date <= $%d`, len(args))
	}

	args = append(args, f.EffectiveLimit())
	fmt.Fprintf(&sb, ` ORDER BY date ASC, created_at ASC LIMIT $%d`, len(args))

	return sb.String(), args
}
