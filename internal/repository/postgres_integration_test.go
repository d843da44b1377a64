//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/database"
	"exercise-tracker/internal/database/migration"
	dbpostgres "exercise-tracker/internal/database/postgres"
	"exercise-tracker/internal/domain/exercise"
	"exercise-tracker/internal/domain/user"
	"exercise-tracker/migrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("tracker"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{URL: connStr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := migration.Runner{Source: migrations.Files}
	rep, err := r.Run(ctx, db.SQLDB())
	require.NoError(t, err)
	require.Len(t, rep.Applied, 2)
	assert.Equal(t, int64(2), rep.Current)

	rep, err = r.Run(ctx, db.SQLDB())
	require.NoError(t, err)
	assert.Empty(t, rep.Applied)

	statuses, err := r.Status(ctx, db.SQLDB())
	require.NoError(t, err)
	for _, s := range statuses {
		assert.Equal(t, migration.StateApplied, s.State, s.Filename)
	}
	return db
}

func TestPostgresRepositories(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := startPostgres(t, ctx)
	users := NewPostgresUserRepository(db)
	exercises := NewPostgresExerciseRepository(db)

	alice, err := users.Create(ctx, "alice")
	require.NoError(t, err)
	_, err = uuid.Parse(alice.ID)
	require.NoError(t, err)

	got, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrNotFound)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, alice)

	days := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range days {
		_, err := exercises.Create(ctx, exercise.Exercise{UserID: alice.ID, Description: "run", Duration: 10 * (i + 1), Date: d})
		require.NoError(t, err)
	}

	all, err := exercises.Find(ctx, exercise.LogFilter{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date.Equal(days[0]))

	from, to := days[0], days[1]
	ranged, err := exercises.Find(ctx, exercise.LogFilter{UserID: alice.ID, From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	limited, err := exercises.Find(ctx, exercise.LogFilter{UserID: alice.ID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
