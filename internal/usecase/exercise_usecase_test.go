package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"exercise-tracker/internal/domain/exercise"
	"exercise-tracker/internal/domain/user"
	"exercise-tracker/internal/infrastructure/persistence/memory"
	"exercise-tracker/internal/pkg/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 14, 9, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	got []LoggedExercise
}

func (n *recordingNotifier) ExerciseLogged(l LoggedExercise) {
	n.got = append(n.got, l)
}

type failingExercises struct{}

func (failingExercises) Create(context.Context, exercise.Exercise) (exercise.Exercise, error) {
	return exercise.Exercise{}, errors.New("connection reset")
}

func (failingExercises) Find(context.Context, exercise.LogFilter) ([]exercise.Exercise, error) {
	return nil, errors.New("connection reset")
}

type failingUsers struct{}

func (failingUsers) Create(context.Context, string) (user.User, error) {
	return user.User{}, errors.New("connection reset")
}

func (failingUsers) List(context.Context) ([]user.User, error) {
	return nil, errors.New("connection reset")
}

func (failingUsers) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, errors.New("connection reset")
}

func newExerciseFixture(t *testing.T) (*Exercise, user.User, *memory.Store, *recordingNotifier) {
	t.Helper()
	store := memory.NewStore()
	alice, err := store.Users().Create(context.Background(), "alice")
	require.NoError(t, err)

	n := &recordingNotifier{}
	uc := NewExerciseUsecase(store.Users(), store.Exercises(), nil,
		WithClock(func() time.Time { return fixedNow }),
		WithNotifier(n),
	)
	return uc, alice, store, n
}

func TestExerciseUsecase_AddExercise_DefaultsToToday(t *testing.T) {
	uc, alice, _, n := newExerciseFixture(t)

	got, err := uc.AddExercise(context.Background(), AddExerciseInput{UserID: alice.ID, Description: "run", Duration: 30})
	require.NoError(t, err)

	assert.Equal(t, alice, got.User)
	assert.Equal(t, "run", got.Exercise.Description)
	assert.Equal(t, 30, got.Exercise.Duration)
	assert.Equal(t, "Fri Jun 14 2024", calendar.Format(got.Exercise.Date))
	require.Len(t, n.got, 1)
	assert.Equal(t, got, n.got[0])
}

func TestExerciseUsecase_AddExercise_ExplicitDate(t *testing.T) {
	uc, alice, _, _ := newExerciseFixture(t)

	got, err := uc.AddExercise(context.Background(), AddExerciseInput{UserID: alice.ID, Description: "swim", Duration: 45, Date: "2023-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "Sun Dec 31 2023", calendar.Format(got.Exercise.Date))
}

func TestExerciseUsecase_AddExercise_UnknownUser(t *testing.T) {
	uc, _, store, n := newExerciseFixture(t)

	_, err := uc.AddExercise(context.Background(), AddExerciseInput{UserID: "nope", Description: "run", Duration: 30})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, n.got)

	entries, err := store.Exercises().Find(context.Background(), exercise.LogFilter{UserID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExerciseUsecase_AddExercise_InvalidInput(t *testing.T) {
	uc, alice, _, _ := newExerciseFixture(t)
	ctx := context.Background()

	cases := []AddExerciseInput{
		{UserID: alice.ID, Description: " ", Duration: 30},
		{UserID: alice.ID, Description: "run", Duration: 0},
		{UserID: alice.ID, Description: "run", Duration: -5},
		{UserID: alice.ID, Description: "run", Duration: 5, Date: "last tuesday"},
	}
	for _, in := range cases {
		_, err := uc.AddExercise(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestExerciseUsecase_AddExercise_StorageFailure(t *testing.T) {
	store := memory.NewStore()
	alice, err := store.Users().Create(context.Background(), "alice")
	require.NoError(t, err)

	uc := NewExerciseUsecase(store.Users(), failingExercises{}, nil)
	_, err = uc.AddExercise(context.Background(), AddExerciseInput{UserID: alice.ID, Description: "run", Duration: 30})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	uc = NewExerciseUsecase(failingUsers{}, store.Exercises(), nil)
	_, err = uc.AddExercise(context.Background(), AddExerciseInput{UserID: alice.ID, Description: "run", Duration: 30})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestExerciseUsecase_GetLog_InclusiveRange(t *testing.T) {
	uc, alice, _, _ := newExerciseFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-01", "2024-01-10", "2024-01-20", "2024-01-31"} {
		_, err := uc.AddExercise(ctx, AddExerciseInput{UserID: alice.ID, Description: "ride " + d, Duration: 60, Date: d})
		require.NoError(t, err)
	}

	log, err := uc.GetLog(ctx, LogParams{UserID: alice.ID, From: "2024-01-10", To: "2024-01-20"})
	require.NoError(t, err)
	require.Len(t, log.Entries, 2)
	assert.Equal(t, "ride 2024-01-10", log.Entries[0].Description)
	assert.Equal(t, "ride 2024-01-20", log.Entries[1].Description)

	log, err = uc.GetLog(ctx, LogParams{UserID: alice.ID, From: "2024-01-20"})
	require.NoError(t, err)
	assert.Len(t, log.Entries, 2)

	log, err = uc.GetLog(ctx, LogParams{UserID: alice.ID, To: "2024-01-01"})
	require.NoError(t, err)
	assert.Len(t, log.Entries, 1)

	log, err = uc.GetLog(ctx, LogParams{UserID: alice.ID})
	require.NoError(t, err)
	assert.Len(t, log.Entries, 4)
	assert.Equal(t, alice, log.User)
}

func TestExerciseUsecase_GetLog_Limit(t *testing.T) {
	uc, alice, _, _ := newExerciseFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.AddExercise(ctx, AddExerciseInput{UserID: alice.ID, Description: "lift", Duration: 20})
		require.NoError(t, err)
	}

	log, err := uc.GetLog(ctx, LogParams{UserID: alice.ID, Limit: "2"})
	require.NoError(t, err)
	assert.Len(t, log.Entries, 2)

	log, err = uc.GetLog(ctx, LogParams{UserID: alice.ID, Limit: " "})
	require.NoError(t, err)
	assert.Len(t, log.Entries, 3)

	for _, bad := range []string{"-1", "0", "abc", "2.5"} {
		_, err = uc.GetLog(ctx, LogParams{UserID: alice.ID, Limit: bad})
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestExerciseUsecase_UnknownUserReportedBeforeInput(t *testing.T) {
	uc, _, _, _ := newExerciseFixture(t)
	ctx := context.Background()

	_, err := uc.AddExercise(ctx, AddExerciseInput{UserID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.GetLog(ctx, LogParams{UserID: "missing", Limit: "abc", From: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExerciseUsecase_GetLog_Errors(t *testing.T) {
	uc, alice, _, _ := newExerciseFixture(t)
	ctx := context.Background()

	_, err := uc.GetLog(ctx, LogParams{UserID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.GetLog(ctx, LogParams{UserID: alice.ID, From: "soon"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.GetLog(ctx, LogParams{UserID: alice.ID, To: "2024/01/01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	store := memory.NewStore()
	bob, err := store.Users().Create(ctx, "bob")
	require.NoError(t, err)
	failing := NewExerciseUsecase(store.Users(), failingExercises{}, nil)
	_, err = failing.GetLog(ctx, LogParams{UserID: bob.ID})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestExerciseUsecase_GetLog_EmptyLog(t *testing.T) {
	uc, alice, _, _ := newExerciseFixture(t)

	log, err := uc.GetLog(context.Background(), LogParams{UserID: alice.ID})
	require.NoError(t, err)
	assert.NotNil(t, log.Entries)
	assert.Empty(t, log.Entries)
}
