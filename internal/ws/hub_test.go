package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"exercise-tracker/internal/domain/exercise"
	"exercise-tracker/internal/domain/user"
	"exercise-tracker/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub(nil)
	go h.Run(ctx)
	return h
}

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	h := runHub(t)
	a := NewClient(h, nil)
	b := NewClient(h, nil)
	h.Register(a)
	h.Register(b)

	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	h.Broadcast([]byte("hello"))
	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			assert.Equal(t, "hello", string(msg))
		case <-time.After(time.Second):
			t.Fatal("broadcast not delivered")
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := runHub(t)
	c := NewClient(h, nil)
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_CallsAfterShutdownDoNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			c := NewClient(h, nil)
			h.Register(c)
			h.Unregister(c)
			h.Broadcast([]byte("late"))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}

	late := NewClient(h, nil)
	h.Register(late)
	_, ok := <-late.send
	assert.False(t, ok)
}

func TestHub_NilIsSafe(t *testing.T) {
	var h *Hub
	h.Broadcast([]byte("x"))
	h.Register(nil)
	assert.Equal(t, 0, h.ClientCount())
}

func TestNotifier_PublishesExerciseLogged(t *testing.T) {
	h := runHub(t)
	c := NewClient(h, nil)
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	n := NewNotifier(h)
	n.now = func() time.Time { return time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC) }
	n.ExerciseLogged(usecase.LoggedExercise{
		User: user.User{ID: "u1", Username: "alice"},
		Exercise: exercise.Exercise{
			ID:          "e1",
			UserID:      "u1",
			Description: "run",
			Duration:    30,
			Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	})

	select {
	case msg := <-c.send:
		var evt ExerciseLoggedEvent
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, EventExerciseLogged, evt.Type)
		assert.Equal(t, "alice", evt.Username)
		assert.Equal(t, "Fri Jan 05 2024", evt.Date)
		assert.Equal(t, 30, evt.Duration)
		assert.Equal(t, "2024-06-14T12:00:00Z", evt.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestNotifier_NilHub(t *testing.T) {
	n := NewNotifier(nil)
	assert.NotPanics(t, func() { n.ExerciseLogged(usecase.LoggedExercise{}) })
}
