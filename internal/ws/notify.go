package ws

import (
	"encoding/json"
	"time"

	"exercise-tracker/internal/pkg/calendar"
	"exercise-tracker/internal/usecase"
)

const EventExerciseLogged = "exercise_logged"

type ExerciseLoggedEvent struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	Timestamp   string `json:"timestamp"`
}

// Notifier publishes logged exercises to a hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) ExerciseLogged(logged usecase.LoggedExercise) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ExerciseLoggedEvent{
		Type:        EventExerciseLogged,
		UserID:      logged.User.ID,
		Username:    logged.User.Username,
		Description: logged.Exercise.Description,
		Duration:    logged.Exercise.Duration,
		Date:        calendar.Format(logged.Exercise.Date),
		Timestamp:   n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
