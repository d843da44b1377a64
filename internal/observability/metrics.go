package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "exercise_tracker"

var exercisesLogged = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: Namespace,
	Name:      "exercises_logged_total",
	Help:      "Total number of exercises persisted.",
})

// RecordExerciseLogged increments the logged exercise counter.
func RecordExerciseLogged() {
	exercisesLogged.Inc()
}
