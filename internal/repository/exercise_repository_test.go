package repository

import (
	"testing"
	"time"

	"exercise-tracker/internal/domain/exercise"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildLogQuery(t *testing.T) {
	uid := uuid.New()
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   exercise.LogFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "user only",
			filter:   exercise.LogFilter{UserID: uid.String()},
			wantSQL:  `SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1 ORDER BY date ASC, created_at ASC LIMIT $2`,
			wantArgs: []any{uid, exercise.DefaultLogLimit},
		},
		{
			name:     "from only",
			filter:   exercise.LogFilter{UserID: uid.String(), From: &from, Limit: 2},
			wantSQL:  `SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1 AND date >= $2 ORDER BY date ASC, created_at ASC LIMIT $3`,
			wantArgs: []any{uid, from, 2},
		},
		{
			name:     "to only",
			filter:   exercise.LogFilter{UserID: uid.String(), To: &to},
			wantSQL:  `SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1 AND date <= $2 ORDER BY date ASC, created_at ASC LIMIT $3`,
			wantArgs: []any{uid, to, exercise.DefaultLogLimit},
		},
		{
			name:     "full range",
			filter:   exercise.LogFilter{UserID: uid.String(), From: &from, To: &to, Limit: 10},
			wantSQL:  `SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC, created_at ASC LIMIT $4`,
			wantArgs: []any{uid, from, to, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := buildLogQuery(uid, tt.filter)
			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}
