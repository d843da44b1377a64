package exercise

import "time"

// DefaultLogLimit caps a log query when the caller gives no limit.
const DefaultLogLimit = 500

// LogFilter selects a user's exercises. From and To are inclusive calendar-day bounds and
// are ignored when nil.
type LogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

func (f LogFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultLogLimit
	}
	return f.Limit
}

func (f LogFilter) HasRange() bool {
	return f.From != nil || f.To != nil
}

// Matches reports whether e passes the user and date predicates. The limit is not applied.
func (f LogFilter) Matches(e Exercise) bool {
	if e.UserID != f.UserID {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}
