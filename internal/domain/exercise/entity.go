package exercise

import "time"

// Exercise is one logged activity. Date is a calendar day stored as UTC midnight.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}
