// Package calendar converts client supplied dates into timezone independent calendar days.
package calendar

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical day format used in every API response.
const Layout = "Mon Jan 02 2006"

var ErrInvalidDate = errors.New("invalid date")

// Parse returns the calendar day described by raw as UTC midnight.
//
// A blank raw value yields the day of now in now's location. Otherwise raw must be
// YYYY-MM-DD; month and day outside their range roll over the way time.Date does.
func Parse(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Day(now), nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}

	nums := make([]int, 0, 3)
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		nums = append(nums, v)
	}

	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC), nil
}

// Day truncates t to its calendar day, keeping the year, month and day seen in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Normalize parses raw and renders it in Layout.
func Normalize(raw string, now time.Time) (string, error) {
	t, err := Parse(raw, now)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}
