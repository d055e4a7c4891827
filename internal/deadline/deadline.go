// Package deadline turns free-text deadline input into a concrete
// timestamp. Parsing is pure: the caller supplies the reference time,
// so behavior is fully reproducible in tests.
package deadline

import (
	"fmt"
	"strings"
	"time"
)

// UnparseableError reports input that matches no part of the deadline
// grammar. It carries the original text for user display.
type UnparseableError struct {
	Input string
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("cannot parse deadline %q", e.Input)
}

// Layouts of the accepted date/time patterns, checked in order.
const (
	layoutDateTime = "02.01.2006 15:04"
	layoutDate     = "02.01.2006"
	layoutTime     = "15:04"
)

// tomorrow is the single recognized word literal.
const tomorrow = "завтра"

// endOfDay pins a deadline with no explicit time to 23:59 of its day.
func endOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 23, 59, 0, 0, loc)
}

// Parse converts text into a deadline relative to now.
//
// Accepted forms, in priority order: the word "завтра" (tomorrow,
// 23:59), "DD.MM.YYYY HH:MM" (exact), "DD.MM.YYYY" (that day, 23:59),
// and "HH:MM" (the next occurrence of that clock time — today if it is
// still ahead of now, otherwise tomorrow). Blank input is valid and
// yields nil: the task has no deadline. Anything else fails with
// *UnparseableError.
func Parse(text string, now time.Time) (*time.Time, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return nil, nil
	}

	loc := now.Location()

	if t == tomorrow {
		d := now.AddDate(0, 0, 1)
		res := endOfDay(d.Year(), d.Month(), d.Day(), loc)
		return &res, nil
	}

	if parsed, err := time.ParseInLocation(layoutDateTime, t, loc); err == nil {
		return &parsed, nil
	}

	if parsed, err := time.ParseInLocation(layoutDate, t, loc); err == nil {
		res := endOfDay(parsed.Year(), parsed.Month(), parsed.Day(), loc)
		return &res, nil
	}

	if parsed, err := time.ParseInLocation(layoutTime, t, loc); err == nil {
		res := time.Date(
			now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, loc,
		)
		if !res.After(now) {
			res = res.AddDate(0, 0, 1)
		}
		return &res, nil
	}

	return nil, &UnparseableError{Input: text}
}
