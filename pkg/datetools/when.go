// Package datetools places dates and durations relative to an injected
// "today" and renders them as short human phrases.
//
// The sign convention follows the distance from the date to today:
// diff = today - date. A negative diff is in the Future, a positive one in
// the Past.
package datetools

import (
	"time"

	"github.com/fastygo/homepage/pkg/todotxt"
)

// When is the position of a date relative to today.
type When int

const (
	Today When = iota
	Past
	Future
)

func (w When) String() string {
	switch w {
	case Past:
		return "past"
	case Future:
		return "future"
	default:
		return "today"
	}
}

func (w When) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// DaysUntilToday returns today - date in whole days.
func DaysUntilToday(today, date todotxt.Date) int {
	return today.DaysSince(date)
}

// Classify places date relative to today.
func Classify(today, date todotxt.Date) When {
	return forSign(int64(DaysUntilToday(today, date)))
}

// ClassifyDuration classifies a signed duration measured as now - then.
func ClassifyDuration(d time.Duration) When {
	return forSign(int64(d))
}

func forSign(diff int64) When {
	switch {
	case diff < 0:
		return Future
	case diff > 0:
		return Past
	default:
		return Today
	}
}

// TodayOf returns the calendar day of now in now's location.
func TodayOf(now time.Time) todotxt.Date {
	return todotxt.DateOf(now)
}
