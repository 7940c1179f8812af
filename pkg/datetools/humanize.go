package datetools

import (
	"fmt"
	"time"

	"github.com/fastygo/homepage/pkg/todotxt"
)

// Humanize describes date relative to today, e.g. "today", "tomorrow",
// "3 days ago".
func Humanize(today, date todotxt.Date) string {
	days := int64(DaysUntilToday(today, date))
	return phrase(forSign(days), abs(days), 0, 0, 0)
}

// HumanizeDuration describes a signed duration measured as now - then using
// the coarsest non-zero unit: "2 hours ago", "1 minute from now".
func HumanizeDuration(d time.Duration) string {
	when := ClassifyDuration(d)
	if d < 0 {
		d = -d
	}
	return phrase(when,
		int64(d/(24*time.Hour)),
		int64(d/time.Hour),
		int64(d/time.Minute),
		int64(d/time.Second))
}

func phrase(when When, days, hours, minutes, seconds int64) string {
	var suffix string
	switch when {
	case Future:
		suffix = "from now"
	case Past:
		suffix = "ago"
	default:
		return "today"
	}

	switch {
	case days == 1 && when == Future:
		return "tomorrow"
	case days == 1:
		return "yesterday"
	case days > 0:
		return unit(days, "day", suffix)
	case hours > 0:
		return unit(hours, "hour", suffix)
	case minutes > 0:
		return unit(minutes, "minute", suffix)
	default:
		return unit(seconds, "second", suffix)
	}
}

func unit(n int64, name, suffix string) string {
	if n != 1 {
		name += "s"
	}
	return fmt.Sprintf("%d %s %s", n, name, suffix)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
