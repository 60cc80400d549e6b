package dbg

import (
	"strconv"
	"time"
)

const day = 24 * time.Hour

// humanize renders an elapsed duration the way the +suffix expects it:
// sub-second durations in whole milliseconds, everything above rounded to
// the largest fitting unit (s, m, h, d).
func humanize(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	switch {
	case d >= day:
		return strconv.FormatInt(roundDiv(d, day), 10) + "d"
	case d >= time.Hour:
		return strconv.FormatInt(roundDiv(d, time.Hour), 10) + "h"
	case d >= time.Minute:
		return strconv.FormatInt(roundDiv(d, time.Minute), 10) + "m"
	case d >= time.Second:
		return strconv.FormatInt(roundDiv(d, time.Second), 10) + "s"
	default:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	}
}

func roundDiv(d, unit time.Duration) int64 {
	return int64((d + unit/2) / unit)
}
