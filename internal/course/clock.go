package course

import (
	"fmt"
	"time"
)

// Clock strings are interpreted relative to a fixed reference day; all
// solver arithmetic uses seconds since the cart's service start.
var referenceDay = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseClock parses an "HH:MM" or "HH:MM:SS" clock string onto the
// reference day
func ParseClock(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return referenceDay.Add(
				time.Duration(t.Hour())*time.Hour +
					time.Duration(t.Minute())*time.Minute +
					time.Duration(t.Second())*time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid clock string %q, want HH:MM or HH:MM:SS", s)
}

// FormatClock renders a timestamp back to HH:MM:SS
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// SpeedsFromTiming derives golfer and cart speeds in m/s from round
// durations: speed = pathLength / (minutes * 60)
func SpeedsFromTiming(lengthMeters, roundMinutes, lapMinutes float64) (float64, float64, error) {
	if roundMinutes <= 0 || lapMinutes <= 0 {
		return 0, 0, fmt.Errorf("round and lap durations must be positive, got %.1f and %.1f", roundMinutes, lapMinutes)
	}
	return lengthMeters / (roundMinutes * 60), lengthMeters / (lapMinutes * 60), nil
}
