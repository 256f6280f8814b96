package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeFormat marks a clock string that is not 24-hour "HH:MM".
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidInterval marks a lesson whose end is strictly before its start.
	ErrInvalidInterval = errors.New("invalid interval")
)

// ParseClock converts a strict 24-hour "HH:MM" string into minutes of day.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Hours returns the clamped non-negative span between two minute-of-day
// values, in hours. The clamp makes it safe for display purposes only;
// accumulation goes through LessonHours which rejects bad intervals.
func Hours(startMin, endMin int) float64 {
	d := endMin - startMin
	if d < 0 {
		d = 0
	}
	return float64(d) / 60.0
}

// LessonHours parses both clock strings and returns the lesson duration in
// hours. End strictly before start is ErrInvalidInterval rather than a silent
// zero, so callers can exclude the lesson and report it.
func LessonHours(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		return 0, errIntervalFor(start, end)
	}
	return float64(e-s) / 60.0, nil
}

func errIntervalFor(start, end string) error {
	return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
}
