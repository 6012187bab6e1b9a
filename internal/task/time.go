package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound of a minute-of-day offset.
const MinutesPerDay = 24 * 60

// EndOfDay is the only accepted time string at MinutesPerDay.
// It can appear as an end time, never as a start time.
const EndOfDay = "24:00"

// Period is the AM/PM marker of a 12-hour clock time.
type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// ErrInvalidPeriod is returned when a period is neither AM nor PM.
var ErrInvalidPeriod = errors.New("period must be AM or PM")

// ParsePeriod parses "am" or "pm" in any case.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return AM, nil
	case "PM":
		return PM, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// To24Hour converts a 12-hour clock time to "HH:MM".
// time12 may be "H", "H:MM" or "HH:MM" with an hour between 1 and 12.
// 12 AM is midnight and 12 PM is noon.
func To24Hour(time12 string, period Period) (string, error) {
	hourStr, minStr, hasMin := strings.Cut(strings.TrimSpace(time12), ":")
	if hourStr == "" || len(hourStr) > 2 || !isDigits(hourStr) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, time12)
	}
	hour, _ := strconv.Atoi(hourStr)
	if hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: hour %d out of range in %q", ErrInvalidTimeFormat, hour, time12)
	}

	minute := 0
	if hasMin {
		if len(minStr) != 2 || !isDigits(minStr) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, time12)
		}
		minute, _ = strconv.Atoi(minStr)
		if minute > 59 {
			return "", fmt.Errorf("%w: minute %d out of range in %q", ErrInvalidTimeFormat, minute, time12)
		}
	}

	switch period {
	case AM:
		if hour == 12 {
			hour = 0
		}
	case PM:
		if hour != 12 {
			hour += 12
		}
	default:
		return "", fmt.Errorf("%w: %w: %q", ErrInvalidTimeFormat, ErrInvalidPeriod, period)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// To12Hour converts "HH:MM" to a zero-padded 12-hour time and its period.
func To12Hour(time24 string) (string, Period, error) {
	m, err := ToMinutes(time24)
	if err != nil {
		return "", "", err
	}
	hour := (m / 60) % 24
	period := AM
	if hour >= 12 {
		period = PM
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}
	return fmt.Sprintf("%02d:%02d", hour, m%60), period, nil
}

// ToMinutes converts "HH:MM" to minutes since midnight.
// "24:00" is accepted and returns MinutesPerDay.
func ToMinutes(t string) (int, error) {
	if t == EndOfDay {
		return MinutesPerDay, nil
	}
	if len(t) != 5 || t[2] != ':' || !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	return hours*60 + mins, nil
}

// FromMinutes converts minutes since midnight to "HH:MM".
// The input is taken modulo one day, so negative values wrap backwards.
func FromMinutes(m int) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatEnd is FromMinutes for interval ends: a value of exactly
// MinutesPerDay is rendered as "24:00" instead of wrapping to "00:00".
func FormatEnd(m int) string {
	if m == MinutesPerDay {
		return EndOfDay
	}
	return FromMinutes(m)
}

// FormatDuration renders minutes as "2h 30m", "2h" or "45m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Interval is a half-open [Start, End) range of minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// ParseInterval builds an Interval from two "HH:MM" strings.
// It does not check that end is after start.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return Interval{}, fmt.Errorf("start time: %w", err)
	}
	if s == MinutesPerDay {
		return Interval{}, fmt.Errorf("start time: %w: %q", ErrInvalidTimeFormat, start)
	}
	e, err := ToMinutes(end)
	if err != nil {
		return Interval{}, fmt.Errorf("end time: %w", err)
	}
	return Interval{Start: s, End: e}, nil
}

// Duration returns the length of the interval in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Valid reports whether the interval is non-empty and within one day.
func (i Interval) Valid() bool {
	return i.Start >= 0 && i.End <= MinutesPerDay && i.End > i.Start
}

// Overlaps reports whether two intervals share time.
// Touching endpoints do not overlap: s1 < e2 AND s2 < e1.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// String renders the interval as "HH:MM-HH:MM".
func (i Interval) String() string {
	return FromMinutes(i.Start) + "-" + FormatEnd(i.End)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
