// Package nlp parses one-line quick-add commands such as "Gym at 5pm for 1h".
package nlp

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/timebox/internal/task"
)

// DefaultDuration is the length in minutes used when the input names none.
const DefaultDuration = 60

// DefaultStart is where a block without a time begins on days other than today.
const DefaultStart = "09:00"

// Parse errors.
var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrNoTime          = errors.New("no start time given")
	ErrPastMidnight    = errors.New("task would end after midnight")
)

var (
	timePattern     = regexp.MustCompile(`(?i)(?:\bat\s+|@\s*)(\d{1,2}(?::\d{2})?)\s*(am|pm)?\b`)
	durationPattern = regexp.MustCompile(`(?i)\bfor\s*(\d+(?:\.\d+)?)\s*(hours|hour|hrs|hr|h|minutes|mins|min|m)\b`)
	spaces          = regexp.MustCompile(`\s+`)
)

// Command is a parsed quick-add line.
type Command struct {
	Title    string
	Time     string // HH:MM, empty when the input names no time
	Duration int    // minutes
}

// Parse extracts a start time ("at 5pm", "at 5:30 pm", "@17:00") and a duration
// ("for 2h", "for 1.5 hours", "for 30m") from input. Whatever is left, with
// whitespace collapsed, is the title.
func Parse(input string) (Command, error) {
	cmd := Command{Duration: DefaultDuration}
	text := input

	if m := timePattern.FindStringSubmatchIndex(text); m != nil {
		clock := text[m[2]:m[3]]
		period := ""
		if m[4] >= 0 {
			period = text[m[4]:m[5]]
		}
		t, err := toClock(clock, period)
		if err != nil {
			return Command{}, err
		}
		cmd.Time = t
		text = text[:m[0]] + " " + text[m[1]:]
	}

	if m := durationPattern.FindStringSubmatch(text); m != nil {
		d, err := toMinutes(m[1], m[2])
		if err != nil {
			return Command{}, err
		}
		cmd.Duration = d
		text = strings.Replace(text, m[0], " ", 1)
	}

	cmd.Title = strings.TrimSpace(spaces.ReplaceAllString(text, " "))
	return cmd, nil
}

// toClock converts a matched clock and optional am/pm to HH:MM.
// Without a period the clock is read as 24-hour time.
func toClock(clock, period string) (string, error) {
	if period != "" {
		p, err := task.ParsePeriod(period)
		if err != nil {
			return "", err
		}
		return task.To24Hour(clock, p)
	}

	hour, minute, found := strings.Cut(clock, ":")
	if !found {
		minute = "00"
	}
	if len(hour) == 1 {
		hour = "0" + hour
	}
	t := hour + ":" + minute
	if _, err := task.ToMinutes(t); err != nil {
		return "", err
	}
	return t, nil
}

func toMinutes(value, unit string) (int, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}
	if strings.HasPrefix(strings.ToLower(unit), "h") {
		v *= 60
	}
	minutes := int(math.Round(v))
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: %s%s", ErrInvalidDuration, value, unit)
	}
	return minutes, nil
}

// Times returns the start and end of the command's time block.
func (c Command) Times() (start, end string, err error) {
	if c.Time == "" {
		return "", "", ErrNoTime
	}
	return c.TimesFrom(c.Time)
}

// TimesFrom returns a block of the command's duration starting at start.
func (c Command) TimesFrom(start string) (string, string, error) {
	m, err := task.ToMinutes(start)
	if err != nil {
		return "", "", err
	}
	endMinute := m + c.Duration
	if endMinute > task.MinutesPerDay {
		return "", "", fmt.Errorf("%w: %s + %s", ErrPastMidnight, start, task.FormatDuration(c.Duration))
	}
	return start, task.FormatEnd(endMinute), nil
}

// StartAfter returns where a block without a time should begin on date: the next
// quarter hour at or after now when date is today, DefaultStart otherwise.
func StartAfter(date string, now time.Time) (string, error) {
	if date != now.Format(task.DateLayout) {
		return DefaultStart, nil
	}
	m := now.Hour()*60 + now.Minute()
	m = (m + 14) / 15 * 15
	if m >= task.MinutesPerDay {
		return "", ErrPastMidnight
	}
	return task.FromMinutes(m), nil
}
