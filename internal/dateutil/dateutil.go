// Package dateutil parses and formats the YYYY-MM-DD dates tasks are filed under.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layout is the calendar date format used for task dates.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrDateInPast         = errors.New("cannot schedule in the past")
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Format renders t as YYYY-MM-DD in t's location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns now's calendar date as YYYY-MM-DD.
func Today(now time.Time) string {
	return Format(now)
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Valid reports whether s is a real YYYY-MM-DD date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// Shift moves a YYYY-MM-DD date by days.
func Shift(date string, days int) (string, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return Format(t.AddDate(0, 0, days)), nil
}

// DateRange represents a validated, inclusive date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// Bounds returns the range as YYYY-MM-DD strings.
func (r *DateRange) Bounds() (start, end string) {
	return Format(r.Start), Format(r.End)
}

// Dates lists every date in the range, oldest first.
func (r *DateRange) Dates() []string {
	var dates []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, Format(d))
	}
	return dates
}

// LastNDays returns the n dates ending at end's date, oldest first.
func LastNDays(end time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	end = TruncateToDay(end)
	dates := make([]string, n)
	for i := 0; i < n; i++ {
		dates[i] = Format(end.AddDate(0, 0, i-n+1))
	}
	return dates
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is day 7 in the ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseRelativeDate resolves a date for scheduling. It accepts:
//   - Empty string or "today": relativeTo's date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "next-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday"
//
// All inputs are case-insensitive. It returns ErrDateInPast for dates before
// relativeTo's day and ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (string, error) {
	today := TruncateToDay(relativeTo)
	input := normalize(s)
	if input == "yesterday" {
		return "", ErrDateInPast
	}

	result, err := resolve(input, today)
	if err != nil {
		return "", err
	}
	if result.Before(today) {
		return "", ErrDateInPast
	}
	return Format(result), nil
}

// ParseDay resolves a date for viewing. It accepts everything ParseRelativeDate
// does plus "yesterday" and past dates.
func ParseDay(s string, relativeTo time.Time) (string, error) {
	today := TruncateToDay(relativeTo)
	input := normalize(s)
	if input == "yesterday" {
		return Format(today.AddDate(0, 0, -1)), nil
	}

	result, err := resolve(input, today)
	if err != nil {
		return "", err
	}
	return Format(result), nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func resolve(input string, today time.Time) (time.Time, error) {
	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return nextWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}
	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	result, err := time.ParseInLocation(Layout, input, today.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
