package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingFields       = errors.New("please select a date and time")
	ErrNonFutureDate       = errors.New("please select a future date and time")
	ErrNonPositiveDuration = errors.New("please set a duration greater than 0")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// EndTimeResolver computes the end instant of a new countdown for the given
// mode, evaluated at now.
type EndTimeResolver func(mode Mode, now time.Time) (time.Time, error)

// Fields holds the raw user input for both modes
type Fields struct {
	Date    string // YYYY-MM-DD
	Time    string // HH:MM
	Hours   string
	Minutes string
	Seconds string
}

// Resolver returns an EndTimeResolver over the fields
func (f Fields) Resolver() EndTimeResolver {
	return func(mode Mode, now time.Time) (time.Time, error) {
		if mode == ModeDuration {
			return ResolveDuration(f.Hours, f.Minutes, f.Seconds, now)
		}
		return ResolveTarget(f.Date, f.Time, now)
	}
}

// DurationFields builds duration-mode fields from a Go duration
func DurationFields(d time.Duration) Fields {
	total := int64(d / time.Second)
	return Fields{
		Hours:   strconv.FormatInt(total/secondsPerHour, 10),
		Minutes: strconv.FormatInt((total%secondsPerHour)/secondsPerMinute, 10),
		Seconds: strconv.FormatInt(total%secondsPerMinute, 10),
	}
}

// ResolveTarget combines a date and time of day into a local instant with
// zero seconds. The instant must be strictly after now.
func ResolveTarget(date, clock string, now time.Time) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, ErrMissingFields
	}

	day, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrMissingFields, date)
	}
	tod, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrMissingFields, clock)
	}

	target := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.Local)
	if !target.After(now) {
		return time.Time{}, ErrNonFutureDate
	}
	return target, nil
}

// ResolveDuration adds hours, minutes and seconds to now. Blank fields count
// as zero; the total must be positive.
func ResolveDuration(hours, minutes, seconds string, now time.Time) (time.Time, error) {
	h, err := parseDurationPart("hours", hours, maxDurationSeconds/secondsPerHour)
	if err != nil {
		return time.Time{}, err
	}
	m, err := parseDurationPart("minutes", minutes, maxDurationSeconds/secondsPerMinute)
	if err != nil {
		return time.Time{}, err
	}
	s, err := parseDurationPart("seconds", seconds, maxDurationSeconds)
	if err != nil {
		return time.Time{}, err
	}

	total := h*secondsPerHour + m*secondsPerMinute + s
	if total > maxDurationSeconds {
		return time.Time{}, fmt.Errorf("%w: duration too long", ErrNonPositiveDuration)
	}
	if total <= 0 {
		return time.Time{}, ErrNonPositiveDuration
	}
	return now.Add(time.Duration(total) * time.Second), nil
}

// maxDurationSeconds keeps now+total within time.Duration range
const maxDurationSeconds = int64(math.MaxInt64 / int64(time.Second))

// DurationSeconds totals whole hours, minutes and seconds. ok is false when a
// part is negative or the total does not fit a countdown.
func DurationSeconds(hours, minutes, seconds int) (total int64, ok bool) {
	h, m, s := int64(hours), int64(minutes), int64(seconds)
	if h < 0 || m < 0 || s < 0 ||
		h > maxDurationSeconds/secondsPerHour ||
		m > maxDurationSeconds/secondsPerMinute ||
		s > maxDurationSeconds {
		return 0, false
	}
	total = h*secondsPerHour + m*secondsPerMinute + s
	if total > maxDurationSeconds {
		return 0, false
	}
	return total, true
}

func parseDurationPart(name, raw string, limit int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative whole number, got %q", ErrNonPositiveDuration, name, raw)
	}
	if n > limit {
		return 0, fmt.Errorf("%w: %s is too large", ErrNonPositiveDuration, name)
	}
	return n, nil
}

// ValidationKind maps a start failure onto its short name, or "" when err is
// not a validation failure.
func ValidationKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "missing-fields"
	case errors.Is(err, ErrNonFutureDate):
		return "non-future-date"
	case errors.Is(err, ErrNonPositiveDuration):
		return "non-positive-duration"
	}
	return ""
}

// IsValidationError reports whether err is one of the start validation failures
func IsValidationError(err error) bool {
	return ValidationKind(err) != ""
}
