// Package booking holds the time-slot rules for the shared meeting room:
// which intervals are bookable and when two intervals collide. It performs
// no I/O; callers inject the current time.
package booking

import (
	"strings"
	"time"
)

// Booking window for the shared room, in local wall-clock time.
const (
	OpeningHour = 8
	ClosingHour = 19
)

// MinDuration is the shortest bookable interval.
const MinDuration = time.Hour

// Reason identifies why a request was rejected.
type Reason string

const (
	ReasonMissingField         Reason = "missing_field"
	ReasonInvalidFormat        Reason = "invalid_format"
	ReasonInvertedRange        Reason = "inverted_range"
	ReasonInPast               Reason = "in_past"
	ReasonWeekendNotAllowed    Reason = "weekend_not_allowed"
	ReasonOutsideBusinessHours Reason = "outside_business_hours"
	ReasonTooShort             Reason = "too_short"
)

// ValidationError reports the first rule a request violated.
type ValidationError struct {
	Reason  Reason
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return "validation failed"
	}
	return e.Message
}

// Input carries the raw, caller-supplied fields of a reservation request.
type Input struct {
	Title string
	Start string
	End   string
}

// Interval is a validated, normalized booking interval. Title is trimmed and
// timestamps are truncated to minute precision.
type Interval struct {
	Title string
	Start time.Time
	End   time.Time
}

// timestampLayouts are tried in order when parsing Start and End. The short
// forms are interpreted as local wall-clock time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Validate checks a candidate reservation against the booking rules. Checks
// run in a fixed order and the first violation wins. On success the returned
// interval is the normalized form callers should persist.
func Validate(input Input, now time.Time) (Interval, error) {
	title := strings.TrimSpace(input.Title)
	rawStart := strings.TrimSpace(input.Start)
	rawEnd := strings.TrimSpace(input.End)

	switch {
	case title == "":
		return Interval{}, missing("title")
	case rawStart == "":
		return Interval{}, missing("start")
	case rawEnd == "":
		return Interval{}, missing("end")
	}

	start, ok := parseTimestamp(rawStart)
	if !ok {
		return Interval{}, invalidFormat("start")
	}
	end, ok := parseTimestamp(rawEnd)
	if !ok {
		return Interval{}, invalidFormat("end")
	}

	start = start.Truncate(time.Minute)
	end = end.Truncate(time.Minute)

	if !start.Before(end) {
		return Interval{}, &ValidationError{
			Reason:  ReasonInvertedRange,
			Field:   "end",
			Message: "end must be after start",
		}
	}

	if start.Before(now) {
		return Interval{}, &ValidationError{
			Reason:  ReasonInPast,
			Field:   "start",
			Message: "cannot book in the past",
		}
	}

	if isWeekend(start) || isWeekend(end) {
		return Interval{}, &ValidationError{
			Reason:  ReasonWeekendNotAllowed,
			Field:   "start",
			Message: "bookings are allowed Monday through Friday only",
		}
	}

	if !withinBusinessHours(start, end) {
		return Interval{}, &ValidationError{
			Reason:  ReasonOutsideBusinessHours,
			Field:   "start",
			Message: "bookings are allowed between 08:00 and 19:00",
		}
	}

	if end.Sub(start) < MinDuration {
		return Interval{}, &ValidationError{
			Reason:  ReasonTooShort,
			Field:   "end",
			Message: "minimum duration is 1 hour",
		}
	}

	return Interval{Title: title, Start: start, End: end}, nil
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// withinBusinessHours checks only the time-of-day component of each endpoint,
// not the calendar dates, so a span crossing midnight is not rejected here.
func withinBusinessHours(start, end time.Time) bool {
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	return startMinutes >= OpeningHour*60 && endMinutes <= ClosingHour*60
}

func missing(field string) *ValidationError {
	return &ValidationError{
		Reason:  ReasonMissingField,
		Field:   field,
		Message: field + " is required",
	}
}

func invalidFormat(field string) *ValidationError {
	return &ValidationError{
		Reason:  ReasonInvalidFormat,
		Field:   field,
		Message: "invalid timestamp format for " + field,
	}
}
