package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/focusflowhq/focusflow/internal/constants"
)

// TimeRange is a concrete interval extracted from free text.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

var (
	rangeRe = regexp.MustCompile(`(?i)(?:from\s+)?\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*(?:to|-)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	timeRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

	// Placeholder timestamps echoed back by upstream text generators, e.g. a
	// literal "YYYY-MM-DDT14:00:00". Treated as absent input.
	placeholderRe = regexp.MustCompile(`(?i)YYYY|\bMM\b|\bDD\b|HH:MM`)
)

// ExtractTimeRange parses a natural-language time range such as
// "from 2pm to 3pm" or "2 to 3pm" out of text. Both times are anchored to
// ref's calendar day in ref's location. When only one side carries an am/pm
// marker it is applied to both sides. Returns false if no range is found.
func ExtractTimeRange(text string, ref time.Time) (TimeRange, bool) {
	m := rangeRe.FindStringSubmatch(text)
	if m == nil {
		return TimeRange{}, false
	}

	startHour, startMin, startMeridiem := m[1], m[2], strings.ToLower(m[3])
	endHour, endMin, endMeridiem := m[4], m[5], strings.ToLower(m[6])

	// A lone meridiem marker covers both sides, so "2 to 3pm" is 14:00-15:00.
	if startMeridiem == "" && endMeridiem != "" {
		startMeridiem = endMeridiem
	}
	if endMeridiem == "" && startMeridiem != "" {
		endMeridiem = startMeridiem
	}

	start, ok := clockTime(ref, startHour, startMin, startMeridiem)
	if !ok {
		return TimeRange{}, false
	}
	end, ok := clockTime(ref, endHour, endMin, endMeridiem)
	if !ok {
		return TimeRange{}, false
	}

	return TimeRange{Start: start, End: end}, true
}

// ParseNaturalLanguageTime parses a single time expression ("2pm", "14:30")
// out of text, anchored to base's calendar day. Returns false if no time is
// found.
func ParseNaturalLanguageTime(text string, base time.Time) (time.Time, bool) {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return clockTime(base, m[1], m[2], strings.ToLower(m[3]))
}

// ValidateTimeBlockTimestamps is the last line of defense before a time
// block is persisted; it always returns a usable interval. Unparseable or
// placeholder strings are treated as absent; an absent start defaults to
// now, an absent end to start plus the default block length, and an end
// that is not strictly after the start is forced forward the same way.
func ValidateTimeBlockTimestamps(startRaw, endRaw string, now time.Time) (time.Time, time.Time) {
	start, ok := parseTimestamp(startRaw, now.Location())
	if !ok {
		start = now
	}

	end, ok := parseTimestamp(endRaw, now.Location())
	if !ok || !end.After(start) {
		end = start.Add(constants.DefaultBlockMinutes * time.Minute)
	}

	return start, end
}

// parseTimestamp accepts RFC3339 and a handful of common datetime layouts.
func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || placeholderRe.MatchString(raw) {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// clockTime resolves an hour/minute/meridiem triple against ref's day.
func clockTime(ref time.Time, hourStr, minStr, meridiem string) (time.Time, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return time.Time{}, false
	}
	minute := 0
	if minStr != "" {
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute > 59 {
			return time.Time{}, false
		}
	}

	switch meridiem {
	case "pm":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return time.Time{}, false
		}
	}

	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location()), true
}
