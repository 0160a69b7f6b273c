package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/scheduler"
	"github.com/focusflowhq/focusflow/internal/storage"
	"github.com/focusflowhq/focusflow/internal/sync"
)

type Context struct {
	Store     storage.Provider
	Engine    *sync.Engine
	Scheduler *scheduler.Scheduler
	OwnerID   string
}

// ReportSync prints an engine result. Sync is best-effort and secondary, so
// a failed result is surfaced as a note, never as a command error.
func ReportSync(label string, res sync.Result) {
	if res.Success {
		fmt.Printf("%s: %s\n", label, res.Message)
		return
	}
	fmt.Printf("%s skipped: %s\n", label, res.Message)
}

// ParseWeekdays parses a comma-separated list of weekday names or ordinals
// (0=Sunday..6=Saturday).
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// FormatPattern formats a recurrence rule into a human-readable string.
func FormatPattern(freq models.Frequency, pattern models.RecurrencePattern) string {
	switch freq {
	case models.FrequencyDaily:
		if pattern.Interval > 1 {
			return fmt.Sprintf("daily (every %d days)", pattern.Interval)
		}
		return "daily"
	case models.FrequencyWeekly:
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		var days []string
		for _, d := range pattern.Days {
			if d >= 0 && d <= 6 {
				days = append(days, names[d])
			}
		}
		return fmt.Sprintf("weekly on %s", strings.Join(days, ","))
	case models.FrequencyMonthly:
		return fmt.Sprintf("monthly on day %s", pattern.DayOfMonth)
	default:
		return "unknown"
	}
}
