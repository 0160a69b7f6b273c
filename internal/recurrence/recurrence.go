package recurrence

import (
	"sort"
	"strconv"
	"time"

	"github.com/focusflowhq/focusflow/internal/constants"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/utils"
)

// ShouldGenerateToday reports whether a rule is due to produce a new task
// instance on the given day. It is idempotent per calendar day: once the
// caller persists last_generated_date = today, subsequent calls on the same
// day return false.
func ShouldGenerateToday(rule models.RecurringTask, today time.Time) bool {
	todayStr := utils.FormatDate(today)

	if rule.StartDate != "" && todayStr < rule.StartDate {
		return false
	}
	if rule.EndDate != nil && todayStr > *rule.EndDate {
		return false
	}
	if rule.LastGeneratedDate == nil {
		return true
	}
	return *rule.LastGeneratedDate != todayStr
}

// GetNextOccurrence computes the occurrence date following lastDate for the
// given frequency and pattern. Callers pass the later of last_generated_date
// and start_date. The result is normalized to midnight in lastDate's
// location.
//
// The daily pattern's interval field is treated as informational: generation
// dedup is per calendar day, so daily rules advance one day at a time. See
// DESIGN.md for the rationale.
func GetNextOccurrence(lastDate time.Time, freq models.Frequency, pattern models.RecurrencePattern) time.Time {
	last := utils.StartOfDay(lastDate)

	switch freq {
	case models.FrequencyWeekly:
		return nextWeekday(last, pattern.Days)
	case models.FrequencyMonthly:
		return nextMonthly(last, pattern.DayOfMonth)
	default:
		return last.AddDate(0, 0, 1)
	}
}

// nextWeekday finds the earliest weekday ordinal strictly after lastDate's
// weekday, wrapping into the following week when none remains. The same
// weekday as lastDate is never chosen.
func nextWeekday(last time.Time, days []int) time.Time {
	if len(days) == 0 {
		return last.AddDate(0, 0, 1)
	}

	sorted := append([]int(nil), days...)
	sort.Ints(sorted)

	current := int(last.Weekday())
	for _, d := range sorted {
		if d > current {
			return last.AddDate(0, 0, d-current)
		}
	}
	// Wrap to the earliest ordinal next week.
	return last.AddDate(0, 0, 7-current+sorted[0])
}

// nextMonthly advances into the month after lastDate's, clamping the target
// day to the month's length so "the 31st" degrades gracefully in February.
func nextMonthly(last time.Time, dayOfMonth string) time.Time {
	firstOfNext := time.Date(last.Year(), last.Month()+1, 1, 0, 0, 0, 0, last.Location())

	if dayOfMonth == constants.LastDaySentinel {
		return utils.LastDayOfMonth(firstOfNext)
	}

	day, err := strconv.Atoi(dayOfMonth)
	if err != nil || day < 1 {
		day = last.Day()
	}
	if max := utils.DaysInMonth(firstOfNext); day > max {
		day = max
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, 0, 0, 0, 0, last.Location())
}
