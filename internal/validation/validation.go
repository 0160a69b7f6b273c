package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/focusflowhq/focusflow/internal/constants"
	"github.com/focusflowhq/focusflow/internal/models"
)

// ValidateTask checks the fields of a task before a store write.
func ValidateTask(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if task.OwnerID == "" {
		return fmt.Errorf("task owner id cannot be empty")
	}
	switch task.Status {
	case models.TaskStatusPending, models.TaskStatusInProgress,
		models.TaskStatusCompleted, models.TaskStatusCancelled:
	default:
		return fmt.Errorf("invalid task status %q", task.Status)
	}
	if task.EstimatedDuration != nil && *task.EstimatedDuration <= 0 {
		return fmt.Errorf("estimated duration must be positive, got %d", *task.EstimatedDuration)
	}
	return nil
}

// ValidateTimeBlock checks interval ordering and required fields.
func ValidateTimeBlock(block models.TimeBlock) error {
	if block.OwnerID == "" {
		return fmt.Errorf("time block owner id cannot be empty")
	}
	if !block.EndTime.After(block.StartTime) {
		return fmt.Errorf("time block end time must be after start time")
	}
	switch block.Type {
	case models.BlockTypeWork, models.BlockTypeBreak, models.BlockTypeMeeting,
		models.BlockTypePersonal, models.BlockTypeExercise,
		models.BlockTypeLearning, models.BlockTypeBuffer:
	default:
		return fmt.Errorf("invalid time block type %q", block.Type)
	}
	return nil
}

// ValidateRecurringTask checks a rule and its frequency-specific pattern.
// Patterns arrive as open JSON from callers, so this is the gate that turns
// them into a trustworthy tagged union.
func ValidateRecurringTask(rule models.RecurringTask) error {
	if rule.ParentTaskID == "" {
		return fmt.Errorf("recurring task must reference a parent task")
	}
	if rule.StartDate == "" {
		return fmt.Errorf("recurring task start date cannot be empty")
	}
	return ValidateRecurrencePattern(rule.Frequency, rule.Pattern)
}

// ValidateRecurrencePattern checks the pattern fields required by the
// given frequency.
func ValidateRecurrencePattern(freq models.Frequency, pattern models.RecurrencePattern) error {
	if pattern.Interval < 1 {
		return fmt.Errorf("recurrence interval must be at least 1, got %d", pattern.Interval)
	}

	switch freq {
	case models.FrequencyDaily:
		return nil
	case models.FrequencyWeekly:
		if len(pattern.Days) == 0 {
			return fmt.Errorf("weekly recurrence requires at least one weekday")
		}
		for _, d := range pattern.Days {
			if d < 0 || d > 6 {
				return fmt.Errorf("weekday ordinal must be 0-6, got %d", d)
			}
		}
		return nil
	case models.FrequencyMonthly:
		if pattern.DayOfMonth == constants.LastDaySentinel {
			return nil
		}
		day, err := strconv.Atoi(pattern.DayOfMonth)
		if err != nil {
			return fmt.Errorf("monthly recurrence day_of_month must be 1-31 or %q, got %q",
				constants.LastDaySentinel, pattern.DayOfMonth)
		}
		if day < 1 || day > 31 {
			return fmt.Errorf("monthly recurrence day_of_month must be 1-31, got %d", day)
		}
		return nil
	default:
		return fmt.Errorf("invalid recurrence frequency %q", freq)
	}
}
