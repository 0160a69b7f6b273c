package models

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// RecurrencePattern carries the frequency-specific parameters of a rule.
// Only the fields relevant to the rule's frequency are meaningful:
// Interval for all frequencies, Days for weekly (weekday ordinals,
// 0=Sunday..6=Saturday), DayOfMonth for monthly (a numeric string "1".."31"
// or the sentinel "last_day").
type RecurrencePattern struct {
	Interval   int    `json:"interval"`
	Days       []int  `json:"days,omitempty"`
	DayOfMonth string `json:"day_of_month,omitempty"`
}

// RecurringTask is a rule for periodically generating new Task instances
// from a template task. Dates are YYYY-MM-DD strings; LastGeneratedDate is
// written only by the generation scheduler.
type RecurringTask struct {
	ID                string            `json:"id"`
	OwnerID           string            `json:"owner_id"`
	ParentTaskID      string            `json:"parent_task_id"`
	Frequency         Frequency         `json:"frequency"`
	Pattern           RecurrencePattern `json:"recurrence_pattern"`
	StartDate         string            `json:"start_date"`
	EndDate           *string           `json:"end_date,omitempty"`
	LastGeneratedDate *string           `json:"last_generated_date,omitempty"`
	IsActive          bool              `json:"is_active"`
}
