package recur

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/constants"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/utils"
)

type RecurAddCmd struct {
	TaskID    string `arg:"" help:"Template task ID."`
	Frequency string `short:"f" help:"Frequency (daily|weekly|monthly)." required:""`
	Interval  int    `short:"i" help:"Repeat interval." default:"1"`
	Weekdays  string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
	MonthDay  string `help:"Day of month (1-31 or 'last_day') for monthly recurrence."`
	Start     string `help:"Start date (YYYY-MM-DD). Defaults to today."`
	End       string `help:"End date (YYYY-MM-DD)."`
}

func (c *RecurAddCmd) Validate() error {
	if c.Interval < 1 {
		return fmt.Errorf("interval must be at least 1")
	}
	switch models.Frequency(c.Frequency) {
	case models.FrequencyDaily:
	case models.FrequencyWeekly:
		if c.Weekdays == "" {
			return fmt.Errorf("weekdays must be specified for weekly recurrence")
		}
	case models.FrequencyMonthly:
		if c.MonthDay == "" {
			return fmt.Errorf("--month-day must be specified for monthly recurrence")
		}
		if c.MonthDay != constants.LastDaySentinel {
			day, err := strconv.Atoi(c.MonthDay)
			if err != nil || day < 1 || day > 31 {
				return fmt.Errorf("--month-day must be 1-31 or %q", constants.LastDaySentinel)
			}
		}
	default:
		return fmt.Errorf("frequency must be daily, weekly, or monthly")
	}
	return nil
}

func (c *RecurAddCmd) Run(ctx *cli.Context) error {
	// The template must exist; generated instances copy its fields.
	task, err := ctx.Store.GetTask(c.TaskID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.TaskID, err)
	}

	pattern := models.RecurrencePattern{Interval: c.Interval}
	if c.Weekdays != "" {
		days, err := cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		pattern.Days = days
	}
	if c.MonthDay != "" {
		pattern.DayOfMonth = c.MonthDay
	}

	start := c.Start
	if start == "" {
		start = utils.FormatDate(time.Now())
	} else if _, err := utils.ParseDate(start, time.Local); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	rule := models.RecurringTask{
		ID:           uuid.NewString(),
		OwnerID:      ctx.OwnerID,
		ParentTaskID: task.ID,
		Frequency:    models.Frequency(c.Frequency),
		Pattern:      pattern,
		StartDate:    start,
		IsActive:     true,
	}
	if c.End != "" {
		if _, err := utils.ParseDate(c.End, time.Local); err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		end := c.End
		rule.EndDate = &end
	}

	if err := ctx.Store.AddRecurringTask(rule); err != nil {
		return fmt.Errorf("failed to add recurrence rule: %w", err)
	}

	fmt.Printf("Added %s recurrence for %q (ID: %s)\n",
		cli.FormatPattern(rule.Frequency, rule.Pattern), task.Title, rule.ID)
	return nil
}

type RecurListCmd struct{}

func (c *RecurListCmd) Run(ctx *cli.Context) error {
	rules, err := ctx.Store.GetRecurringTasksByOwner(ctx.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to get recurrence rules: %w", err)
	}
	if len(rules) == 0 {
		fmt.Println("No recurrence rules found")
		return nil
	}

	fmt.Println("Recurrence rules:")
	for _, rule := range rules {
		status := "active"
		if !rule.IsActive {
			status = "stopped"
		}
		last := "never"
		if rule.LastGeneratedDate != nil {
			last = *rule.LastGeneratedDate
		}
		fmt.Printf("  %s: %s, %s, last generated %s [%s]\n",
			rule.ParentTaskID, cli.FormatPattern(rule.Frequency, rule.Pattern),
			status, last, rule.ID)
	}
	return nil
}

type RecurStopCmd struct {
	ID string `arg:"" help:"Rule ID to deactivate."`
}

func (c *RecurStopCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeactivateRecurringTask(c.ID); err != nil {
		return fmt.Errorf("failed to deactivate rule: %w", err)
	}
	fmt.Printf("Stopped recurrence rule %s\n", c.ID)
	return nil
}

type RecurDeleteCmd struct {
	ID string `arg:"" help:"Rule ID to delete."`
}

func (c *RecurDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteRecurringTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	fmt.Printf("Deleted recurrence rule %s\n", c.ID)
	return nil
}
