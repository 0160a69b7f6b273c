package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/utils"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `help:"Task description."`
	Duration    int    `short:"d" help:"Estimated duration in minutes."`
	Due         string `help:"Due date (YYYY-MM-DD)."`
	Urgent      bool   `short:"u" help:"Mark the task urgent."`
	Important   bool   `short:"i" help:"Mark the task important."`
	Tags        string `short:"t" help:"Comma-separated tags."`
	Color       string `help:"Display color."`
	NoSync      bool   `help:"Skip deriving a time block from the duration."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if c.Due != "" {
		if _, err := utils.ParseDate(c.Due, time.Local); err != nil {
			return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	task := models.Task{
		ID:          uuid.NewString(),
		OwnerID:     ctx.OwnerID,
		Title:       c.Title,
		Description: c.Description,
		IsUrgent:    c.Urgent,
		IsImportant: c.Important,
		Status:      models.TaskStatusPending,
		Color:       c.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Duration > 0 {
		duration := c.Duration
		task.EstimatedDuration = &duration
	}
	if c.Due != "" {
		due, err := utils.ParseDate(c.Due, time.Local)
		if err != nil {
			return err
		}
		task.DueDate = &due
	}
	if c.Tags != "" {
		for _, tag := range strings.Split(c.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				task.Tags = append(task.Tags, tag)
			}
		}
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)

	if !c.NoSync && task.EstimatedDuration != nil {
		cli.ReportSync("sync", ctx.Engine.SyncTaskToTimeBlock(task))
	}
	return nil
}
