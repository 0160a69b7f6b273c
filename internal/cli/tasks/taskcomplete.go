package tasks

import (
	"fmt"
	"time"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/models"
)

type TaskCompleteCmd struct {
	ID string `arg:"" help:"Task ID to complete."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if task.Status == models.TaskStatusCompleted {
		fmt.Printf("Task %q is already completed\n", task.Title)
		return nil
	}

	task.Status = models.TaskStatusCompleted
	task.UpdatedAt = time.Now()
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("Completed task: %s\n", task.Title)
	return nil
}

type TaskCancelCmd struct {
	ID string `arg:"" help:"Task ID to cancel."`
}

func (c *TaskCancelCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	task.Status = models.TaskStatusCancelled
	task.UpdatedAt = time.Now()
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}

	fmt.Printf("Cancelled task: %s\n", task.Title)
	return nil
}
