package tasks

import (
	"fmt"
	"strings"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/utils"
)

type TaskListCmd struct {
	Status  string `short:"s" help:"Filter by status (pending|in_progress|completed|cancelled)."`
	ShowIDs bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var tasks []models.Task
	var err error
	if c.Status != "" {
		tasks, err = ctx.Store.GetTasksByStatus(ctx.OwnerID, models.TaskStatus(c.Status))
	} else {
		tasks, err = ctx.Store.GetTasksByOwner(ctx.OwnerID)
	}
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		var details []string
		details = append(details, string(task.Status))
		if task.EstimatedDuration != nil {
			details = append(details, fmt.Sprintf("%dmin", *task.EstimatedDuration))
		}
		if task.DueDate != nil {
			details = append(details, "due "+utils.FormatDate(*task.DueDate))
		}
		if task.IsUrgent {
			details = append(details, "urgent")
		}
		if task.IsImportant {
			details = append(details, "important")
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" [%s]", task.ID)
		}
		fmt.Printf("  %s%s (%s)\n", task.Title, idStr, strings.Join(details, ", "))
	}
	return nil
}
