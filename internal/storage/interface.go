package storage

import "github.com/focusflowhq/focusflow/internal/models"

// Provider is the persistence contract consumed by the sync engine, the
// generation scheduler, and the CLI. Implementations: sqlite (default),
// postgres, and an in-memory store used by tests.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetTasksByOwner(ownerID string) ([]models.Task, error)
	GetTasksByStatus(ownerID string, status models.TaskStatus) ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// TimeBlocks
	AddTimeBlock(models.TimeBlock) error
	GetTimeBlock(id string) (models.TimeBlock, error)
	// GetTimeBlocksByTask returns all blocks whose task_id matches, in
	// start-time order.
	GetTimeBlocksByTask(taskID string) ([]models.TimeBlock, error)
	// GetTimeBlocksByDate returns all of an owner's blocks starting on the
	// given calendar day (YYYY-MM-DD), in start-time order.
	GetTimeBlocksByDate(ownerID, date string) ([]models.TimeBlock, error)
	UpdateTimeBlock(models.TimeBlock) error
	DeleteTimeBlock(id string) error

	// Recurring tasks
	AddRecurringTask(models.RecurringTask) error
	GetRecurringTask(id string) (models.RecurringTask, error)
	GetRecurringTasksByOwner(ownerID string) ([]models.RecurringTask, error)
	// GetRecurringTasksNeedingGeneration pre-filters active rules whose
	// last_generated_date is unset or before today, whose start_date is not
	// after today, and whose end_date (if any) has not passed. The scheduler
	// re-checks each rule in process; this filter only narrows the batch.
	GetRecurringTasksNeedingGeneration(ownerID, today string) ([]models.RecurringTask, error)
	UpdateRecurringTask(models.RecurringTask) error
	DeactivateRecurringTask(id string) error
	DeleteRecurringTask(id string) error

	// Utils
	GetConfigPath() string
}
