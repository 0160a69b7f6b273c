package sync

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/focusflowhq/focusflow/internal/constants"
	"github.com/focusflowhq/focusflow/internal/logger"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/storage"
	"github.com/focusflowhq/focusflow/internal/utils"
)

// Result is the value returned by every engine operation. Sync is always a
// secondary effect of a primary mutation, so the engine never returns an
// error across its boundary: guard failures and store failures alike are
// reported here and left to the caller to surface or log.
type Result struct {
	Success  bool
	Message  string
	SyncedID string
}

func failure(format string, args ...interface{}) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

func success(id, format string, args ...interface{}) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...), SyncedID: id}
}

// Engine reconciles a task with its linked time blocks. It re-reads rows
// from the store immediately before deciding a transition, narrowing the
// window for concurrent-edit races.
type Engine struct {
	store storage.Provider
	now   func() time.Time
}

func NewEngine(store storage.Provider) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

// SetClock overrides the engine's wall clock.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SyncTaskToTimeBlock derives a time block from a task with an estimated
// duration. The block is anchored at the default start hour on the task's
// due date, or on the current day when no due date is set. Calling it again
// for the same task is a no-op failure carrying the existing block's id.
func (e *Engine) SyncTaskToTimeBlock(task models.Task) Result {
	if task.EstimatedDuration == nil {
		return failure("task %q has no estimated duration; cannot derive a time block", task.Title)
	}

	existing, err := e.store.GetTimeBlocksByTask(task.ID)
	if err != nil {
		return failure("failed to check existing time blocks: %v", err)
	}
	if len(existing) > 0 {
		return Result{
			Success:  false,
			Message:  fmt.Sprintf("time block already exists for task %q", task.Title),
			SyncedID: existing[0].ID,
		}
	}

	anchor := e.now()
	if task.DueDate != nil {
		anchor = task.DueDate.In(anchor.Location())
	}
	start := utils.AtHour(anchor, constants.DefaultBlockStartHour)
	end := start.Add(time.Duration(*task.EstimatedDuration) * time.Minute)

	// Urgency and importance affect presentation only; every derived block
	// is a work block.
	taskID := task.ID
	block := models.TimeBlock{
		ID:        uuid.NewString(),
		OwnerID:   task.OwnerID,
		TaskID:    &taskID,
		StartTime: start,
		EndTime:   end,
		Type:      models.BlockTypeWork,
		Notes:     task.Title,
		CreatedAt: e.now(),
		UpdatedAt: e.now(),
	}

	if err := e.store.AddTimeBlock(block); err != nil {
		return failure("failed to create time block: %v", err)
	}

	logger.Debug("derived time block from task", "task", task.ID, "block", block.ID)
	return success(block.ID, "time block created for task %q", task.Title)
}

// SyncTimeBlockToTask moves a pending linked task to in_progress when one of
// its blocks is scheduled. Any other task status is left alone; repeated
// calls during rapid UI interaction must not regress a completed task.
func (e *Engine) SyncTimeBlockToTask(block models.TimeBlock) Result {
	if block.TaskID == nil {
		return failure("time block is not linked to a task")
	}

	task, err := e.store.GetTask(*block.TaskID)
	if err != nil {
		return failure("failed to load linked task: %v", err)
	}

	if task.Status != models.TaskStatusPending {
		return success(task.ID, "task %q is %s; no transition needed", task.Title, task.Status)
	}

	task.Status = models.TaskStatusInProgress
	task.UpdatedAt = e.now()
	if err := e.store.UpdateTask(task); err != nil {
		return failure("failed to update task status: %v", err)
	}

	return success(task.ID, "task %q moved to in_progress", task.Title)
}

// SyncTimeBlockCompletion completes the linked task once every sibling block
// is complete. Completion is an AND-aggregate over all of the task's blocks,
// not a per-block signal.
func (e *Engine) SyncTimeBlockCompletion(block models.TimeBlock) Result {
	if !block.IsCompleted {
		return failure("time block is not marked complete")
	}
	if block.TaskID == nil {
		return failure("time block is not linked to a task")
	}

	siblings, err := e.store.GetTimeBlocksByTask(*block.TaskID)
	if err != nil {
		return failure("failed to load sibling time blocks: %v", err)
	}

	for _, sibling := range siblings {
		if !sibling.IsCompleted {
			return success(*block.TaskID, "block marked complete; %d sibling block(s) still open", countIncomplete(siblings))
		}
	}

	task, err := e.store.GetTask(*block.TaskID)
	if err != nil {
		return failure("failed to load linked task: %v", err)
	}

	switch task.Status {
	case models.TaskStatusCompleted:
		return success(task.ID, "task %q is already completed", task.Title)
	case models.TaskStatusCancelled:
		return success(task.ID, "task %q is cancelled; leaving it alone", task.Title)
	}

	task.Status = models.TaskStatusCompleted
	task.UpdatedAt = e.now()
	if err := e.store.UpdateTask(task); err != nil {
		return failure("failed to complete task: %v", err)
	}

	return success(task.ID, "all blocks complete; task %q completed", task.Title)
}

// SyncTimeBlockDeletion reconciles a task after one of its blocks has
// already been removed from the store. When the last block is gone the task
// is reset to pending, whatever state the engine had previously driven it
// into. Cancellation is a user decision and is never reversed here.
func (e *Engine) SyncTimeBlockDeletion(timeBlockID, taskID string) Result {
	if taskID == "" {
		return failure("deleted time block had no linked task")
	}

	remaining, err := e.store.GetTimeBlocksByTask(taskID)
	if err != nil {
		return failure("failed to load remaining time blocks: %v", err)
	}
	if len(remaining) > 0 {
		return success(taskID, "%d time block(s) remain for task; no status change", len(remaining))
	}

	task, err := e.store.GetTask(taskID)
	if err != nil {
		return failure("failed to load linked task: %v", err)
	}

	if task.Status == models.TaskStatusCancelled {
		return success(task.ID, "task %q is cancelled; leaving it alone", task.Title)
	}
	if task.Status == models.TaskStatusPending {
		return success(task.ID, "task %q is already pending", task.Title)
	}

	task.Status = models.TaskStatusPending
	task.UpdatedAt = e.now()
	if err := e.store.UpdateTask(task); err != nil {
		return failure("failed to reset task status: %v", err)
	}

	logger.Debug("last block deleted; task un-scheduled", "task", task.ID, "block", timeBlockID)
	return success(task.ID, "last time block deleted; task %q reset to pending", task.Title)
}

// UpdateTaskDurationFromTimeBlocks recomputes a task's estimated duration as
// the whole-minute sum of its linked blocks. With zero linked blocks there
// is nothing to aggregate and the task's duration is left untouched.
func (e *Engine) UpdateTaskDurationFromTimeBlocks(taskID string) Result {
	blocks, err := e.store.GetTimeBlocksByTask(taskID)
	if err != nil {
		return failure("failed to load time blocks: %v", err)
	}
	if len(blocks) == 0 {
		return failure("task has no time blocks to aggregate")
	}

	total := 0
	for _, block := range blocks {
		total += block.DurationMinutes()
	}

	task, err := e.store.GetTask(taskID)
	if err != nil {
		return failure("failed to load task: %v", err)
	}

	task.EstimatedDuration = &total
	task.UpdatedAt = e.now()
	if err := e.store.UpdateTask(task); err != nil {
		return failure("failed to update task duration: %v", err)
	}

	return success(task.ID, "task duration updated to %d minutes from %d block(s)", total, len(blocks))
}

func countIncomplete(blocks []models.TimeBlock) int {
	n := 0
	for _, b := range blocks {
		if !b.IsCompleted {
			n++
		}
	}
	return n
}
