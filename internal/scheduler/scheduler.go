package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/focusflowhq/focusflow/internal/logger"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/recurrence"
	"github.com/focusflowhq/focusflow/internal/storage"
	"github.com/focusflowhq/focusflow/internal/utils"
)

// RuleError records one rule's failure during a generation run. A bad rule
// never aborts the batch.
type RuleError struct {
	RuleID string
	Err    string
}

// GenerationResult aggregates a daily run. Partial success is expected and
// is not a total failure.
type GenerationResult struct {
	Generated int
	Errors    []RuleError
}

// Scheduler walks an owner's active recurrence rules once per day and
// creates new task instances from each rule's template task. It is the sole
// writer of last_generated_date.
type Scheduler struct {
	store storage.Provider
	now   func() time.Time

	mu      sync.Mutex
	lastRun map[string]string // owner id -> YYYY-MM-DD of last completed run
}

func New(store storage.Provider) *Scheduler {
	return &Scheduler{
		store:   store,
		now:     time.Now,
		lastRun: make(map[string]string),
	}
}

// SetClock overrides the scheduler's wall clock.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// RunDaily generates due task instances for the owner. Double generation
// would break the once-per-day invariant, so a second invocation for the
// same owner and calendar day is refused unless force is set.
func (s *Scheduler) RunDaily(ownerID string, force bool) (GenerationResult, error) {
	today := utils.StartOfDay(s.now())
	todayStr := utils.FormatDate(today)

	s.mu.Lock()
	if !force && s.lastRun[ownerID] == todayStr {
		s.mu.Unlock()
		return GenerationResult{}, fmt.Errorf("generation already ran today (%s); use force to rerun", todayStr)
	}
	s.mu.Unlock()

	rules, err := s.store.GetRecurringTasksNeedingGeneration(ownerID, todayStr)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("failed to list rules needing generation: %w", err)
	}

	var result GenerationResult
	for _, rule := range rules {
		if err := s.generateInstance(rule, today); err != nil {
			logger.Warn("recurring task generation failed", "rule", rule.ID, "error", err)
			result.Errors = append(result.Errors, RuleError{RuleID: rule.ID, Err: err.Error()})
			continue
		}
		result.Generated++
	}

	s.mu.Lock()
	s.lastRun[ownerID] = todayStr
	s.mu.Unlock()

	logger.Info("daily generation completed",
		"owner", ownerID, "generated", result.Generated, "failed", len(result.Errors))
	return result, nil
}

// generateInstance creates one task from the rule's template and advances
// last_generated_date. The date is advanced only after a successful insert
// so a failed rule is retried on the next run.
func (s *Scheduler) generateInstance(rule models.RecurringTask, today time.Time) error {
	// The storage pre-filter may be stale; the evaluator is the
	// authoritative gate.
	if !recurrence.ShouldGenerateToday(rule, today) {
		return nil
	}

	parent, err := s.store.GetTask(rule.ParentTaskID)
	if err != nil {
		return fmt.Errorf("parent task %s not found: %w", rule.ParentTaskID, err)
	}

	anchorStr := rule.StartDate
	if rule.LastGeneratedDate != nil && *rule.LastGeneratedDate > anchorStr {
		anchorStr = *rule.LastGeneratedDate
	}
	anchor, err := utils.ParseDate(anchorStr, today.Location())
	if err != nil {
		return fmt.Errorf("invalid anchor date %q: %w", anchorStr, err)
	}

	// Normalized to midnight local; the template's due time of day is not
	// carried over.
	due := recurrence.GetNextOccurrence(anchor, rule.Frequency, rule.Pattern)

	instance := models.Task{
		ID:          uuid.NewString(),
		OwnerID:     parent.OwnerID,
		Title:       parent.Title,
		Description: parent.Description,
		IsUrgent:    parent.IsUrgent,
		IsImportant: parent.IsImportant,
		Status:      models.TaskStatusPending,
		Tags:        append([]string(nil), parent.Tags...),
		Color:       parent.Color,
		DueDate:     &due,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if parent.EstimatedDuration != nil {
		duration := *parent.EstimatedDuration
		instance.EstimatedDuration = &duration
	}

	if err := s.store.AddTask(instance); err != nil {
		return fmt.Errorf("failed to insert generated task: %w", err)
	}

	todayStr := utils.FormatDate(today)
	rule.LastGeneratedDate = &todayStr
	if err := s.store.UpdateRecurringTask(rule); err != nil {
		return fmt.Errorf("task %s generated but failed to record generation date: %w", instance.ID, err)
	}

	logger.Debug("generated recurring task instance",
		"rule", rule.ID, "task", instance.ID, "due", utils.FormatDate(due))
	return nil
}

// CleanupCompletedInstances deletes completed tasks older than the cutoff.
// Tasks referenced as a template by any recurrence rule are never deleted.
func (s *Scheduler) CleanupCompletedInstances(ownerID string, olderThanDays int) (int, error) {
	cutoff := s.now().AddDate(0, 0, -olderThanDays)

	rules, err := s.store.GetRecurringTasksByOwner(ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurrence rules: %w", err)
	}
	templates := make(map[string]bool, len(rules))
	for _, rule := range rules {
		templates[rule.ParentTaskID] = true
	}

	completed, err := s.store.GetTasksByStatus(ownerID, models.TaskStatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	deleted := 0
	for _, task := range completed {
		if templates[task.ID] {
			continue
		}
		if !task.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.store.DeleteTask(task.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete task %s: %w", task.ID, err)
		}
		deleted++
	}

	logger.Info("completed-instance cleanup finished", "owner", ownerID, "deleted", deleted)
	return deleted, nil
}
