package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/focusflowhq/focusflow/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "focusflow.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTaskRoundTrip(t *testing.T) {
	store := newTestStore(t)

	duration := 90
	due := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	task := models.Task{
		ID:                "task-1",
		OwnerID:           "owner-1",
		Title:             "Write report",
		Description:       "Quarterly numbers",
		IsUrgent:          true,
		IsImportant:       true,
		EstimatedDuration: &duration,
		DueDate:           &due,
		Status:            models.TaskStatusPending,
		Tags:              []string{"work", "q2"},
		Color:             "#ff8800",
		CreatedAt:         time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC),
	}

	if err := store.AddTask(task); err != nil {
		t.Fatalf("add task: %v", err)
	}

	got, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Description != task.Description {
		t.Errorf("text fields did not round-trip: %+v", got)
	}
	if !got.IsUrgent || !got.IsImportant {
		t.Errorf("flags did not round-trip: %+v", got)
	}
	if got.EstimatedDuration == nil || *got.EstimatedDuration != duration {
		t.Errorf("duration = %v, want %d", got.EstimatedDuration, duration)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "work" || got.Tags[1] != "q2" {
		t.Errorf("tags = %v, want [work q2]", got.Tags)
	}

	got.Status = models.TaskStatusCompleted
	got.EstimatedDuration = nil
	if err := store.UpdateTask(got); err != nil {
		t.Fatalf("update task: %v", err)
	}
	updated, _ := store.GetTask(task.ID)
	if updated.Status != models.TaskStatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.EstimatedDuration != nil {
		t.Errorf("duration should be cleared, got %v", updated.EstimatedDuration)
	}

	byStatus, err := store.GetTasksByStatus("owner-1", models.TaskStatusCompleted)
	if err != nil {
		t.Fatalf("get by status: %v", err)
	}
	if len(byStatus) != 1 {
		t.Errorf("by status returned %d tasks, want 1", len(byStatus))
	}

	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := store.GetTask(task.ID); err == nil {
		t.Error("deleted task still readable")
	}
	if err := store.DeleteTask(task.ID); err == nil {
		t.Error("deleting a missing task should error")
	}
}

func TestTimeBlockRoundTrip(t *testing.T) {
	store := newTestStore(t)

	taskID := "task-1"
	block := models.TimeBlock{
		ID:        "block-1",
		OwnerID:   "owner-1",
		TaskID:    &taskID,
		StartTime: time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC),
		Type:      models.BlockTypeWork,
		Notes:     "deep work",
		CreatedAt: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC),
	}
	standalone := models.TimeBlock{
		ID:        "block-2",
		OwnerID:   "owner-1",
		StartTime: time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 5, 16, 13, 0, 0, 0, time.UTC),
		Type:      models.BlockTypeBreak,
		CreatedAt: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC),
	}
	for _, b := range []models.TimeBlock{block, standalone} {
		if err := store.AddTimeBlock(b); err != nil {
			t.Fatalf("add block %s: %v", b.ID, err)
		}
	}

	got, err := store.GetTimeBlock("block-1")
	if err != nil {
		t.Fatalf("get block: %v", err)
	}
	if got.TaskID == nil || *got.TaskID != taskID {
		t.Errorf("task link did not round-trip: %+v", got.TaskID)
	}
	if !got.StartTime.Equal(block.StartTime) || !got.EndTime.Equal(block.EndTime) {
		t.Errorf("interval did not round-trip: %v - %v", got.StartTime, got.EndTime)
	}

	gotStandalone, err := store.GetTimeBlock("block-2")
	if err != nil {
		t.Fatalf("get standalone block: %v", err)
	}
	if gotStandalone.TaskID != nil {
		t.Errorf("standalone block grew a task link: %v", *gotStandalone.TaskID)
	}

	byTask, err := store.GetTimeBlocksByTask(taskID)
	if err != nil {
		t.Fatalf("get by task: %v", err)
	}
	if len(byTask) != 1 || byTask[0].ID != "block-1" {
		t.Errorf("by task = %+v, want just block-1", byTask)
	}

	byDate, err := store.GetTimeBlocksByDate("owner-1", "2024-05-16")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if len(byDate) != 1 || byDate[0].ID != "block-2" {
		t.Errorf("by date = %+v, want just block-2", byDate)
	}

	got.IsCompleted = true
	if err := store.UpdateTimeBlock(got); err != nil {
		t.Fatalf("update block: %v", err)
	}
	updated, _ := store.GetTimeBlock("block-1")
	if !updated.IsCompleted {
		t.Error("completion flag did not persist")
	}

	if err := store.DeleteTimeBlock("block-1"); err != nil {
		t.Fatalf("delete block: %v", err)
	}
	remaining, _ := store.GetTimeBlocksByTask(taskID)
	if len(remaining) != 0 {
		t.Errorf("expected no blocks after delete, got %d", len(remaining))
	}
}

func TestRecurringTaskRoundTrip(t *testing.T) {
	store := newTestStore(t)

	end := "2024-12-31"
	rule := models.RecurringTask{
		ID:           "rule-1",
		OwnerID:      "owner-1",
		ParentTaskID: "task-1",
		Frequency:    models.FrequencyWeekly,
		Pattern:      models.RecurrencePattern{Interval: 1, Days: []int{1, 3, 5}},
		StartDate:    "2024-05-01",
		EndDate:      &end,
		IsActive:     true,
	}
	if err := store.AddRecurringTask(rule); err != nil {
		t.Fatalf("add rule: %v", err)
	}

	got, err := store.GetRecurringTask(rule.ID)
	if err != nil {
		t.Fatalf("get rule: %v", err)
	}
	if got.Frequency != models.FrequencyWeekly {
		t.Errorf("frequency = %s, want weekly", got.Frequency)
	}
	if len(got.Pattern.Days) != 3 || got.Pattern.Days[1] != 3 {
		t.Errorf("pattern did not round-trip: %+v", got.Pattern)
	}
	if got.EndDate == nil || *got.EndDate != end {
		t.Errorf("end date = %v, want %s", got.EndDate, end)
	}
	if got.LastGeneratedDate != nil {
		t.Errorf("fresh rule has last_generated_date %v", *got.LastGeneratedDate)
	}

	last := "2024-05-15"
	got.LastGeneratedDate = &last
	if err := store.UpdateRecurringTask(got); err != nil {
		t.Fatalf("update rule: %v", err)
	}

	needing, err := store.GetRecurringTasksNeedingGeneration("owner-1", "2024-05-15")
	if err != nil {
		t.Fatalf("needing generation: %v", err)
	}
	if len(needing) != 0 {
		t.Errorf("rule generated today should be filtered out, got %d", len(needing))
	}

	needing, err = store.GetRecurringTasksNeedingGeneration("owner-1", "2024-05-16")
	if err != nil {
		t.Fatalf("needing generation: %v", err)
	}
	if len(needing) != 1 {
		t.Errorf("rule should need generation the next day, got %d", len(needing))
	}

	if err := store.DeactivateRecurringTask(rule.ID); err != nil {
		t.Fatalf("deactivate rule: %v", err)
	}
	deactivated, _ := store.GetRecurringTask(rule.ID)
	if deactivated.IsActive {
		t.Error("rule still active after deactivation")
	}
	needing, _ = store.GetRecurringTasksNeedingGeneration("owner-1", "2024-05-16")
	if len(needing) != 0 {
		t.Errorf("inactive rule should never need generation, got %d", len(needing))
	}

	if err := store.DeleteRecurringTask(rule.ID); err != nil {
		t.Fatalf("delete rule: %v", err)
	}
	if _, err := store.GetRecurringTask(rule.ID); err == nil {
		t.Error("deleted rule still readable")
	}
}
