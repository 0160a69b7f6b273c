package sync

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/storage/memory"
)

var testNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC) // Wednesday

func newTestEngine() (*Engine, *memory.Store) {
	store := memory.New()
	engine := NewEngine(store)
	engine.SetClock(func() time.Time { return testNow })
	return engine, store
}

func intPtr(v int) *int { return &v }

func seedTask(t *testing.T, store *memory.Store, task models.Task) models.Task {
	t.Helper()
	if task.OwnerID == "" {
		task.OwnerID = "owner-1"
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = testNow
		task.UpdatedAt = testNow
	}
	if err := store.AddTask(task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func seedBlock(t *testing.T, store *memory.Store, block models.TimeBlock) models.TimeBlock {
	t.Helper()
	if block.OwnerID == "" {
		block.OwnerID = "owner-1"
	}
	if block.Type == "" {
		block.Type = models.BlockTypeWork
	}
	if block.StartTime.IsZero() {
		block.StartTime = testNow
		block.EndTime = testNow.Add(30 * time.Minute)
	}
	if err := store.AddTimeBlock(block); err != nil {
		t.Fatalf("seed block: %v", err)
	}
	return block
}

func TestSyncTaskToTimeBlock_CreatesBlock(t *testing.T) {
	engine, store := newTestEngine()
	task := seedTask(t, store, models.Task{
		ID: "task-1", Title: "Write report", EstimatedDuration: intPtr(90),
	})

	res := engine.SyncTaskToTimeBlock(task)
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}

	block, err := store.GetTimeBlock(res.SyncedID)
	if err != nil {
		t.Fatalf("created block not found: %v", err)
	}
	wantStart := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	if !block.StartTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", block.StartTime, wantStart)
	}
	if !block.EndTime.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("end = %v, want start+90min", block.EndTime)
	}
	if block.Type != models.BlockTypeWork {
		t.Errorf("type = %s, want work", block.Type)
	}
	if block.TaskID == nil || *block.TaskID != task.ID {
		t.Errorf("block not linked to task")
	}
}

func TestSyncTaskToTimeBlock_AnchorsToDueDate(t *testing.T) {
	engine, store := newTestEngine()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	task := seedTask(t, store, models.Task{
		ID: "task-1", Title: "Pay rent", EstimatedDuration: intPtr(30), DueDate: &due,
	})

	res := engine.SyncTaskToTimeBlock(task)
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}
	block, _ := store.GetTimeBlock(res.SyncedID)
	wantStart := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !block.StartTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", block.StartTime, wantStart)
	}
}

func TestSyncTaskToTimeBlock_Idempotent(t *testing.T) {
	engine, store := newTestEngine()
	task := seedTask(t, store, models.Task{
		ID: "task-1", Title: "Write report", EstimatedDuration: intPtr(60),
	})

	first := engine.SyncTaskToTimeBlock(task)
	if !first.Success {
		t.Fatalf("first call failed: %s", first.Message)
	}

	second := engine.SyncTaskToTimeBlock(task)
	if second.Success {
		t.Fatal("second call should be a no-op failure")
	}
	if second.SyncedID != first.SyncedID {
		t.Errorf("second call should reference existing block %s, got %s", first.SyncedID, second.SyncedID)
	}

	blocks, _ := store.GetTimeBlocksByTask(task.ID)
	if len(blocks) != 1 {
		t.Errorf("expected exactly one block, got %d", len(blocks))
	}
}

func TestSyncTaskToTimeBlock_Guards(t *testing.T) {
	engine, store := newTestEngine()
	task := seedTask(t, store, models.Task{ID: "task-1", Title: "No duration"})

	res := engine.SyncTaskToTimeBlock(task)
	if res.Success {
		t.Fatal("expected guard failure for missing duration")
	}

	store.FailOn("GetTimeBlocksByTask", errors.New("connection refused"))
	task.EstimatedDuration = intPtr(30)
	res = engine.SyncTaskToTimeBlock(task)
	if res.Success {
		t.Fatal("expected failure on store error")
	}
	if !strings.Contains(res.Message, "connection refused") {
		t.Errorf("message should carry the store error, got %q", res.Message)
	}
}

func TestSyncTimeBlockToTask_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		status     models.TaskStatus
		wantStatus models.TaskStatus
	}{
		{"pending moves to in_progress", models.TaskStatusPending, models.TaskStatusInProgress},
		{"in_progress unchanged", models.TaskStatusInProgress, models.TaskStatusInProgress},
		{"completed never regresses", models.TaskStatusCompleted, models.TaskStatusCompleted},
		{"cancelled untouched", models.TaskStatusCancelled, models.TaskStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, store := newTestEngine()
			task := seedTask(t, store, models.Task{ID: "task-1", Title: "T", Status: tt.status})
			taskID := task.ID
			block := seedBlock(t, store, models.TimeBlock{ID: "block-1", TaskID: &taskID})

			res := engine.SyncTimeBlockToTask(block)
			if !res.Success {
				t.Fatalf("expected success, got: %s", res.Message)
			}
			got, _ := store.GetTask(task.ID)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestSyncTimeBlockToTask_StandaloneBlock(t *testing.T) {
	engine, _ := newTestEngine()
	res := engine.SyncTimeBlockToTask(models.TimeBlock{ID: "block-1"})
	if res.Success {
		t.Fatal("standalone block should never touch a task")
	}
}

func TestSyncTimeBlockCompletion_Aggregation(t *testing.T) {
	// Any permutation of completion order yields the same final state: the
	// task completes only when the last open block completes.
	permutations := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}

	for _, order := range permutations {
		engine, store := newTestEngine()
		task := seedTask(t, store, models.Task{
			ID: "task-1", Title: "T", Status: models.TaskStatusInProgress,
		})
		taskID := task.ID

		blocks := make([]models.TimeBlock, 3)
		for i := range blocks {
			blocks[i] = seedBlock(t, store, models.TimeBlock{
				ID:        []string{"block-a", "block-b", "block-c"}[i],
				TaskID:    &taskID,
				StartTime: testNow.Add(time.Duration(i) * time.Hour),
				EndTime:   testNow.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			})
		}

		for step, idx := range order {
			block := blocks[idx]
			block.IsCompleted = true
			if err := store.UpdateTimeBlock(block); err != nil {
				t.Fatalf("update block: %v", err)
			}

			res := engine.SyncTimeBlockCompletion(block)
			if !res.Success {
				t.Fatalf("completion sync failed: %s", res.Message)
			}

			got, _ := store.GetTask(task.ID)
			if step < len(order)-1 {
				if got.Status == models.TaskStatusCompleted {
					t.Fatalf("order %v: task completed after %d/3 blocks", order, step+1)
				}
			} else if got.Status != models.TaskStatusCompleted {
				t.Fatalf("order %v: task not completed after all blocks", order)
			}
		}
	}
}

func TestSyncTimeBlockCompletion_Guards(t *testing.T) {
	engine, store := newTestEngine()
	taskID := "task-1"
	seedTask(t, store, models.Task{ID: taskID, Title: "T"})

	res := engine.SyncTimeBlockCompletion(models.TimeBlock{ID: "b", TaskID: &taskID})
	if res.Success {
		t.Fatal("expected failure for a block not marked complete")
	}

	res = engine.SyncTimeBlockCompletion(models.TimeBlock{ID: "b", IsCompleted: true})
	if res.Success {
		t.Fatal("expected failure for an unlinked block")
	}
}

func TestSyncTimeBlockDeletion(t *testing.T) {
	engine, store := newTestEngine()
	task := seedTask(t, store, models.Task{
		ID: "task-1", Title: "T", Status: models.TaskStatusInProgress,
	})
	taskID := task.ID
	first := seedBlock(t, store, models.TimeBlock{ID: "block-1", TaskID: &taskID})
	second := seedBlock(t, store, models.TimeBlock{
		ID: "block-2", TaskID: &taskID,
		StartTime: testNow.Add(2 * time.Hour), EndTime: testNow.Add(3 * time.Hour),
	})

	// Deleting a non-last block leaves the status alone.
	if err := store.DeleteTimeBlock(first.ID); err != nil {
		t.Fatalf("delete block: %v", err)
	}
	res := engine.SyncTimeBlockDeletion(first.ID, taskID)
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}
	got, _ := store.GetTask(taskID)
	if got.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want in_progress", got.Status)
	}

	// Deleting the last block un-schedules the task.
	if err := store.DeleteTimeBlock(second.ID); err != nil {
		t.Fatalf("delete block: %v", err)
	}
	res = engine.SyncTimeBlockDeletion(second.ID, taskID)
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}
	got, _ = store.GetTask(taskID)
	if got.Status != models.TaskStatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
}

func TestSyncTimeBlockDeletion_ResetsCompletedTask(t *testing.T) {
	engine, store := newTestEngine()
	seedTask(t, store, models.Task{
		ID: "task-1", Title: "T", Status: models.TaskStatusCompleted,
	})

	res := engine.SyncTimeBlockDeletion("gone-block", "task-1")
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}
	got, _ := store.GetTask("task-1")
	if got.Status != models.TaskStatusPending {
		t.Errorf("last block gone should reset even a completed task, got %s", got.Status)
	}
}

func TestSyncTimeBlockDeletion_MissingTaskTolerated(t *testing.T) {
	engine, _ := newTestEngine()

	res := engine.SyncTimeBlockDeletion("gone-block", "ghost-task")
	if res.Success {
		t.Fatal("expected graceful failure when the linked task is gone")
	}

	res = engine.SyncTimeBlockDeletion("gone-block", "")
	if res.Success {
		t.Fatal("expected guard failure for an empty task id")
	}
}

func TestUpdateTaskDurationFromTimeBlocks(t *testing.T) {
	engine, store := newTestEngine()
	task := seedTask(t, store, models.Task{ID: "task-1", Title: "T"})
	taskID := task.ID

	seedBlock(t, store, models.TimeBlock{
		ID: "block-1", TaskID: &taskID,
		StartTime: testNow, EndTime: testNow.Add(30 * time.Minute),
	})
	seedBlock(t, store, models.TimeBlock{
		ID: "block-2", TaskID: &taskID,
		StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(time.Hour + 45*time.Minute),
	})

	res := engine.UpdateTaskDurationFromTimeBlocks(taskID)
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}
	got, _ := store.GetTask(taskID)
	if got.EstimatedDuration == nil || *got.EstimatedDuration != 75 {
		t.Errorf("duration = %v, want 75", got.EstimatedDuration)
	}
}

func TestUpdateTaskDurationFromTimeBlocks_NoBlocks(t *testing.T) {
	engine, store := newTestEngine()
	task := seedTask(t, store, models.Task{
		ID: "task-1", Title: "T", EstimatedDuration: intPtr(120),
	})

	res := engine.UpdateTaskDurationFromTimeBlocks(task.ID)
	if res.Success {
		t.Fatal("expected failure with zero linked blocks")
	}
	got, _ := store.GetTask(task.ID)
	if got.EstimatedDuration == nil || *got.EstimatedDuration != 120 {
		t.Errorf("duration should be left untouched, got %v", got.EstimatedDuration)
	}
}
