package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/utils"
	"github.com/focusflowhq/focusflow/internal/validation"
)

// Store is an in-memory storage provider. It backs unit tests and supports
// per-method fault injection for exercising store-failure paths.
type Store struct {
	mu sync.Mutex

	tasks     map[string]models.Task
	blocks    map[string]models.TimeBlock
	recurring map[string]models.RecurringTask

	failures map[string]error
}

func New() *Store {
	return &Store{
		tasks:     make(map[string]models.Task),
		blocks:    make(map[string]models.TimeBlock),
		recurring: make(map[string]models.RecurringTask),
		failures:  make(map[string]error),
	}
}

// FailOn makes every subsequent call to the named method return err until
// cleared with FailOn(method, nil).
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) failure(method string) error {
	return s.failures[method]
}

func (s *Store) Init() error  { return nil }
func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string { return ":memory:" }

// Tasks

func (s *Store) AddTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("AddTask"); err != nil {
		return err
	}
	if err := validation.ValidateTask(task); err != nil {
		return err
	}
	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("task %s already exists", task.ID)
	}
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetTask"); err != nil {
		return models.Task{}, err
	}
	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return cloneTask(task), nil
}

func (s *Store) GetTasksByOwner(ownerID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetTasksByOwner"); err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetTasksByStatus(ownerID string, status models.TaskStatus) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetTasksByStatus"); err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range s.tasks {
		if t.OwnerID == ownerID && t.Status == status {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("UpdateTask"); err != nil {
		return err
	}
	if err := validation.ValidateTask(task); err != nil {
		return err
	}
	if _, ok := s.tasks[task.ID]; !ok {
		return fmt.Errorf("task %s not found", task.ID)
	}
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DeleteTask"); err != nil {
		return err
	}
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %s not found", id)
	}
	delete(s.tasks, id)
	return nil
}

// TimeBlocks

func (s *Store) AddTimeBlock(block models.TimeBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("AddTimeBlock"); err != nil {
		return err
	}
	if err := validation.ValidateTimeBlock(block); err != nil {
		return err
	}
	if _, exists := s.blocks[block.ID]; exists {
		return fmt.Errorf("time block %s already exists", block.ID)
	}
	s.blocks[block.ID] = cloneBlock(block)
	return nil
}

func (s *Store) GetTimeBlock(id string) (models.TimeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetTimeBlock"); err != nil {
		return models.TimeBlock{}, err
	}
	block, ok := s.blocks[id]
	if !ok {
		return models.TimeBlock{}, fmt.Errorf("time block %s not found", id)
	}
	return cloneBlock(block), nil
}

func (s *Store) GetTimeBlocksByTask(taskID string) ([]models.TimeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetTimeBlocksByTask"); err != nil {
		return nil, err
	}
	var out []models.TimeBlock
	for _, b := range s.blocks {
		if b.TaskID != nil && *b.TaskID == taskID {
			out = append(out, cloneBlock(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *Store) GetTimeBlocksByDate(ownerID, date string) ([]models.TimeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetTimeBlocksByDate"); err != nil {
		return nil, err
	}
	var out []models.TimeBlock
	for _, b := range s.blocks {
		if b.OwnerID == ownerID && utils.FormatDate(b.StartTime) == date {
			out = append(out, cloneBlock(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *Store) UpdateTimeBlock(block models.TimeBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("UpdateTimeBlock"); err != nil {
		return err
	}
	if err := validation.ValidateTimeBlock(block); err != nil {
		return err
	}
	if _, ok := s.blocks[block.ID]; !ok {
		return fmt.Errorf("time block %s not found", block.ID)
	}
	s.blocks[block.ID] = cloneBlock(block)
	return nil
}

func (s *Store) DeleteTimeBlock(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DeleteTimeBlock"); err != nil {
		return err
	}
	if _, ok := s.blocks[id]; !ok {
		return fmt.Errorf("time block %s not found", id)
	}
	delete(s.blocks, id)
	return nil
}

// Recurring tasks

func (s *Store) AddRecurringTask(rule models.RecurringTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("AddRecurringTask"); err != nil {
		return err
	}
	if err := validation.ValidateRecurringTask(rule); err != nil {
		return err
	}
	if _, exists := s.recurring[rule.ID]; exists {
		return fmt.Errorf("recurring task %s already exists", rule.ID)
	}
	s.recurring[rule.ID] = cloneRule(rule)
	return nil
}

func (s *Store) GetRecurringTask(id string) (models.RecurringTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetRecurringTask"); err != nil {
		return models.RecurringTask{}, err
	}
	rule, ok := s.recurring[id]
	if !ok {
		return models.RecurringTask{}, fmt.Errorf("recurring task %s not found", id)
	}
	return cloneRule(rule), nil
}

func (s *Store) GetRecurringTasksByOwner(ownerID string) ([]models.RecurringTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetRecurringTasksByOwner"); err != nil {
		return nil, err
	}
	var out []models.RecurringTask
	for _, r := range s.recurring {
		if r.OwnerID == ownerID {
			out = append(out, cloneRule(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetRecurringTasksNeedingGeneration(ownerID, today string) ([]models.RecurringTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetRecurringTasksNeedingGeneration"); err != nil {
		return nil, err
	}
	var out []models.RecurringTask
	for _, r := range s.recurring {
		if r.OwnerID != ownerID || !r.IsActive {
			continue
		}
		if r.StartDate > today {
			continue
		}
		if r.EndDate != nil && *r.EndDate < today {
			continue
		}
		if r.LastGeneratedDate != nil && *r.LastGeneratedDate >= today {
			continue
		}
		out = append(out, cloneRule(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateRecurringTask(rule models.RecurringTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("UpdateRecurringTask"); err != nil {
		return err
	}
	if err := validation.ValidateRecurringTask(rule); err != nil {
		return err
	}
	if _, ok := s.recurring[rule.ID]; !ok {
		return fmt.Errorf("recurring task %s not found", rule.ID)
	}
	s.recurring[rule.ID] = cloneRule(rule)
	return nil
}

func (s *Store) DeactivateRecurringTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DeactivateRecurringTask"); err != nil {
		return err
	}
	rule, ok := s.recurring[id]
	if !ok {
		return fmt.Errorf("recurring task %s not found", id)
	}
	rule.IsActive = false
	s.recurring[id] = rule
	return nil
}

func (s *Store) DeleteRecurringTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DeleteRecurringTask"); err != nil {
		return err
	}
	if _, ok := s.recurring[id]; !ok {
		return fmt.Errorf("recurring task %s not found", id)
	}
	delete(s.recurring, id)
	return nil
}

func cloneTask(t models.Task) models.Task {
	out := t
	if t.EstimatedDuration != nil {
		d := *t.EstimatedDuration
		out.EstimatedDuration = &d
	}
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	out.Tags = append([]string(nil), t.Tags...)
	return out
}

func cloneBlock(b models.TimeBlock) models.TimeBlock {
	out := b
	if b.TaskID != nil {
		id := *b.TaskID
		out.TaskID = &id
	}
	return out
}

func cloneRule(r models.RecurringTask) models.RecurringTask {
	out := r
	if r.EndDate != nil {
		end := *r.EndDate
		out.EndDate = &end
	}
	if r.LastGeneratedDate != nil {
		last := *r.LastGeneratedDate
		out.LastGeneratedDate = &last
	}
	out.Pattern.Days = append([]int(nil), r.Pattern.Days...)
	return out
}
