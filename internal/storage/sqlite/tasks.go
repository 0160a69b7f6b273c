package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/validation"
)

const taskColumns = `id, owner_id, title, description, is_urgent, is_important,
	estimated_duration, due_date, status, tags, color, created_at, updated_at`

func (s *Store) AddTask(task models.Task) error {
	if err := validation.ValidateTask(task); err != nil {
		return err
	}

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.OwnerID, task.Title, task.Description,
		task.IsUrgent, task.IsImportant,
		nullableInt(task.EstimatedDuration), nullableTime(task.DueDate),
		string(task.Status), string(tags), task.Color,
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (s *Store) GetTasksByOwner(ownerID string) ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT `+taskColumns+` FROM tasks
		WHERE owner_id = ? ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (s *Store) GetTasksByStatus(ownerID string, status models.TaskStatus) ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT `+taskColumns+` FROM tasks
		WHERE owner_id = ? AND status = ? ORDER BY created_at`, ownerID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (s *Store) UpdateTask(task models.Task) error {
	if err := validation.ValidateTask(task); err != nil {
		return err
	}

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE tasks SET owner_id = ?, title = ?, description = ?, is_urgent = ?,
			is_important = ?, estimated_duration = ?, due_date = ?, status = ?,
			tags = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		task.OwnerID, task.Title, task.Description, task.IsUrgent, task.IsImportant,
		nullableInt(task.EstimatedDuration), nullableTime(task.DueDate),
		string(task.Status), string(tags), task.Color,
		task.UpdatedAt.Format(time.RFC3339), task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "task", task.ID)
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var status, tags string
	var duration sql.NullInt64
	var dueDate sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.IsUrgent, &t.IsImportant,
		&duration, &dueDate, &status, &tags, &t.Color, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Status = models.TaskStatus(status)
	if duration.Valid {
		d := int(duration.Int64)
		t.EstimatedDuration = &d
	}
	if dueDate.Valid {
		due, err := time.Parse(time.RFC3339, dueDate.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("invalid due_date for task %s: %w", t.ID, err)
		}
		t.DueDate = &due
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return models.Task{}, fmt.Errorf("invalid tags for task %s: %w", t.ID, err)
		}
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Task{}, err
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Task{}, err
	}

	return t, nil
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return v.Format(time.RFC3339)
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", kind, id)
	}
	return nil
}
