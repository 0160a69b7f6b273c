package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/validation"
)

const ruleColumns = `id, owner_id, parent_task_id, frequency, recurrence_pattern,
	start_date, end_date, last_generated_date, is_active`

func (s *Store) AddRecurringTask(rule models.RecurringTask) error {
	if err := validation.ValidateRecurringTask(rule); err != nil {
		return err
	}

	pattern, err := json.Marshal(rule.Pattern)
	if err != nil {
		return fmt.Errorf("failed to encode recurrence pattern: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO recurring_tasks (`+ruleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.OwnerID, rule.ParentTaskID, string(rule.Frequency),
		string(pattern), rule.StartDate, nullableString(rule.EndDate),
		nullableString(rule.LastGeneratedDate), rule.IsActive,
	)
	return err
}

func (s *Store) GetRecurringTask(id string) (models.RecurringTask, error) {
	row := s.db.QueryRow(`SELECT `+ruleColumns+` FROM recurring_tasks WHERE id = ?`, id)
	return scanRecurringTask(row)
}

func (s *Store) GetRecurringTasksByOwner(ownerID string) ([]models.RecurringTask, error) {
	rows, err := s.db.Query(`
		SELECT `+ruleColumns+` FROM recurring_tasks
		WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecurringTasks(rows)
}

func (s *Store) GetRecurringTasksNeedingGeneration(ownerID, today string) ([]models.RecurringTask, error) {
	rows, err := s.db.Query(`
		SELECT `+ruleColumns+` FROM recurring_tasks
		WHERE owner_id = ?
		  AND is_active = 1
		  AND start_date <= ?
		  AND (end_date IS NULL OR end_date >= ?)
		  AND (last_generated_date IS NULL OR last_generated_date < ?)
		ORDER BY id`, ownerID, today, today, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecurringTasks(rows)
}

func (s *Store) UpdateRecurringTask(rule models.RecurringTask) error {
	if err := validation.ValidateRecurringTask(rule); err != nil {
		return err
	}

	pattern, err := json.Marshal(rule.Pattern)
	if err != nil {
		return fmt.Errorf("failed to encode recurrence pattern: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE recurring_tasks SET owner_id = ?, parent_task_id = ?, frequency = ?,
			recurrence_pattern = ?, start_date = ?, end_date = ?,
			last_generated_date = ?, is_active = ?
		WHERE id = ?`,
		rule.OwnerID, rule.ParentTaskID, string(rule.Frequency), string(pattern),
		rule.StartDate, nullableString(rule.EndDate),
		nullableString(rule.LastGeneratedDate), rule.IsActive, rule.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "recurring task", rule.ID)
}

func (s *Store) DeactivateRecurringTask(id string) error {
	res, err := s.db.Exec(`UPDATE recurring_tasks SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "recurring task", id)
}

func (s *Store) DeleteRecurringTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM recurring_tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "recurring task", id)
}

func scanRecurringTask(row rowScanner) (models.RecurringTask, error) {
	var r models.RecurringTask
	var frequency, pattern string
	var endDate, lastGenerated sql.NullString

	err := row.Scan(
		&r.ID, &r.OwnerID, &r.ParentTaskID, &frequency, &pattern,
		&r.StartDate, &endDate, &lastGenerated, &r.IsActive,
	)
	if err != nil {
		return models.RecurringTask{}, err
	}

	r.Frequency = models.Frequency(frequency)
	if err := json.Unmarshal([]byte(pattern), &r.Pattern); err != nil {
		return models.RecurringTask{}, fmt.Errorf("invalid recurrence pattern for rule %s: %w", r.ID, err)
	}
	if endDate.Valid {
		r.EndDate = &endDate.String
	}
	if lastGenerated.Valid {
		r.LastGeneratedDate = &lastGenerated.String
	}

	return r, nil
}

func scanRecurringTasks(rows *sql.Rows) ([]models.RecurringTask, error) {
	var rules []models.RecurringTask
	for rows.Next() {
		r, err := scanRecurringTask(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
