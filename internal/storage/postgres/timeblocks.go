package postgres

import (
	"database/sql"

	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/validation"
)

const blockColumns = `id, owner_id, task_id, start_time, end_time, type, notes,
	is_completed, created_at, updated_at`

func (s *Store) AddTimeBlock(block models.TimeBlock) error {
	if err := validation.ValidateTimeBlock(block); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO time_blocks (`+blockColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		block.ID, block.OwnerID, nullableString(block.TaskID),
		block.StartTime, block.EndTime, string(block.Type), block.Notes,
		block.IsCompleted, block.CreatedAt, block.UpdatedAt,
	)
	return err
}

func (s *Store) GetTimeBlock(id string) (models.TimeBlock, error) {
	row := s.db.QueryRow(`SELECT `+blockColumns+` FROM time_blocks WHERE id = $1`, id)
	return scanTimeBlock(row)
}

func (s *Store) GetTimeBlocksByTask(taskID string) ([]models.TimeBlock, error) {
	rows, err := s.db.Query(`
		SELECT `+blockColumns+` FROM time_blocks
		WHERE task_id = $1 ORDER BY start_time`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeBlocks(rows)
}

func (s *Store) GetTimeBlocksByDate(ownerID, date string) ([]models.TimeBlock, error) {
	rows, err := s.db.Query(`
		SELECT `+blockColumns+` FROM time_blocks
		WHERE owner_id = $1 AND start_time::date = $2::date
		ORDER BY start_time`, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeBlocks(rows)
}

func (s *Store) UpdateTimeBlock(block models.TimeBlock) error {
	if err := validation.ValidateTimeBlock(block); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE time_blocks SET owner_id = $1, task_id = $2, start_time = $3,
			end_time = $4, type = $5, notes = $6, is_completed = $7, updated_at = $8
		WHERE id = $9`,
		block.OwnerID, nullableString(block.TaskID), block.StartTime, block.EndTime,
		string(block.Type), block.Notes, block.IsCompleted, block.UpdatedAt, block.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "time block", block.ID)
}

func (s *Store) DeleteTimeBlock(id string) error {
	res, err := s.db.Exec(`DELETE FROM time_blocks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "time block", id)
}

func scanTimeBlock(row rowScanner) (models.TimeBlock, error) {
	var b models.TimeBlock
	var taskID sql.NullString
	var blockType string

	err := row.Scan(
		&b.ID, &b.OwnerID, &taskID, &b.StartTime, &b.EndTime,
		&blockType, &b.Notes, &b.IsCompleted, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return models.TimeBlock{}, err
	}

	b.Type = models.BlockType(blockType)
	if taskID.Valid {
		b.TaskID = &taskID.String
	}

	return b, nil
}

func scanTimeBlocks(rows *sql.Rows) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	for rows.Next() {
		b, err := scanTimeBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}
