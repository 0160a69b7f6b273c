package sqlite

import (
	"database/sql"
	"fmt"
	"time"

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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		block.ID, block.OwnerID, nullableString(block.TaskID),
		block.StartTime.Format(time.RFC3339), block.EndTime.Format(time.RFC3339),
		string(block.Type), block.Notes, block.IsCompleted,
		block.CreatedAt.Format(time.RFC3339), block.UpdatedAt.Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetTimeBlock(id string) (models.TimeBlock, error) {
	row := s.db.QueryRow(`SELECT `+blockColumns+` FROM time_blocks WHERE id = ?`, id)
	return scanTimeBlock(row)
}

func (s *Store) GetTimeBlocksByTask(taskID string) ([]models.TimeBlock, error) {
	rows, err := s.db.Query(`
		SELECT `+blockColumns+` FROM time_blocks
		WHERE task_id = ? ORDER BY start_time`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeBlocks(rows)
}

func (s *Store) GetTimeBlocksByDate(ownerID, date string) ([]models.TimeBlock, error) {
	// start_time is stored as RFC3339, so a date prefix match selects the
	// calendar day.
	rows, err := s.db.Query(`
		SELECT `+blockColumns+` FROM time_blocks
		WHERE owner_id = ? AND start_time LIKE ? || '%'
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
		UPDATE time_blocks SET owner_id = ?, task_id = ?, start_time = ?,
			end_time = ?, type = ?, notes = ?, is_completed = ?, updated_at = ?
		WHERE id = ?`,
		block.OwnerID, nullableString(block.TaskID),
		block.StartTime.Format(time.RFC3339), block.EndTime.Format(time.RFC3339),
		string(block.Type), block.Notes, block.IsCompleted,
		block.UpdatedAt.Format(time.RFC3339), block.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "time block", block.ID)
}

func (s *Store) DeleteTimeBlock(id string) error {
	res, err := s.db.Exec(`DELETE FROM time_blocks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "time block", id)
}

func scanTimeBlock(row rowScanner) (models.TimeBlock, error) {
	var b models.TimeBlock
	var taskID sql.NullString
	var blockType, startTime, endTime, createdAt, updatedAt string

	err := row.Scan(
		&b.ID, &b.OwnerID, &taskID, &startTime, &endTime,
		&blockType, &b.Notes, &b.IsCompleted, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.TimeBlock{}, err
	}

	b.Type = models.BlockType(blockType)
	if taskID.Valid {
		b.TaskID = &taskID.String
	}
	if b.StartTime, err = time.Parse(time.RFC3339, startTime); err != nil {
		return models.TimeBlock{}, fmt.Errorf("invalid start_time for block %s: %w", b.ID, err)
	}
	if b.EndTime, err = time.Parse(time.RFC3339, endTime); err != nil {
		return models.TimeBlock{}, fmt.Errorf("invalid end_time for block %s: %w", b.ID, err)
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.TimeBlock{}, err
	}
	if b.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.TimeBlock{}, err
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
