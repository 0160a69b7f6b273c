package models

import "time"

type BlockType string

const (
	BlockTypeWork     BlockType = "work"
	BlockTypeBreak    BlockType = "break"
	BlockTypeMeeting  BlockType = "meeting"
	BlockTypePersonal BlockType = "personal"
	BlockTypeExercise BlockType = "exercise"
	BlockTypeLearning BlockType = "learning"
	BlockTypeBuffer   BlockType = "buffer"
)

// TimeBlock is a concrete calendar interval. TaskID is a weak reference:
// a block may exist with no linked task, and the referenced task may have
// been deleted out from under it.
type TimeBlock struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	TaskID      *string   `json:"task_id,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Type        BlockType `json:"type"`
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DurationMinutes returns the block length in whole minutes, rounded.
func (b TimeBlock) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime).Round(time.Minute) / time.Minute)
}
