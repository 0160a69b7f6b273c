package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type Task struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"owner_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	IsUrgent          bool       `json:"is_urgent"`
	IsImportant       bool       `json:"is_important"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty"` // minutes
	DueDate           *time.Time `json:"due_date,omitempty"`
	Status            TaskStatus `json:"status"`
	Tags              []string   `json:"tags,omitempty"`
	Color             string     `json:"color,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
