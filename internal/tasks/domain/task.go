package domain

import (
	"math"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overdue reports whether the task has a due date in the past while still
// open. Completed and cancelled tasks are never overdue.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// Filter narrows a task listing. Zero values mean "no constraint".
type Filter struct {
	Status      Status
	Priority    Priority
	OverdueOnly bool
	Search      string
	DueAfter    *time.Time
	DueBefore   *time.Time
}

// Productivity scores how an account has been working over a recent
// window, based on the tasks created inside it.
type Productivity struct {
	TotalTasks         int     `json:"total_tasks"`
	CompletedTasks     int     `json:"completed_tasks"`
	CompletionRate     float64 `json:"completion_rate"`
	AvgCompletionHours float64 `json:"average_completion_time"`
	Score              float64 `json:"productivity_score"`
}

// Recalculate derives the rate and score from the raw counters. The score
// weighs completion rate at 70% and completion speed at 30%, clamped to
// 0-100; finishing within an hour on average counts as full speed, and
// anything past 100 hours as none.
func (p *Productivity) Recalculate() {
	if p.TotalTasks == 0 {
		p.CompletionRate = 0
		p.Score = 0
		return
	}
	p.CompletionRate = float64(p.CompletedTasks) / float64(p.TotalTasks) * 100
	speed := 100 - math.Min(100, p.AvgCompletionHours)
	p.Score = math.Min(100, p.CompletionRate*0.7+speed*0.3)
}

// Statistics summarizes a single account's tasks.
type Statistics struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"in_progress"`
	Overdue        int     `json:"overdue"`
	HighPriority   int     `json:"high_priority"`
	CompletionRate float64 `json:"completion_rate"`
}
