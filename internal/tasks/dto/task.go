package dto

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/internal/tasks/domain"
	"github.com/joselazo21/todo-list/pkg/constant"
)

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (in CreateTaskInput) Validate() error {
	if len(strings.TrimSpace(in.Title)) < constant.MinTaskTitleLen {
		return fmt.Errorf("%w: title must be at least %d characters", apperrors.ErrValidation, constant.MinTaskTitleLen)
	}
	if in.Priority != "" && !domain.Priority(in.Priority).Valid() {
		return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, in.Priority)
	}
	return nil
}

// UpdateTaskInput carries partial updates. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

func (in UpdateTaskInput) Validate() error {
	if in.Title != nil && len(strings.TrimSpace(*in.Title)) < constant.MinTaskTitleLen {
		return fmt.Errorf("%w: title must be at least %d characters", apperrors.ErrValidation, constant.MinTaskTitleLen)
	}
	if in.Priority != nil && !domain.Priority(*in.Priority).Valid() {
		return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *in.Priority)
	}
	if in.Status != nil && !domain.Status(*in.Status).Valid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *in.Status)
	}
	return nil
}

type BulkCompleteInput struct {
	IDs []string `json:"ids"`
}

func (in BulkCompleteInput) Validate() error {
	if len(in.IDs) == 0 {
		return fmt.Errorf("%w: ids must not be empty", apperrors.ErrValidation)
	}
	return nil
}

type TaskOutput struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Overdue     bool       `json:"overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTaskOutput(t *domain.Task) TaskOutput {
	return TaskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Overdue:     t.Overdue(time.Now()),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type ListOutput struct {
	Tasks []TaskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type BulkCompleteOutput struct {
	Completed int `json:"completed"`
}
