package domain

import (
	"context"
	"time"
)

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id, userID string) (*Task, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id, userID string) error
	BulkComplete(ctx context.Context, ids []string, userID string) (int, error)
	Statistics(ctx context.Context, userID string) (*Statistics, error)
	Productivity(ctx context.Context, userID string, since time.Time) (*Productivity, error)
}
