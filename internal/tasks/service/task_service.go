package service

//go:generate mockgen -destination=../../mocks/mock_task_repository.go -package=mocks github.com/joselazo21/todo-list/internal/tasks/domain TaskRepository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/internal/tasks/domain"
	"github.com/joselazo21/todo-list/internal/tasks/dto"
)

type TaskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID string, input dto.CreateTaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	priority := domain.Priority(input.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Priority:    priority,
		Status:      domain.StatusPending,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"task_id": task.ID, "user_id": userID}).Info("Task created")

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID string, filter domain.Filter) ([]*domain.Task, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update applies the non-nil fields of input. Changing the priority of a
// completed task is rejected; reopen it first.
func (s *TaskService) Update(ctx context.Context, id, userID string, input dto.UpdateTaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Priority != nil && task.Status == domain.StatusCompleted {
		return nil, apperrors.ErrTaskCompleted
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = domain.Priority(*input.Priority)
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Status != nil {
		s.transition(task, domain.Status(*input.Status))
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *TaskService) Complete(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task.Status == domain.StatusCompleted {
		return nil, apperrors.ErrTaskCompleted
	}

	s.transition(task, domain.StatusCompleted)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Reopen(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task.Status == domain.StatusPending {
		return nil, apperrors.ErrTaskPending
	}

	s.transition(task, domain.StatusPending)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) BulkComplete(ctx context.Context, userID string, input dto.BulkCompleteInput) (int, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	count, err := s.repo.BulkComplete(ctx, input.IDs, userID)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"user_id": userID, "completed": count}).Info("Tasks bulk completed")

	return count, nil
}

func (s *TaskService) Statistics(ctx context.Context, userID string) (*domain.Statistics, error) {
	return s.repo.Statistics(ctx, userID)
}

// Productivity scores the account over the trailing window of days, 30 when
// the caller passes nothing sensible.
func (s *TaskService) Productivity(ctx context.Context, userID string, days int) (*domain.Productivity, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	return s.repo.Productivity(ctx, userID, since)
}

// transition moves a task between statuses, keeping completed_at in step:
// stamped on entry to completed, cleared on exit.
func (s *TaskService) transition(task *domain.Task, to domain.Status) {
	if to == domain.StatusCompleted && task.Status != domain.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}
	if to != domain.StatusCompleted {
		task.CompletedAt = nil
	}
	task.Status = to
	task.UpdatedAt = time.Now()
}
