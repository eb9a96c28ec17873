package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/internal/mocks"
	"github.com/joselazo21/todo-list/internal/tasks/domain"
	"github.com/joselazo21/todo-list/internal/tasks/dto"
	"github.com/joselazo21/todo-list/internal/tasks/service"
)

func TestTaskService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	t.Run("success", func(t *testing.T) {
		input := dto.CreateTaskInput{Title: "  Write report  ", Priority: "high"}

		var created *domain.Task
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task *domain.Task) error {
				created = task
				return nil
			})

		task, err := taskService.Create(context.Background(), "user-1", input)
		require.NoError(t, err)
		assert.Equal(t, created, task)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "user-1", task.UserID)
		assert.Equal(t, "Write report", task.Title, "title is trimmed")
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		assert.Equal(t, domain.StatusPending, task.Status)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("defaults to medium priority", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		task, err := taskService.Create(context.Background(), "user-1", dto.CreateTaskInput{Title: "Buy milk"})
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
	})

	t.Run("title too short", func(t *testing.T) {
		_, err := taskService.Create(context.Background(), "user-1", dto.CreateTaskInput{Title: "ab"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("whitespace padding does not satisfy the minimum", func(t *testing.T) {
		_, err := taskService.Create(context.Background(), "user-1", dto.CreateTaskInput{Title: "  a   "})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := taskService.Create(context.Background(), "user-1", dto.CreateTaskInput{Title: "Buy milk", Priority: "asap"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrTransientStore)

		_, err := taskService.Create(context.Background(), "user-1", dto.CreateTaskInput{Title: "Buy milk"})
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}

func TestTaskService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	t.Run("success", func(t *testing.T) {
		existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk"}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)

		task, err := taskService.Get(context.Background(), "task-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, existing, task)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-404", "user-1").Return(nil, nil)

		_, err := taskService.Get(context.Background(), "task-404", "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestTaskService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	strPtr := func(s string) *string { return &s }

	t.Run("partial update leaves untouched fields alone", func(t *testing.T) {
		existing := &domain.Task{
			ID: "task-1", UserID: "user-1", Title: "Buy milk",
			Description: "2 liters", Priority: domain.PriorityLow, Status: domain.StatusPending,
		}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		task, err := taskService.Update(context.Background(), "task-1", "user-1", dto.UpdateTaskInput{
			Title: strPtr("Buy oat milk"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", task.Title)
		assert.Equal(t, "2 liters", task.Description)
		assert.Equal(t, domain.PriorityLow, task.Priority)
	})

	t.Run("status change to completed stamps completed_at", func(t *testing.T) {
		existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk", Status: domain.StatusInProgress}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		task, err := taskService.Update(context.Background(), "task-1", "user-1", dto.UpdateTaskInput{
			Status: strPtr("completed"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, task.Status)
		require.NotNil(t, task.CompletedAt)
	})

	t.Run("priority change on a completed task is rejected", func(t *testing.T) {
		existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk", Status: domain.StatusCompleted}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)

		_, err := taskService.Update(context.Background(), "task-1", "user-1", dto.UpdateTaskInput{
			Priority: strPtr("urgent"),
		})
		assert.ErrorIs(t, err, apperrors.ErrTaskCompleted)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := taskService.Update(context.Background(), "task-1", "user-1", dto.UpdateTaskInput{
			Status: strPtr("done"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-404", "user-1").Return(nil, nil)

		_, err := taskService.Update(context.Background(), "task-404", "user-1", dto.UpdateTaskInput{
			Title: strPtr("Anything"),
		})
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestTaskService_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	t.Run("success", func(t *testing.T) {
		existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk", Status: domain.StatusPending}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		before := time.Now()
		task, err := taskService.Complete(context.Background(), "task-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, task.Status)
		require.NotNil(t, task.CompletedAt)
		assert.False(t, task.CompletedAt.Before(before))
	})

	t.Run("already completed", func(t *testing.T) {
		existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk", Status: domain.StatusCompleted}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)

		_, err := taskService.Complete(context.Background(), "task-1", "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTaskCompleted)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-404", "user-1").Return(nil, nil)

		_, err := taskService.Complete(context.Background(), "task-404", "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestTaskService_Reopen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	t.Run("completed task reopens and clears completed_at", func(t *testing.T) {
		completedAt := time.Now().Add(-time.Hour)
		existing := &domain.Task{
			ID: "task-1", UserID: "user-1", Title: "Buy milk",
			Status: domain.StatusCompleted, CompletedAt: &completedAt,
		}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		task, err := taskService.Reopen(context.Background(), "task-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, task.Status)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("already pending", func(t *testing.T) {
		existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk", Status: domain.StatusPending}
		mockRepo.EXPECT().GetByID(gomock.Any(), "task-1", "user-1").Return(existing, nil)

		_, err := taskService.Reopen(context.Background(), "task-1", "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTaskPending)
	})
}

func TestTaskService_BulkComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	t.Run("success", func(t *testing.T) {
		ids := []string{"task-1", "task-2", "task-3"}
		mockRepo.EXPECT().BulkComplete(gomock.Any(), ids, "user-1").Return(2, nil)

		count, err := taskService.BulkComplete(context.Background(), "user-1", dto.BulkCompleteInput{IDs: ids})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty ids", func(t *testing.T) {
		_, err := taskService.BulkComplete(context.Background(), "user-1", dto.BulkCompleteInput{})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().BulkComplete(gomock.Any(), gomock.Any(), "user-1").
			Return(0, errors.New("connection reset"))

		_, err := taskService.BulkComplete(context.Background(), "user-1", dto.BulkCompleteInput{IDs: []string{"task-1"}})
		assert.Error(t, err)
	})
}

func TestTaskService_Statistics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	expected := &domain.Statistics{Total: 10, Completed: 4, Pending: 5, InProgress: 1, Overdue: 2, HighPriority: 3, CompletionRate: 40}
	mockRepo.EXPECT().Statistics(gomock.Any(), "user-1").Return(expected, nil)

	stats, err := taskService.Statistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}

func TestTaskService_Productivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	taskService := service.NewTaskService(mockRepo)

	t.Run("passes the window cutoff to the repository", func(t *testing.T) {
		want := &domain.Productivity{TotalTasks: 10, CompletedTasks: 7}

		var since time.Time
		mockRepo.EXPECT().Productivity(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, cutoff time.Time) (*domain.Productivity, error) {
				since = cutoff
				return want, nil
			})

		prod, err := taskService.Productivity(context.Background(), "user-1", 7)
		require.NoError(t, err)
		assert.Equal(t, want, prod)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), since, time.Minute)
	})

	t.Run("non-positive days falls back to thirty", func(t *testing.T) {
		var since time.Time
		mockRepo.EXPECT().Productivity(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, cutoff time.Time) (*domain.Productivity, error) {
				since = cutoff
				return &domain.Productivity{}, nil
			})

		_, err := taskService.Productivity(context.Background(), "user-1", 0)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), since, time.Minute)
	})

	t.Run("repository error is passed through", func(t *testing.T) {
		mockRepo.EXPECT().Productivity(gomock.Any(), "user-1", gomock.Any()).
			Return(nil, apperrors.ErrTransientStore)

		_, err := taskService.Productivity(context.Background(), "user-1", 30)
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}
