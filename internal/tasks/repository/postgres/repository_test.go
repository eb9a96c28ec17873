package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/internal/tasks/domain"
	repo "github.com/joselazo21/todo-list/internal/tasks/repository/postgres"
)

var taskColumns = []string{
	"id", "user_id", "title", "description", "priority", "status",
	"due_date", "completed_at", "created_at", "updated_at",
}

func taskRow(id, userID, title string, status domain.Status) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(taskColumns).
		AddRow(id, userID, title, "", domain.PriorityMedium, status,
			(*time.Time)(nil), (*time.Time)(nil), now, now)
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	task := &domain.Task{
		ID:        "task-1",
		UserID:    "user-1",
		Title:     "Buy milk",
		Priority:  domain.PriorityMedium,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO tasks").
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Priority,
				task.Status, task.DueDate, task.CreatedAt, task.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, task)
		assert.NoError(t, err)
	})

	t.Run("database error maps to transient", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO tasks").
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Priority,
				task.Status, task.DueDate, task.CreatedAt, task.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, task)
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("task-1", "user-1").
			WillReturnRows(taskRow("task-1", "user-1", "Buy milk", domain.StatusPending))

		task, err := r.GetByID(ctx, "task-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "task-1", task.ID)
		assert.Equal(t, "Buy milk", task.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("task-404", "user-1").
			WillReturnError(pgx.ErrNoRows)

		task, err := r.GetByID(ctx, "task-404", "user-1")
		require.NoError(t, err)
		assert.Nil(t, task)
	})

	t.Run("foreign task is invisible", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("task-1", "user-2").
			WillReturnError(pgx.ErrNoRows)

		task, err := r.GetByID(ctx, "task-1", "user-2")
		require.NoError(t, err)
		assert.Nil(t, task)
	})
}

func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	t.Run("no filter lists everything the account owns", func(t *testing.T) {
		rows := pgxmock.NewRows(taskColumns).
			AddRow("task-1", "user-1", "Buy milk", "", domain.PriorityMedium, domain.StatusPending,
				(*time.Time)(nil), (*time.Time)(nil), time.Now(), time.Now()).
			AddRow("task-2", "user-1", "Write report", "", domain.PriorityHigh, domain.StatusCompleted,
				(*time.Time)(nil), (*time.Time)(nil), time.Now(), time.Now())

		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1").
			WillReturnRows(rows)

		tasks, err := r.List(ctx, "user-1", domain.Filter{})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "task-1", tasks[0].ID)
		assert.Equal(t, "task-2", tasks[1].ID)
	})

	t.Run("status and priority filters become positional args", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1", domain.StatusPending, domain.PriorityHigh).
			WillReturnRows(taskRow("task-1", "user-1", "Buy milk", domain.StatusPending))

		tasks, err := r.List(ctx, "user-1", domain.Filter{
			Status:   domain.StatusPending,
			Priority: domain.PriorityHigh,
		})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("search filter wraps the term in wildcards", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1", "%milk%").
			WillReturnRows(taskRow("task-1", "user-1", "Buy milk", domain.StatusPending))

		tasks, err := r.List(ctx, "user-1", domain.Filter{Search: "milk"})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("due range filter", func(t *testing.T) {
		after := time.Now().Add(-24 * time.Hour)
		before := time.Now().Add(24 * time.Hour)

		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1", after, before).
			WillReturnRows(taskRow("task-1", "user-1", "Buy milk", domain.StatusPending))

		tasks, err := r.List(ctx, "user-1", domain.Filter{DueAfter: &after, DueBefore: &before})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows(taskColumns))

		tasks, err := r.List(ctx, "user-1", domain.Filter{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("database error maps to transient", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.List(ctx, "user-1", domain.Filter{})
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}

func TestUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	task := &domain.Task{
		ID:       "task-1",
		UserID:   "user-1",
		Title:    "Buy milk",
		Priority: domain.PriorityMedium,
		Status:   domain.StatusPending,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE tasks").
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Priority,
				task.Status, task.DueDate, task.CompletedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.Update(ctx, task)
		assert.NoError(t, err)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE tasks").
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Priority,
				task.Status, task.DueDate, task.CompletedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := r.Update(ctx, task)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs("task-1", "user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := r.Delete(ctx, "task-1", "user-1")
		assert.NoError(t, err)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs("task-404", "user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := r.Delete(ctx, "task-404", "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestBulkComplete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	t.Run("reports only the rows that changed", func(t *testing.T) {
		ids := []string{"task-1", "task-2", "task-3"}

		mock.ExpectExec("UPDATE tasks").
			WithArgs(ids, "user-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))

		count, err := r.BulkComplete(ctx, ids, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("database error maps to transient", func(t *testing.T) {
		mock.ExpectExec("UPDATE tasks").
			WithArgs([]string{"task-1"}, "user-1").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.BulkComplete(ctx, []string{"task-1"}, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}

func TestStatistics(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)

	statsColumns := []string{"total", "completed", "pending", "in_progress", "overdue", "high_priority"}

	t.Run("computes the completion rate", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows(statsColumns).AddRow(10, 4, 5, 1, 2, 3))

		stats, err := r.Statistics(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 10, stats.Total)
		assert.Equal(t, 4, stats.Completed)
		assert.Equal(t, 2, stats.Overdue)
		assert.InDelta(t, 40.0, stats.CompletionRate, 0.001)
	})

	t.Run("no tasks means a zero rate", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows(statsColumns).AddRow(0, 0, 0, 0, 0, 0))

		stats, err := r.Statistics(ctx, "user-1")
		require.NoError(t, err)
		assert.Zero(t, stats.CompletionRate)
	})

	t.Run("database error maps to transient", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WithArgs("user-1").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.Statistics(ctx, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}

func TestProductivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresRepository(mock)
	since := time.Now().AddDate(0, 0, -30)

	t.Run("derives rate and score from the counters", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WithArgs("user-1", since).
			WillReturnRows(pgxmock.NewRows([]string{"total", "completed", "avg_hours"}).
				AddRow(10, 5, 48.0))

		prod, err := r.Productivity(ctx, "user-1", since)
		require.NoError(t, err)
		assert.Equal(t, 10, prod.TotalTasks)
		assert.Equal(t, 5, prod.CompletedTasks)
		assert.InDelta(t, 50.0, prod.CompletionRate, 0.001)
		assert.InDelta(t, 48.0, prod.AvgCompletionHours, 0.001)
		assert.InDelta(t, 50*0.7+(100-48)*0.3, prod.Score, 0.001)
	})

	t.Run("empty window scores zero", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WithArgs("user-1", since).
			WillReturnRows(pgxmock.NewRows([]string{"total", "completed", "avg_hours"}).
				AddRow(0, 0, 0.0))

		prod, err := r.Productivity(ctx, "user-1", since)
		require.NoError(t, err)
		assert.Zero(t, prod.TotalTasks)
		assert.Zero(t, prod.CompletionRate)
		assert.Zero(t, prod.Score)
	})

	t.Run("database error maps to transient", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WithArgs("user-1", since).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.Productivity(ctx, "user-1", since)
		assert.ErrorIs(t, err, apperrors.ErrTransientStore)
	})
}
