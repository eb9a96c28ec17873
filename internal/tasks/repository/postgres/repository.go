package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/internal/tasks/domain"
)

const taskColumns = `id, user_id, title, description, priority, status,
		due_date, completed_at, created_at, updated_at`

// DBPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBPool
}

func NewPostgresRepository(db DBPool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tasks (id, user_id, title, description, priority, status,
            due_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, task.ID, task.UserID, task.Title, task.Description, task.Priority,
		task.Status, task.DueDate, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return transient("create task", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
		LIMIT 1;
	`
	task, err := scanTask(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, transient("get task by id", err)
	}

	return task, nil
}

// List builds the WHERE clause incrementally from the filter. Conditions are
// ANDed; an empty filter lists everything the account owns.
func (r *PostgresRepository) List(ctx context.Context, userID string, filter domain.Filter) ([]*domain.Task, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.OverdueOnly {
		conditions = append(conditions, "due_date < now() AND status NOT IN ('completed', 'cancelled')")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.DueAfter != nil {
		args = append(args, *filter.DueAfter)
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if filter.DueBefore != nil {
		args = append(args, *filter.DueBefore)
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC;
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, transient("list tasks", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, transient("list tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, transient("list tasks", err)
	}

	return tasks, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *domain.Task) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tasks SET
            title = $3,
            description = $4,
            priority = $5,
            status = $6,
            due_date = $7,
            completed_at = $8,
            updated_at = now()
        WHERE id = $1 AND user_id = $2
    `, task.ID, task.UserID, task.Title, task.Description, task.Priority,
		task.Status, task.DueDate, task.CompletedAt)
	if err != nil {
		return transient("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM tasks
        WHERE id = $1 AND user_id = $2
    `, id, userID)
	if err != nil {
		return transient("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// BulkComplete marks every still-open task in ids as completed and reports
// how many rows changed. Already-completed and foreign tasks are skipped,
// not errors.
func (r *PostgresRepository) BulkComplete(ctx context.Context, ids []string, userID string) (int, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE tasks SET
            status = 'completed',
            completed_at = now(),
            updated_at = now()
        WHERE id = ANY($1) AND user_id = $2 AND status != 'completed'
    `, ids, userID)
	if err != nil {
		return 0, transient("bulk complete tasks", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *PostgresRepository) Statistics(ctx context.Context, userID string) (*domain.Statistics, error) {
	query := `
		SELECT
			count(*) AS total,
			count(*) FILTER (WHERE status = 'completed') AS completed,
			count(*) FILTER (WHERE status = 'pending') AS pending,
			count(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			count(*) FILTER (WHERE due_date < now() AND status NOT IN ('completed', 'cancelled')) AS overdue,
			count(*) FILTER (WHERE priority IN ('high', 'urgent') AND status != 'completed') AS high_priority
		FROM tasks
		WHERE user_id = $1;
	`

	var stats domain.Statistics
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.Total, &stats.Completed, &stats.Pending,
		&stats.InProgress, &stats.Overdue, &stats.HighPriority,
	)
	if err != nil {
		return nil, transient("task statistics", err)
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}

	return &stats, nil
}

// Productivity aggregates the tasks created since the cutoff. Average
// completion time only counts completed tasks; the rate and score are
// derived from the counters afterwards.
func (r *PostgresRepository) Productivity(ctx context.Context, userID string, since time.Time) (*domain.Productivity, error) {
	query := `
		SELECT
			count(*) AS total,
			count(*) FILTER (WHERE status = 'completed') AS completed,
			coalesce(avg(EXTRACT(EPOCH FROM (completed_at - created_at)) / 3600)
				FILTER (WHERE status = 'completed' AND completed_at IS NOT NULL), 0) AS avg_hours
		FROM tasks
		WHERE user_id = $1 AND created_at >= $2;
	`

	var prod domain.Productivity
	err := r.db.QueryRow(ctx, query, userID, since).Scan(
		&prod.TotalTasks, &prod.CompletedTasks, &prod.AvgCompletionHours,
	)
	if err != nil {
		return nil, transient("task productivity", err)
	}

	prod.Recalculate()

	return &prod, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Priority, &task.Status, &task.DueDate, &task.CompletedAt,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func transient(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrTransientStore)
}
