package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/joselazo21/todo-list/internal/auth/domain"
	apperrors "github.com/joselazo21/todo-list/internal/errors"
)

const uniqueViolation = "23505"

const accountColumns = `id, name, email, password_hash, is_active, is_email_verified,
		failed_login_attempts, locked_until, last_login_ip, last_login_at, created_at, updated_at`

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

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE lower(email) = lower($1)
		LIMIT 1;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, transient("get account by email", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, transient("get account by id", err)
	}

	return account, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, password_hash, is_active, is_email_verified,
            failed_login_attempts, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, account.ID, account.Name, account.Email, account.PasswordHash, account.IsActive,
		account.IsEmailVerified, account.FailedLoginAttempts, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicateEmail
		}
		return transient("create account", err)
	}

	return nil
}

// RecordFailedAttempt bumps the failure counter in one conditional update so
// concurrent attempts against the same account cannot lose increments. When
// the incremented counter reaches threshold, the lock is applied and the
// counter resets to zero in the same statement.
func (r *PostgresRepository) RecordFailedAttempt(ctx context.Context, id string, threshold int, lockFor time.Duration) (*domain.Account, error) {
	query := `
		UPDATE users SET
			failed_login_attempts = CASE
				WHEN failed_login_attempts + 1 >= $2 THEN 0
				ELSE failed_login_attempts + 1
			END,
			locked_until = CASE
				WHEN failed_login_attempts + 1 >= $2 THEN now() + $3
				ELSE locked_until
			END,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, id, threshold, lockFor))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, transient("record failed attempt", err)
	}

	return account, nil
}

func (r *PostgresRepository) RecordSuccessfulLogin(ctx context.Context, id, ip string) (*domain.Account, error) {
	query := `
		UPDATE users SET
			failed_login_attempts = 0,
			locked_until = NULL,
			last_login_ip = $2,
			last_login_at = now(),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, id, ip))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, transient("record successful login", err)
	}

	return account, nil
}

func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		UPDATE users SET
			is_email_verified = TRUE,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, transient("mark email verified", err)
	}

	return account, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE users SET
            password_hash = $2,
            updated_at = now()
        WHERE id = $1
    `, id, passwordHash)
	if err != nil {
		return transient("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountUnavailable
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.IsActive, &account.IsEmailVerified, &account.FailedLoginAttempts,
		&account.LockedUntil, &account.LastLoginIP, &account.LastLoginAt,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// transient tags store faults so callers can distinguish a retryable outage
// from a policy failure via errors.Is.
func transient(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrTransientStore)
}
