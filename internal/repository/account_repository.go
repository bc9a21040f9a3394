package repository

import (
	"context"
	"fmt"

	"cakeshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const accountColumns = "id, username, email, password, full_name, role, status, created_at"

// accountRepository implements AccountRepository using PostgreSQL.
type accountRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAccountRepository creates a new PostgreSQL-backed account repository.
func NewAccountRepository(pool *pgxpool.Pool, logger zerolog.Logger) AccountRepository {
	return &accountRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "account").Logger(),
	}
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Password, &a.FullName, &a.Role, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List retrieves all staff accounts.
func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	sql := "SELECT " + accountColumns + " FROM accounts ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query accounts")
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty listing encodes as [] on the wire
	accounts := make([]model.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// GetByID retrieves an account by ID, or nil when it does not exist.
func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByUsername retrieves an account by username.
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.getOne(ctx, "username = $1", username)
}

// GetByEmail retrieves an account by email.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *accountRepository) getOne(ctx context.Context, cond string, arg any) (*model.Account, error) {
	sql := "SELECT " + accountColumns + " FROM accounts WHERE " + cond

	a, err := scanAccount(r.pool.QueryRow(ctx, sql, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query account")
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return a, nil
}

// Create inserts an account. The payload password must already be hashed.
func (r *accountRepository) Create(ctx context.Context, payload model.AccountCreate) (*model.Account, error) {
	sql := `
		INSERT INTO accounts (username, email, password, full_name, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		payload.Username, payload.Email, payload.Password,
		payload.FullName, payload.Role, payload.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("username", payload.Username).Msg("failed to create account")
		return nil, translateError(err, "account username or email already exists")
	}

	return r.GetByID(ctx, id)
}
