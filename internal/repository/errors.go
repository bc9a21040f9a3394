package repository

import (
	"errors"

	"cakeshop/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps PostgreSQL constraint failures onto domain errors so
// layers above the repository never inspect driver codes. Anything
// unrecognized passes through unchanged.
func translateError(err error, conflictMsg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return model.NewConflictError(conflictMsg)
		}
	}
	return err
}
