package repository

import (
	"context"
	"errors"

	"storefront_api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes mapped to domain errors
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	numericOutOfRange   = "22003"
)

// DBTX is the subset of pgxpool.Pool used by the stores. pgxmock pools
// satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PasswordHasher turns a plaintext password into a storable digest
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// translatePgError maps constraint violations to domain errors; other errors
// are returned unchanged.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return errors.Join(model.ErrConflict, err)
	case foreignKeyViolation:
		return errors.Join(model.NewValidationError("referenced record does not exist (%s)", pgErr.ConstraintName), err)
	case numericOutOfRange:
		return errors.Join(model.NewValidationError("numeric value out of range"), err)
	}
	return err
}
