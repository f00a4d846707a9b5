// Package postgres implements the repository ports on PostgreSQL through
// pgx. Every counter change is a single conditional statement; the funding
// confirmation is the only multi-statement transaction.
package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"adserve/internal/core/domain"
)

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// wrapError converts driver errors into domain errors. entity and key name
// the row for not-found reporting.
func wrapError(op, entity string, key any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(entity, key)
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	switch code, constraint := pgCode(err); code {
	case codeUniqueViolation:
		return domain.NewConflictError("DUPLICATE", entity+" violates "+constraint, err)
	case codeForeignKeyViolation:
		return domain.NewConflictError("REFERENCED", entity+" violates "+constraint, err)
	case codeCheckViolation:
		return domain.NewValidationError("CONSTRAINT_VIOLATION", entity+" violates "+constraint)
	}
	return domain.NewDatabaseError(op, err)
}

// columns renders fields qualified with alias.
func columns(alias string, fields []string) string {
	if alias == "" {
		return strings.Join(fields, ", ")
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = alias + "." + f
	}
	return strings.Join(out, ", ")
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
