package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// ErrNotFound is the shared sentinel re-exported for repository callers.
var ErrNotFound = apperrors.ErrNotFound

// DBTX abstracts between the pool and an open transaction so that repositories
// can run the same statements inside db.WithTransaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translateNoRows maps pgx.ErrNoRows onto a domain sentinel, leaving other
// errors untouched.
func translateNoRows(err error, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}
