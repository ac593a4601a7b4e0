package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
)

// Postgres error codes checked by the repositories.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	// invalidTextRepresentation is raised when an id is not a valid UUID.
	invalidTextRepresentation = "22P02"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// withTx runs fn in a transaction. beforeCommit, if set, runs after fn succeeded; an error
// from either rolls everything back.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error, beforeCommit portsrepo.BeforeCommitFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := fn(tx); err != nil {
		return err
	}
	if beforeCommit != nil {
		if err := beforeCommit(ctx); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isMissingRow reports whether a lookup error means the row does not exist. An id that is
// not a UUID cannot match a row either.
func isMissingRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == invalidTextRepresentation
}

// mapWriteError translates constraint violations into application errors.
func mapWriteError(err error, what string) error {
	switch pgErrorCode(err) {
	case uniqueViolation:
		return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
	case foreignKeyViolation:
		return fmt.Errorf("%w: %s references a missing record", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("failed to save %s: %w", what, err)
}

// expectOneRow turns an UPDATE/DELETE that touched nothing into ErrNotFound.
func expectOneRow(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s not found: %w", what, apperrors.ErrNotFound)
	}
	return nil
}
