package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nutrition-admin/internal/metrics"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// isUndefinedTable reports a missing relation, which means the n8n workflow
// has not created its tables yet.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return false
}

// wrapQueryErr annotates a driver error with the repository operation and
// records the query outcome.
func wrapQueryErr(op string, start time.Time, err error) error {
	metrics.ObserveQuery(op, start, err)
	if err == nil {
		return nil
	}
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: relation missing: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}

func boolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	b := nb.Bool
	return &b
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
