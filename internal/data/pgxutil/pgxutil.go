// Package pgxutil runs pgx-native queries against a database/sql pool opened
// with the pgx stdlib driver, so repositories keep one *sql.DB while scanning
// rows with pgx's struct mapping.
package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

var errNotPgx = errors.New("database/sql pool is not backed by the pgx driver")

// WithConn pins one pooled connection and hands fn its underlying *pgx.Conn.
// Statements inside fn run on the same session.
func WithConn(ctx context.Context, db *sql.DB, fn func(*pgx.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return conn.Raw(func(driverConn any) error {
		c, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return errNotPgx
		}
		return fn(c.Conn())
	})
}

// QueryOne scans the single row q returns into a T, matching columns to the
// struct's db tags. pgx.ErrNoRows is returned as is.
func QueryOne[T any](ctx context.Context, db *sql.DB, q string, args ...any) (*T, error) {
	var out *T
	err := WithConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
		return err
	})
	return out, err
}

// QueryAll scans every row q returns into a T. An empty result is an empty,
// non-nil slice.
func QueryAll[T any](ctx context.Context, db *sql.DB, q string, args ...any) ([]*T, error) {
	var out []*T
	err := WithConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*T{}
	}
	return out, nil
}

// QueryColumn collects the single column q returns.
func QueryColumn[T any](ctx context.Context, db *sql.DB, q string, args ...any) ([]T, error) {
	var out []T
	err := WithConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowTo[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
