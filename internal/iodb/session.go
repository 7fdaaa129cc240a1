package iodb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	searchPathQuery    = `SELECT pg_catalog.current_setting('search_path')`
	setSearchPathQuery = `SELECT pg_catalog.set_config('search_path', $1, false)`
)

// Executor is the database/sql handle behind a session: the pinned
// *sql.Conn, or the *sql.Tx inside InTx. Its method set matches
// gorm.ConnPool.
type Executor interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLer is implemented by connections that expose their Executor.
type SQLer interface {
	SQL() Executor
}

// session is a tenant.Conn over one pinned connection. Inside a
// transaction conn is nil and ex is the *sql.Tx.
type session struct {
	ex   Executor
	conn *sql.Conn
}

func newSession(conn *sql.Conn) *session {
	return &session{ex: conn, conn: conn}
}

// SQL returns the database/sql handle of the session.
func (s *session) SQL() Executor {
	return s.ex
}

// Exec implements tenant.Conn. Without args pgx sends query through the
// simple protocol, so query may hold several statements.
func (s *session) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.ex.ExecContext(ctx, query, args...)
	return err
}

// QueryColumn implements tenant.Conn.
func (s *session) QueryColumn(
	ctx context.Context,
	query string,
	args ...any,
) ([]string, error) {
	rows, err := s.ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var v sql.NullString
		if err = rows.Scan(&v); err != nil {
			return nil, err
		}
		res = append(res, v.String)
	}
	return res, rows.Err()
}

// InTx implements tenant.Conn.
func (s *session) InTx(
	ctx context.Context,
	fn func(ctx context.Context, tx tenant.Conn) error,
) (err error) {
	if s.conn == nil {
		return fn(ctx, s)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, &session{ex: tx}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			slog.Error("Cannot roll back transaction", "error", rerr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit transaction: %w", err)
	}
	return nil
}

// SearchPath implements tenant.Conn.
func (s *session) SearchPath(ctx context.Context) ([]string, error) {
	var res string
	err := s.ex.QueryRowContext(ctx, searchPathQuery).Scan(&res)
	if err != nil {
		return nil, err
	}
	return tenant.ParseSearchPath(res), nil
}

// SetSearchPath implements tenant.Conn.
func (s *session) SetSearchPath(ctx context.Context, path []string) error {
	var res string
	return s.ex.QueryRowContext(
		ctx, setSearchPathQuery, tenant.FormatSearchPath(path),
	).Scan(&res)
}

// Release implements db.Session.
func (s *session) Release() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	if errors.Is(err, sql.ErrConnDone) {
		return nil
	}
	return err
}

// Discard implements db.Session. The physical connection is closed, so the
// pool never hands it out again.
func (s *session) Discard() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Raw(func(dc any) error {
		if c, ok := dc.(*stdlib.Conn); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = c.Conn().Close(ctx)
		}
		return driver.ErrBadConn
	})
	s.conn = nil
	slog.Warn("Discarded database connection")
	if errors.Is(err, driver.ErrBadConn) {
		return nil
	}
	return err
}
