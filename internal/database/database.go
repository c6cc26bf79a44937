// Package database owns MySQL access: opening the pooled connection,
// bootstrapping the schema, and executing parameterized statements.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate reports a write rejected by a unique key.
var ErrDuplicate = errors.New("duplicate key")

const connectTimeout = 5 * time.Second

type Config struct {
	Host     string
	User     string
	Password string
	Name     string
}

// DB wraps the shared connection pool. Every query checks a connection out of
// the pool and returns it on all paths.
type DB struct {
	pool *sql.DB
}

// Open creates the database if it does not exist, connects to it, and creates
// the tables if absent. Any failure is returned to the caller.
func Open(cfg Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := ensureDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	pool, err := sql.Open("mysql", dsn(cfg, cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db := &DB{pool: pool}

	if err := db.ensureTables(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure tables: %w", err)
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.pool.Close()
}

func dsn(cfg Config, name string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", cfg.User, cfg.Password, cfg.Host, name)
}

// ensureDatabase connects without a database selected and creates the
// configured one if missing.
func ensureDatabase(ctx context.Context, cfg Config) error {
	server, err := sql.Open("mysql", dsn(cfg, ""))
	if err != nil {
		return err
	}
	defer server.Close()

	_, err = server.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+cfg.Name+"`")
	return err
}

// Row is one result row keyed by column name.
type Row map[string]any

// Select runs a parameterized read and returns the full result set in row
// order. An empty result is a nil slice with a nil error; failures are
// returned as errors, never collapsed into an empty result.
func (d *DB) Select(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := d.pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}

		result = append(result, row)
	}

	return result, rows.Err()
}

// Insert runs a parameterized write and returns the last-insert id, which is
// zero for tables without an auto-increment key.
func (d *DB) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := d.pool.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapDuplicate(err)
	}

	return result.LastInsertId()
}

// wrapDuplicate maps the MySQL duplicate-entry error (1062) to ErrDuplicate
// so callers can treat it as a conflict.
func wrapDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("%w: %s", ErrDuplicate, mysqlErr.Message)
	}

	return err
}

// String returns the column as a string. The driver hands back []byte for
// text columns.
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}

	return ""
}

func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	}

	return 0
}

// Time returns the column as a time.Time; ok is false for NULL or non-time
// values.
func (r Row) Time(col string) (time.Time, bool) {
	t, ok := r[col].(time.Time)
	return t, ok
}
