package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/invigilate/internal/db"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

var _ Store = (*PostgresStore)(nil)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// PostgresStore is the relational Store backed by a pgx pool.
type PostgresStore struct {
	pg *db.PostgresDB
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(pg *db.PostgresDB) *PostgresStore {
	return &PostgresStore{
		pg: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// queryOne runs a single-row query built by b and scans it with scan.
func queryOne[T any](ctx context.Context, q querier, b squirrel.Sqlizer, what string, scan func(scanner) (*T, error)) (*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("entity", what).Msg("Error building SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", what, err)
	}

	out, err := scan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying %s: %w", what, err)
	}
	return out, nil
}

// queryAll runs a multi-row query built by b and scans every row with scan.
func queryAll[T any](ctx context.Context, q querier, b squirrel.Sqlizer, what string, scan func(scanner) (*T, error)) ([]*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("entity", what).Msg("Error building SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", what, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("entity", what).Msg("Error executing query")
		return nil, fmt.Errorf("error querying %s: %w", what, err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			logger.Error().Err(err).Str("entity", what).Msg("Error scanning row")
			return nil, fmt.Errorf("error scanning %s row: %w", what, err)
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("entity", what).Msg("Error iterating rows")
		return nil, fmt.Errorf("error iterating %s rows: %w", what, err)
	}
	return out, nil
}

// deleteByID deletes one row and reports whether it existed.
func (s *PostgresStore) deleteByID(ctx context.Context, table string, id int64) (bool, error) {
	sql, args, err := s.sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete %s query: %w", table, err)
	}

	tag, err := s.pg.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Int64("id", id).Msg("Error executing delete query")
		return false, fmt.Errorf("error deleting from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
