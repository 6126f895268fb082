package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// Table is a tabular query result: column names in select order and one
// map per row, rows in result order.
type Table struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// TableRepo runs read-only statements and caches their results by SQL text.
type TableRepo struct {
	pool  Pool
	cache TableCache
	log   *zap.Logger
}

// NewTableRepo wires a TableRepo.  pool may be nil when the database was
// unreachable at start-up; cache may be nil to disable caching.
func NewTableRepo(pool Pool, cache TableCache, log *zap.Logger) *TableRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &TableRepo{pool: pool, cache: cache, log: log}
}

// QueryTable executes query and returns its rows.  Identical query text
// is answered from the cache.  On a missing pool or a failed query the
// returned table is empty and the error describes why; it never panics.
func (r *TableRepo) QueryTable(ctx context.Context, query string) (Table, error) {
	if r.cache != nil {
		if t, ok := r.cache.Get(ctx, query); ok {
			return t, nil
		}
	}
	if r.pool == nil {
		return Table{}, ErrNoPool
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return Table{}, fmt.Errorf("query table: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	t := Table{Columns: make([]string, len(fields)), Rows: []map[string]any{}}
	for i, f := range fields {
		t.Columns[i] = f.Name
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return Table{}, fmt.Errorf("query table: read row: %w", err)
		}
		row := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(vals) {
				row[col] = normalizeValue(vals[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("query table: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, query, t)
	}
	r.log.Debug("table loaded", zap.Int("rows", len(t.Rows)), zap.Int("columns", len(t.Columns)))
	return t, nil
}

// ClearCache drops every cached result.
func (r *TableRepo) ClearCache(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Clear(ctx)
}

// normalizeValue turns driver types without a natural JSON form into
// plain values.  A table read back from Redis still differs in Go types
// (integers come back as float64, arrays as []any); model.EmployeeFromRow
// decodes both shapes to the same Employee.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(t).String()
	}
	return v
}
