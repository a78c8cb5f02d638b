// Package records hydrates search hits back into persisted records.
//
// A search response carries document IDs and denormalized sources; the
// records a page renders usually live in a relational store. Loaders
// bridge the two: given the hit IDs of one result window they return
// the matching records in hit order.
package records

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/ncobase/facet/log"
)

// Loader hydrates persisted records for a set of search hit IDs. The
// returned slice follows the hit order.
type Loader[T any] interface {
	Load(ctx context.Context, ids []string) ([]T, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[T any] func(ctx context.Context, ids []string) ([]T, error)

func (f LoaderFunc[T]) Load(ctx context.Context, ids []string) ([]T, error) {
	return f(ctx, ids)
}

// ScanFunc reads one record from a row set and returns it together
// with its primary key.
type ScanFunc[T any] func(rows *entsql.Rows) (string, T, error)

// SQLLoader loads records from one table by primary key.
type SQLLoader[T any] struct {
	drv      dialect.Driver
	table    string
	idColumn string
	scan     ScanFunc[T]
}

// NewSQLLoader creates a loader over the given table. idColumn falls
// back to "id" when empty.
func NewSQLLoader[T any](drv dialect.Driver, table, idColumn string, scan ScanFunc[T]) (*SQLLoader[T], error) {
	if drv == nil {
		return nil, errors.New("records: driver is nil")
	}
	if table == "" {
		return nil, errors.New("records: table name is empty")
	}
	if scan == nil {
		return nil, errors.New("records: scan function is nil")
	}
	if idColumn == "" {
		idColumn = "id"
	}
	return &SQLLoader[T]{drv: drv, table: table, idColumn: idColumn, scan: scan}, nil
}

// Load fetches the records for the given IDs and reorders them to
// match. Hits referencing records the store no longer holds are
// skipped rather than failing the page.
func (l *SQLLoader[T]) Load(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	query, queryArgs := entsql.Dialect(l.drv.Dialect()).
		Select("*").
		From(entsql.Table(l.table)).
		Where(entsql.In(l.idColumn, args...)).
		Query()

	rows := &entsql.Rows{}
	if err := l.drv.Query(ctx, query, queryArgs, rows); err != nil {
		return nil, fmt.Errorf("failed to load records from %s: %w", l.table, err)
	}
	defer rows.Close()

	byID := make(map[string]T, len(ids))
	for rows.Next() {
		id, record, err := l.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record from %s: %w", l.table, err)
		}
		byID[id] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records from %s: %w", l.table, err)
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		record, ok := byID[id]
		if !ok {
			log.Debugf(ctx, "record %s missing from %s, skipping", id, l.table)
			continue
		}
		out = append(out, record)
	}
	return out, nil
}
