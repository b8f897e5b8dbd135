// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package uptime

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wh64dev/wh64-api/internal/platform/database/schema"
	"github.com/wh64dev/wh64-api/internal/platform/dberr"
	"github.com/wh64dev/wh64-api/pkg/pagination"
)

// Pool is the subset of pgxpool.Pool the repository uses.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRecordRepository implements [RecordRepository] using pgx.
type PostgresRecordRepository struct {
	pool Pool
}

// NewRecordRepository creates the Postgres implementation for probe storage.
func NewRecordRepository(pool Pool) *PostgresRecordRepository {
	return &PostgresRecordRepository{pool: pool}
}

/*
Insert stores a probe result.

Parameters:
  - context: context.Context
  - record: probe with measured latency

Returns:
  - error: database execution failure
*/
func (repository *PostgresRecordRepository) Insert(context context.Context, record *HealthRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)`,
		schema.HealthCheck.Table,
		schema.HealthCheck.ID, schema.HealthCheck.ResponseMS, schema.HealthCheck.CheckedAt,
	)

	_, err := repository.pool.Exec(context, query, record.ID, record.ResponseMS, record.CheckedAt)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
List returns one page of probes, newest first, and the total row count.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []HealthRecord: page of probes
  - int: total probes across all pages
  - error: database execution failure
*/
func (repository *PostgresRecordRepository) List(context context.Context, params pagination.Params) ([]HealthRecord, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.HealthCheck.Table)

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		schema.HealthCheck.ID, schema.HealthCheck.ResponseMS, schema.HealthCheck.CheckedAt,
		schema.HealthCheck.Table,
		schema.HealthCheck.CheckedAt,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	records := make([]HealthRecord, 0, params.Limit)
	for rows.Next() {
		var record HealthRecord
		if err := rows.Scan(&record.ID, &record.ResponseMS, &record.CheckedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	return records, total, nil
}
