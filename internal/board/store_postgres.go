// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package board

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

// PostgresMessageRepository implements [MessageRepository] using pgx.
type PostgresMessageRepository struct {
	pool Pool
}

// NewMessageRepository creates the Postgres implementation for guestbook storage.
func NewMessageRepository(pool Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

/*
Insert stores a new guestbook message.

Parameters:
  - context: context.Context
  - message: fully populated entity

Returns:
  - error: database execution failure
*/
func (repository *PostgresMessageRepository) Insert(context context.Context, message *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.MessageLog.Table,
		schema.MessageLog.ID, schema.MessageLog.Nickname, schema.MessageLog.Message,
		schema.MessageLog.SenderIP, schema.MessageLog.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		message.ID, message.Nickname, message.Message, message.SenderIP, message.Created)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
List returns one page of messages, newest first, and the total row count.

The count query runs first so an empty page past the end still reports the
true total.

Parameters:
  - context: context.Context
  - params: pagination.Params from the query string

Returns:
  - []Message: page of entries
  - int: total entries across all pages
  - error: database execution failure
*/
func (repository *PostgresMessageRepository) List(context context.Context, params pagination.Params) ([]Message, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.MessageLog.Table)

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		schema.MessageLog.ID, schema.MessageLog.Nickname, schema.MessageLog.Message,
		schema.MessageLog.CreatedAt,
		schema.MessageLog.Table,
		schema.MessageLog.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	messages := make([]Message, 0, params.Limit)
	for rows.Next() {
		var message Message
		if err := rows.Scan(&message.ID, &message.Nickname, &message.Message, &message.Created); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	return messages, total, nil
}
