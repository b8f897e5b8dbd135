// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package board

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wh64dev/wh64-api/pkg/pagination"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func TestMessageRepositoryInsert(t *testing.T) {
	mock := newMockPool(t)
	repository := NewMessageRepository(mock)

	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO message_log`).
		WithArgs("id-1", "Anonymous", "hello", "203.0.113.7", created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repository.Insert(context.Background(), &Message{
		ID:       "id-1",
		Nickname: "Anonymous",
		Message:  "hello",
		SenderIP: "203.0.113.7",
		Created:  created,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryList(t *testing.T) {
	mock := newMockPool(t)
	repository := NewMessageRepository(mock)

	first := time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)
	second := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM message_log`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(`(?s)SELECT .+ FROM message_log.+ORDER BY created_at DESC`).
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "nickname", "message", "created_at"}).
			AddRow("id-2", "yuna", "newest", first).
			AddRow("id-1", "Anonymous", "older", second))

	messages, total, err := repository.List(context.Background(), pagination.Params{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, messages, 2)
	assert.Equal(t, "newest", messages[0].Message)
	assert.Equal(t, "older", messages[1].Message)
	assert.Empty(t, messages[0].SenderIP, "sender ip is not part of the listing")
	assert.NoError(t, mock.ExpectationsWereMet())
}
