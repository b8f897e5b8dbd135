// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package uptime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
	"github.com/wh64dev/wh64-api/pkg/pagination"
)

type fakeRecordRepository struct {
	mu      sync.Mutex
	records []HealthRecord
}

func (repository *fakeRecordRepository) Insert(_ context.Context, record *HealthRecord) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records = append(repository.records, *record)

	return nil
}

func (repository *fakeRecordRepository) List(_ context.Context, params pagination.Params) ([]HealthRecord, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	start := params.Offset()
	if start > len(repository.records) {
		start = len(repository.records)
	}
	end := start + params.Limit
	if end > len(repository.records) {
		end = len(repository.records)
	}

	return repository.records[start:end], len(repository.records), nil
}

type fakePinger struct {
	err error
}

func (pinger fakePinger) Ping(context.Context) error { return pinger.err }

func newTestService(pingErr error) (*Service, *fakeRecordRepository) {
	repository := &fakeRecordRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(repository, fakePinger{err: pingErr}, logger), repository
}

func TestServiceCheckStoresProbe(t *testing.T) {
	service, repository := newTestService(nil)

	record, err := service.Check(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.GreaterOrEqual(t, record.ResponseMS, int64(0))
	assert.False(t, record.CheckedAt.IsZero())
	assert.Len(t, repository.records, 1)
}

func TestServiceCheckUnreachableDatabase(t *testing.T) {
	service, repository := newTestService(errors.New("dial refused"))

	_, err := service.Check(context.Background())

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 503, appErr.HTTPStatus)
	assert.Empty(t, repository.records, "a failed probe is not recorded")
}

func TestServiceHistory(t *testing.T) {
	service, _ := newTestService(nil)

	for i := 0; i < 3; i++ {
		_, err := service.Check(context.Background())
		require.NoError(t, err)
	}

	records, meta, err := service.History(context.Background(), pagination.Params{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}
