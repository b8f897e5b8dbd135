// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package uptime

import (
	"context"
	"log/slog"
	"time"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
	"github.com/wh64dev/wh64-api/pkg/pagination"
	"github.com/wh64dev/wh64-api/pkg/uuidv7"
)

// Service runs latency probes and serves their history.
type Service struct {
	records RecordRepository
	pinger  Pinger
	logger  *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(records RecordRepository, pinger Pinger, logger *slog.Logger) *Service {
	return &Service{records: records, pinger: pinger, logger: logger}
}

/*
Check pings the database, measures the round trip, and stores the result.

Parameters:
  - context: context.Context

Returns:
  - *HealthRecord: the stored probe
  - error: when the ping or the insert fails
*/
func (service *Service) Check(context context.Context) (*HealthRecord, error) {
	started := time.Now()

	if err := service.pinger.Ping(context); err != nil {
		service.logger.Error("database probe failed", slog.String("error", err.Error()))
		return nil, apperr.ServiceUnavailable("Database is unreachable")
	}

	record := &HealthRecord{
		ID:         uuidv7.New(),
		ResponseMS: time.Since(started).Milliseconds(),
		CheckedAt:  started,
	}

	if err := service.records.Insert(context, record); err != nil {
		return nil, err
	}

	return record, nil
}

/*
History returns one page of stored probes, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []HealthRecord: page of probes
  - pagination.Meta: page metadata
  - error: storage failure
*/
func (service *Service) History(context context.Context, params pagination.Params) ([]HealthRecord, pagination.Meta, error) {
	records, total, err := service.records.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return records, pagination.NewMeta(params.Page, params.Limit, total), nil
}
