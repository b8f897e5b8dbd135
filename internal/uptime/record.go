// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package uptime measures and records database round-trip latency.

Every probe pings the database, stores the observed response time, and the
history is served as a paginated listing so availability can be charted
without an external monitoring stack.
*/
package uptime

import (
	"context"
	"time"

	"github.com/wh64dev/wh64-api/pkg/pagination"
)

// HealthRecord is a single stored latency probe.
type HealthRecord struct {
	ID         string    `json:"id"`
	ResponseMS int64     `json:"response_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

// RecordRepository persists latency probes.
type RecordRepository interface {
	// Insert stores a probe result.
	Insert(context context.Context, record *HealthRecord) error

	// List returns a page of probes, newest first, plus the total count.
	List(context context.Context, params pagination.Params) ([]HealthRecord, int, error)
}

// Pinger is the database connectivity probe. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}
