// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package schema

// HealthCheckTable represents the 'health_check' table
type HealthCheckTable struct {
	Table      string
	ID         string
	ResponseMS string
	CheckedAt  string
}

// HealthCheck is the schema definition for health_check
var HealthCheck = HealthCheckTable{
	Table:      "health_check",
	ID:         "id",
	ResponseMS: "response_ms",
	CheckedAt:  "checked_at",
}

func (t HealthCheckTable) Columns() []string {
	return []string{t.ID, t.ResponseMS, t.CheckedAt}
}
