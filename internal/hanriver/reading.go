// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package hanriver proxies Seoul's open-data water quality feed.

The upstream WPOSInformationTime dataset reports Han River measuring sites by
numeric area. Responses are cached in Redis for a short window so bursts of
traffic do not hammer the public gateway.
*/
package hanriver

import "time"

// Reading is one water-quality sample from a measuring site.
//
// Temperature and PH are -1 when the upstream row omits the value, which
// happens during sensor maintenance.
type Reading struct {
	Area        int       `json:"area"`
	Site        string    `json:"site"`
	Temperature float64   `json:"temperature"`
	PH          float64   `json:"ph"`
	MeasuredAt  time.Time `json:"measured_at"`
}

// Field names for validation in the hanriver domain.
const (
	FieldArea = "area"
)

// Area bounds of the upstream dataset.
const (
	MinArea     = 1
	MaxArea     = 5
	DefaultArea = 1
)

// CacheTTL is how long a fetched reading is served from Redis.
const CacheTTL = 60 * time.Second

// MissingValue marks a measurement the upstream row did not carry.
const MissingValue = -1.0
