// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package hanriver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
)

// requestTimeout bounds a single upstream call.
const requestTimeout = 10 * time.Second

// seoulTimeZone is the fixed offset of the measurement timestamps. The feed
// reports local civil time without a zone designator.
var seoulTimeZone = time.FixedZone("KST", 9*60*60)

// Client fetches WPOSInformationTime rows from the Seoul open-data gateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a [Client] for the given gateway base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// # Upstream Wire Format

type upstreamEnvelope struct {
	WPOSInformationTime *upstreamDataset `json:"WPOSInformationTime"`
}

type upstreamDataset struct {
	TotalCount int           `json:"list_total_count"`
	Result     upstreamState `json:"RESULT"`
	Rows       []upstreamRow `json:"row"`
}

type upstreamState struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

type upstreamRow struct {
	MeasureDate string `json:"MSR_DATE"` // yyyyMMdd
	MeasureTime string `json:"MSR_TIME"` // HH:mm, zero-padded inconsistently
	Site        string `json:"SITE_ID"`
	Temperature string `json:"W_TEMP"`
	PH          string `json:"W_PH"`
}

/*
Fetch retrieves the latest reading for a measuring area.

Parameters:
  - context: context.Context
  - area: measuring site index (MinArea..MaxArea)

Returns:
  - *Reading: the newest sample for the area
  - error: apperr.ServiceUnavailable when the gateway misbehaves
*/
func (client *Client) Fetch(context context.Context, area int) (*Reading, error) {
	// The area index doubles as the start and end row of the upstream
	// dataset, so a single row comes back per request.
	url := fmt.Sprintf("%s/%s/json/WPOSInformationTime/%d/%d", client.baseURL, client.apiKey, area, area)

	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("hanriver_request_build_failed: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Water quality gateway is unreachable")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.ServiceUnavailable("Water quality gateway returned an error")
	}

	var envelope upstreamEnvelope
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, apperr.ServiceUnavailable("Water quality gateway sent a malformed response")
	}

	dataset := envelope.WPOSInformationTime
	if dataset == nil || len(dataset.Rows) == 0 {
		return nil, apperr.ServiceUnavailable("Water quality gateway returned no rows")
	}

	row := dataset.Rows[0]

	return &Reading{
		Area:        area,
		Site:        row.Site,
		Temperature: parseMeasurement(row.Temperature),
		PH:          parseMeasurement(row.PH),
		MeasuredAt:  parseMeasuredAt(row.MeasureDate, row.MeasureTime),
	}, nil
}

// parseMeasurement converts an upstream decimal string, falling back to
// MissingValue when the field is empty or unparsable.
func parseMeasurement(value string) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return MissingValue
	}

	return parsed
}

// parseMeasuredAt folds the split date and time columns into one instant in
// Seoul local time. An unparsable pair yields the zero time rather than an
// error; the measurement values are still worth serving.
func parseMeasuredAt(date, clock string) time.Time {
	parsed, err := time.ParseInLocation("20060102 15:04", date+" "+clock, seoulTimeZone)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
