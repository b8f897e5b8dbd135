// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package hanriver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
)

const sampleEnvelope = `{
	"WPOSInformationTime": {
		"list_total_count": 1,
		"RESULT": {"CODE": "INFO-000", "MESSAGE": "OK"},
		"row": [
			{
				"MSR_DATE": "20260314",
				"MSR_TIME": "09:00",
				"SITE_ID": "노량진",
				"W_TEMP": "8.5",
				"W_PH": "7.2"
			}
		]
	}
}`

func newUpstream(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, "sample")
}

func TestClientFetch(t *testing.T) {
	client := newUpstream(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/sample/json/WPOSInformationTime/2/2", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(sampleEnvelope))
	})

	reading, err := client.Fetch(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 2, reading.Area)
	assert.Equal(t, "노량진", reading.Site)
	assert.InDelta(t, 8.5, reading.Temperature, 0.001)
	assert.InDelta(t, 7.2, reading.PH, 0.001)

	expected := time.Date(2026, 3, 14, 9, 0, 0, 0, time.FixedZone("KST", 9*60*60))
	assert.True(t, reading.MeasuredAt.Equal(expected),
		"measurement instant must fold date and time at +09:00, got %v", reading.MeasuredAt)
}

func TestClientFetchAreaSelectsRow(t *testing.T) {
	for area := MinArea; area <= MaxArea; area++ {
		var requested string
		client := newUpstream(t, func(writer http.ResponseWriter, request *http.Request) {
			requested = request.URL.Path
			_, _ = writer.Write([]byte(sampleEnvelope))
		})

		_, err := client.Fetch(context.Background(), area)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("/sample/json/WPOSInformationTime/%d/%d", area, area), requested)
	}
}

func TestClientFetchMissingMeasurements(t *testing.T) {
	body := `{
		"WPOSInformationTime": {
			"list_total_count": 1,
			"RESULT": {"CODE": "INFO-000", "MESSAGE": "OK"},
			"row": [{"MSR_DATE": "20260314", "MSR_TIME": "9:00", "SITE_ID": "잠실", "W_TEMP": "", "W_PH": ""}]
		}
	}`

	client := newUpstream(t, func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(body))
	})

	reading, err := client.Fetch(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, MissingValue, reading.Temperature)
	assert.Equal(t, MissingValue, reading.PH)
}

func TestClientFetchGatewayFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(writer http.ResponseWriter, _ *http.Request) {
				_, _ = writer.Write([]byte("<html>not json</html>"))
			},
		},
		{
			name: "empty row set",
			handler: func(writer http.ResponseWriter, _ *http.Request) {
				_, _ = writer.Write([]byte(`{"WPOSInformationTime": {"list_total_count": 0, "RESULT": {"CODE": "INFO-200", "MESSAGE": "no data"}, "row": []}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newUpstream(t, tt.handler)

			_, err := client.Fetch(context.Background(), 1)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
		})
	}
}
