// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package uptime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerHistoryParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK},
		{name: "explicit bounds", query: "?page=1&limit=100", wantStatus: http.StatusOK},
		{name: "zero page", query: "?page=0", wantStatus: http.StatusBadRequest},
		{name: "negative page", query: "?page=-3", wantStatus: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", wantStatus: http.StatusBadRequest},
		{name: "excessive limit", query: "?limit=101", wantStatus: http.StatusBadRequest},
		{name: "non-numeric page", query: "?page=abc", wantStatus: http.StatusBadRequest},
		{name: "non-numeric limit", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(nil)
			handler := NewHandler(service)

			request := httptest.NewRequest(http.MethodGet, "/hc"+tt.query, nil)
			recorder := httptest.NewRecorder()

			handler.History(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestHandlerHistoryReturnsStoredProbes(t *testing.T) {
	service, _ := newTestService(nil)
	handler := NewHandler(service)

	for i := 0; i < 3; i++ {
		_, err := service.Check(context.Background())
		require.NoError(t, err)
	}

	request := httptest.NewRequest(http.MethodGet, "/hc?page=2&limit=2", nil)
	recorder := httptest.NewRecorder()

	handler.History(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":3`)
	assert.Contains(t, recorder.Body.String(), `"page":2`)
}
