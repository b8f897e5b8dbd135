// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package uptime

import (
	"net/http"
	"strconv"

	"github.com/wh64dev/wh64-api/internal/platform/respond"
	"github.com/wh64dev/wh64-api/internal/platform/validate"
	"github.com/wh64dev/wh64-api/pkg/pagination"
)

// Handler implements the uptime HTTP endpoints.
type Handler struct {
	uptimeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{uptimeService: service}
}

// The probe endpoints live at the version root (GET /v1, GET /v1/hc), so the
// handler exposes plain [http.HandlerFunc]s for the server to register
// instead of a sub-router.

/*
Check runs a live probe.

GET /v1

Response:
  - 200: HealthRecord: Measured latency
  - 503: ErrServiceUnavailable: Database unreachable
*/
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	record, err := handler.uptimeService.Check(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
History lists stored probes.

GET /v1/hc?page=N&limit=M

Response:
  - 200: Paginated health records
  - 400: Validation failure for an out-of-range page or limit
*/
func (handler *Handler) History(writer http.ResponseWriter, request *http.Request) {
	params, err := historyParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, meta, err := handler.uptimeService.History(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, meta)
}

// historyParams parses and bounds-checks the page/limit query parameters.
//
// Unlike [pagination.FromRequest], which silently clamps, history requests
// reject out-of-range values so callers notice broken pagination loops.
func historyParams(request *http.Request) (pagination.Params, error) {
	page, err := queryInt(request, "page", pagination.DefaultPage)
	if err != nil {
		return pagination.Params{}, err
	}

	limit, err := queryInt(request, "limit", pagination.DefaultLimit)
	if err != nil {
		return pagination.Params{}, err
	}

	validator := &validate.Validator{}
	validator.Custom("page", page < 1, "Must be at least 1")
	validator.Range("limit", limit, 1, pagination.MaxLimit)

	if err := validator.Err(); err != nil {
		return pagination.Params{}, err
	}

	return pagination.Params{Page: page, Limit: limit}, nil
}

// queryInt parses a single integer query parameter with a fallback default.
func queryInt(request *http.Request, field string, fallback int) (int, error) {
	raw := request.URL.Query().Get(field)
	if raw == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.RequiredError(field, "must be a number")
	}

	return parsed, nil
}
