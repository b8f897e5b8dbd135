// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package hanriver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wh64dev/wh64-api/internal/platform/respond"
	"github.com/wh64dev/wh64-api/internal/platform/validate"
)

// Handler implements the water-quality HTTP endpoint.
type Handler struct {
	riverService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{riverService: service}
}

// Routes returns a [chi.Router] configured with water-quality routes.
//
// # Endpoints
//   - GET / : Returns the latest reading for ?area=N (default 1).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.reading)

	return router
}

/*
Reading returns the latest sample for a measuring area.

GET /v1/hanriver?area=N

Response:
  - 200: Reading: Latest sample
  - 400: Validation failure for an out-of-range area
  - 503: Upstream gateway failure
*/
func (handler *Handler) reading(writer http.ResponseWriter, request *http.Request) {
	area := DefaultArea
	if raw := request.URL.Query().Get(FieldArea); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldArea, "must be a number"))
			return
		}
		area = parsed
	}

	validator := &validate.Validator{}
	validator.Range(FieldArea, area, MinArea, MaxArea)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reading, err := handler.riverService.Reading(request.Context(), area)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reading)
}
