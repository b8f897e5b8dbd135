// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package board

import (
	"net/http"

	"github.com/wh64dev/wh64-api/internal/platform/middleware"
	requestutil "github.com/wh64dev/wh64-api/internal/platform/request"
	"github.com/wh64dev/wh64-api/internal/platform/respond"
	"github.com/wh64dev/wh64-api/internal/platform/validate"
	"github.com/wh64dev/wh64-api/pkg/pagination"
)

// Handler implements the guestbook HTTP endpoints.
type Handler struct {
	boardService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{boardService: service}
}

// The guestbook endpoints live at the version root (POST /v1/send,
// GET /v1/messages), so the handler exposes plain [http.HandlerFunc]s for the
// server to register instead of a sub-router.

type sendRequest struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

/*
Send stores a guestbook message.

POST /v1/send

Request:
  - Body: sendRequest (Nickname optional, Message required)

Response:
  - 201: Message: Stored entry
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) Send(writer http.ResponseWriter, request *http.Request) {
	var input sendRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMessage, input.Message).
		MaxLen(FieldMessage, input.Message, MaxMessageLength).
		MaxLen(FieldNickname, input.Nickname, MaxNicknameLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.boardService.Send(request.Context(), SendInput{
		Nickname: input.Nickname,
		Message:  input.Message,
		SenderIP: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}

/*
List returns one page of guestbook messages, newest first.

GET /v1/messages?page=N&limit=M
*/
func (handler *Handler) Messages(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	messages, meta, err := handler.boardService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, meta)
}
