// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package board

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wh64dev/wh64-api/pkg/pagination"
	"github.com/wh64dev/wh64-api/pkg/uuidv7"
)

// Service implements the guestbook use cases.
type Service struct {
	messages MessageRepository
	logger   *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(messages MessageRepository, logger *slog.Logger) *Service {
	return &Service{messages: messages, logger: logger}
}

// SendInput holds a new guestbook submission.
type SendInput struct {
	Nickname string
	Message  string
	SenderIP string
}

/*
Send persists a guestbook message. A blank nickname becomes DefaultNickname.

Parameters:
  - context: context.Context
  - input: SendInput

Returns:
  - *Message: stored entry
  - error: storage failure
*/
func (service *Service) Send(context context.Context, input SendInput) (*Message, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		nickname = DefaultNickname
	}

	message := &Message{
		ID:       uuidv7.New(),
		Nickname: nickname,
		Message:  input.Message,
		SenderIP: input.SenderIP,
		Created:  time.Now(),
	}

	if err := service.messages.Insert(context, message); err != nil {
		return nil, err
	}

	service.logger.Info("guestbook message stored",
		slog.String("message_id", message.ID),
		slog.String("nickname", message.Nickname))

	return message, nil
}

/*
List returns one page of messages, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Message: page of entries
  - pagination.Meta: page metadata
  - error: storage failure
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Message, pagination.Meta, error) {
	messages, total, err := service.messages.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return messages, pagination.NewMeta(params.Page, params.Limit, total), nil
}
