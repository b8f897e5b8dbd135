// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package board implements the public guestbook.

Anyone may leave a short message without an account; messages are listed
newest first with offset pagination. The sender's IP is recorded for abuse
handling but never exposed through the API.
*/
package board

import (
	"context"
	"time"

	"github.com/wh64dev/wh64-api/pkg/pagination"
)

// Message is a single guestbook entry.
type Message struct {
	ID       string    `json:"id"`
	Nickname string    `json:"nickname"`
	Message  string    `json:"message"`
	SenderIP string    `json:"-"` // Kept for moderation, never serialized.
	Created  time.Time `json:"created"`
}

// Field names for validation in the board domain.
const (
	FieldNickname = "nickname"
	FieldMessage  = "message"
)

// Input length limits.
const (
	MaxNicknameLength = 20
	MaxMessageLength  = 100

	// DefaultNickname is used when the sender leaves the nickname blank.
	DefaultNickname = "Anonymous"
)

// MessageRepository persists guestbook entries.
type MessageRepository interface {
	// Insert stores a new message.
	Insert(context context.Context, message *Message) error

	// List returns a page of messages, newest first, plus the total count.
	List(context context.Context, params pagination.Params) ([]Message, int, error)
}
