// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package schema

// MessageLogTable represents the 'message_log' table
type MessageLogTable struct {
	Table     string
	ID        string
	Nickname  string
	Message   string
	SenderIP  string
	CreatedAt string
}

// MessageLog is the schema definition for message_log
var MessageLog = MessageLogTable{
	Table:     "message_log",
	ID:        "id",
	Nickname:  "nickname",
	Message:   "message",
	SenderIP:  "sender_ip",
	CreatedAt: "created_at",
}

func (t MessageLogTable) Columns() []string {
	return []string{t.ID, t.Nickname, t.Message, t.SenderIP, t.CreatedAt}
}
