// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package mail delivers outbound email over SMTP.

It is the concrete collaborator behind the accounts domain's EmailSender
contract. The domain treats delivery as fire-and-forget with a reported
error; any retry policy lives here, never in the domain services.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Transient SMTP hiccups (greylisting, connection resets) usually clear
// within seconds, so the retry budget stays small.
const (
	maxAttempts   = 3
	initialDelay  = 500 * time.Millisecond
	deliveryLimit = 10 * time.Second
)

// SMTPSender sends email through a single SMTP relay using PLAIN auth.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	sender   string
	logger   *slog.Logger
}

// NewSMTPSender constructs an [SMTPSender].
//
// # Parameters
//   - host, port: The SMTP relay endpoint.
//   - username, password: PLAIN auth credentials. Empty username disables auth
//     (local relay / test setups).
//   - sender: The From address stamped on every message.
//   - logger: Structured logger for delivery events.
func NewSMTPSender(host string, port int, username, password, sender string, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sender:   sender,
		logger:   logger,
	}
}

/*
Send delivers a single plain-text message.

Description: Retries transient failures with exponential backoff before
reporting the final error to the caller. The caller never retries.

Parameters:
  - ctx: context.Context
  - to: Recipient address
  - subject: Message subject
  - body: Plain-text body

Returns:
  - error: The last delivery error after the retry budget is exhausted
*/
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	deliveryCtx, cancel := context.WithTimeout(ctx, deliveryLimit)
	defer cancel()

	message := buildMessage(s.sender, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(initialDelay))

	err := retry.Do(deliveryCtx, backoff, func(ctx context.Context) error {
		if err := smtp.SendMail(addr, auth, s.sender, []string{to}, message); err != nil {
			s.logger.Warn("smtp_delivery_attempt_failed",
				slog.String("to", to),
				slog.Any("error", err),
			)
			return retry.RetryableError(err)
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("mail: delivery to %s failed: %w", to, err)
	}

	s.logger.Info("smtp_delivery_succeeded", slog.String("to", to))
	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	builder.WriteString("\r\n")
	return []byte(builder.String())
}
