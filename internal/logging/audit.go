// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// AuditEvent is a data-changing or access-control event worth keeping in the
// log independently of the request log.
type AuditEvent struct {
	// Event is the kind of event (e.g. "auth_failure", "target_created", "import").
	Event string
	// Username is the admin user, if any.
	Username string
	// IPAddress is the client's address.
	IPAddress string
	// UserAgent is the client's user agent (truncated).
	UserAgent string
	// Success reports whether the operation succeeded.
	Success bool
	// Error is the failure reason.
	Error string
	// Details holds additional fields.
	Details map[string]string
}

// AuditLogger writes audit events with component=audit and sanitized fields.
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates an audit logger backed by the global logger.
func NewAuditLogger() *AuditLogger {
	return &AuditLogger{logger: WithComponent("audit")}
}

// NewAuditLoggerWithLogger creates an audit logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuditLoggerWithLogger(logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// LogEvent writes one audit event. Failures are logged at warn level.
func (l *AuditLogger) LogEvent(event *AuditEvent) {
	var e *zerolog.Event
	if event.Success {
		e = l.logger.Info()
	} else {
		e = l.logger.Warn()
	}

	e = e.Str("event", event.Event).Bool("success", event.Success)
	if event.Username != "" {
		e = e.Str("username", SanitizeUsername(event.Username))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 200))
	}
	if event.Error != "" {
		e = e.Str("reason", truncateString(event.Error, 200))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("audit")
}

// LogAuthFailure records a rejected admin credential.
func (l *AuditLogger) LogAuthFailure(username, ip, userAgent, reason string) {
	l.LogEvent(&AuditEvent{
		Event:     "auth_failure",
		Username:  username,
		IPAddress: ip,
		UserAgent: userAgent,
		Error:     reason,
	})
}

// LogChange records a successful data change such as a target update or import.
func (l *AuditLogger) LogChange(event, username, ip string, details map[string]string) {
	l.LogEvent(&AuditEvent{
		Event:     event,
		Username:  username,
		IPAddress: ip,
		Success:   true,
		Details:   details,
	})
}

// SanitizeUsername keeps the first two characters of a username.
func SanitizeUsername(username string) string {
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

// sensitiveKeys are detail keys whose values are never logged verbatim.
var sensitiveKeys = []string{"password", "hash", "secret", "token", "authorization"}

// SanitizeValue redacts values whose key looks sensitive.
func SanitizeValue(key, value string) string {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return "[REDACTED]"
		}
	}
	return truncateString(value, 200)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
