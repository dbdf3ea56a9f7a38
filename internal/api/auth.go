// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"context"
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/utilitrack/internal/logging"
)

type adminContextKey struct{}

// adminFromContext returns the authenticated admin user, or "" when the
// request was not authenticated.
func adminFromContext(ctx context.Context) string {
	if u, ok := ctx.Value(adminContextKey{}).(string); ok {
		return u
	}
	return ""
}

// AdminGuard protects write routes with HTTP basic auth. The password is
// checked against a bcrypt hash. With no admin configured every request
// passes through.
type AdminGuard struct {
	username     string
	passwordHash []byte
	audit        *logging.AuditLogger
}

// NewAdminGuard creates a guard. An empty username or hash disables it.
func NewAdminGuard(username, passwordHash string, audit *logging.AuditLogger) *AdminGuard {
	if audit == nil {
		audit = logging.NewAuditLogger()
	}
	return &AdminGuard{username: username, passwordHash: []byte(passwordHash), audit: audit}
}

// Enabled reports whether credentials are required.
func (g *AdminGuard) Enabled() bool {
	return g.username != "" && len(g.passwordHash) > 0
}

// Require returns middleware rejecting requests without valid admin
// credentials.
func (g *AdminGuard) Require(next http.HandlerFunc) http.HandlerFunc {
	if !g.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			g.reject(w, r, user, "missing credentials")
			return
		}
		// Hash even on a wrong username so both failures take the same time.
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(g.username)) == 1
		passOK := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(pass)) == nil
		if !userOK || !passOK {
			g.reject(w, r, user, "invalid credentials")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), adminContextKey{}, user)))
	}
}

func (g *AdminGuard) reject(w http.ResponseWriter, r *http.Request, user, reason string) {
	g.audit.LogAuthFailure(user, r.RemoteAddr, r.UserAgent(), reason)
	w.Header().Set("WWW-Authenticate", `Basic realm="utilitrack", charset="UTF-8"`)
	respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
}
