// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package middleware

import (
	"context"
	"net/http"

	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/models"
)

// ResourceCookieName is the cookie holding the selected resource.
const ResourceCookieName = "resource"

type contextKey string

const resourceKey contextKey = "resource"

// Resource resolves the selected resource from the resource cookie and
// stores it in the request context. A missing or unknown cookie selects
// models.DefaultResource.
func Resource(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resource := models.DefaultResource
		if c, err := r.Cookie(ResourceCookieName); err == nil {
			if parsed, ok := models.ParseResourceType(c.Value); ok {
				resource = parsed
			}
		}
		next(w, r.WithContext(ContextWithResource(r.Context(), resource)))
	}
}

// ContextWithResource stores resource in ctx, also tagging log lines.
func ContextWithResource(ctx context.Context, resource models.ResourceType) context.Context {
	ctx = context.WithValue(ctx, resourceKey, resource)
	return logging.ContextWithResource(ctx, string(resource))
}

// ResourceFromContext returns the selected resource, or
// models.DefaultResource when none was stored.
func ResourceFromContext(ctx context.Context) models.ResourceType {
	if r, ok := ctx.Value(resourceKey).(models.ResourceType); ok {
		return r
	}
	return models.DefaultResource
}

// SetResourceCookie persists the selected resource for a year.
func SetResourceCookie(w http.ResponseWriter, resource models.ResourceType, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     ResourceCookieName,
		Value:    string(resource),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
