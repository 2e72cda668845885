package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

type ctxKey string

const CtxAdminSession ctxKey = "admin_session"

// DefaultSessionCookie is the cookie the admin SPA authenticates with
// unless ADMIN_SESSION_COOKIE renames it. API clients may send the same
// token as a Bearer header instead.
const DefaultSessionCookie = "admin_session"

// RequireAdmin resolves the opaque session token against the database and
// rejects the request when it is missing, unknown, or expired. cookieName
// must match the name the login handler sets.
func RequireAdmin(adminRepo postgres.AdminRepo, cookieName string) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				response.Unauthorized(w, "authentication required")
				return
			}

			session, err := adminRepo.GetSession(r.Context(), token)
			if err != nil {
				logger.ErrorContext(r.Context(), "Failed to look up admin session", "error", err)
				response.InternalError(w, "failed to verify session")
				return
			}
			if session == nil || session.Expired(time.Now()) {
				response.Unauthorized(w, "session is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), CtxAdminSession, session)
			ctx = context.WithValue(ctx, logger.AdminIDKey, session.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Session returns the authenticated admin session, or nil outside
// RequireAdmin-protected routes.
func Session(r *http.Request) *domain.AdminSession {
	v := r.Context().Value(CtxAdminSession)
	if v == nil {
		return nil
	}
	return v.(*domain.AdminSession)
}

func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}
