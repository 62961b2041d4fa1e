package controller

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/service"
)

type contextKey string

// AdminKey marks a request whose bearer passed the admin session check.
const AdminKey contextKey = "admin"

const SessionCookieName = "admin_session"

// AdminSessionMiddleware gates protected routes on a valid admin session
// cookie. API paths get a 401 envelope; page paths are redirected to the
// login form.
func AdminSessionMiddleware(authService service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				deny(w, r)
				return
			}

			if err := authService.ValidateSession(cookie.Value); err != nil {
				logger.Debug("Rejected session token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				deny(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), AdminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		respondErr(w, r, http.StatusUnauthorized, "admin login required")
		return
	}
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

// IsAdmin reports whether the request context carries an authenticated admin.
func IsAdmin(ctx context.Context) bool {
	admin, ok := ctx.Value(AdminKey).(bool)
	return ok && admin
}
