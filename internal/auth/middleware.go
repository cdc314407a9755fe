package auth

import (
	"net/http"

	"github.com/jefanko/app-updates/internal/config"
	"go.uber.org/zap"
)

// Middleware attaches the configured local user to every request
type Middleware struct {
	user   *UserContext
	logger *zap.Logger
}

// NewMiddleware creates the middleware from the user and admin config
func NewMiddleware(cfg *config.Config, logger *zap.Logger) *Middleware {
	admins := NewAdminList(cfg.Admin.Emails)
	var user *UserContext
	if cfg.User.Email != "" {
		user = &UserContext{
			UserID:      cfg.User.ID,
			DisplayName: cfg.User.Name,
			Email:       cfg.User.Email,
			IsAdmin:     admins.Contains(cfg.User.Email),
		}
		if user.UserID == "" {
			user.UserID = user.Email
		}
	}
	return &Middleware{user: user, logger: logger}
}

// User returns the configured user, or nil when none is configured
func (m *Middleware) User() *UserContext {
	return m.user
}

// Authenticate adds the user context when a user is configured. Reads work
// without one.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.user == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), m.user)))
	})
}

// RequireUser rejects requests without a signed-in user
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			m.logger.Debug("rejected write without a signed-in user",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, "Unauthorized: no user is signed in", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
