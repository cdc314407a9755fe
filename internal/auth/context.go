package auth

import (
	"context"
	"strings"

	"github.com/jefanko/app-updates/internal/domain"
)

// UserContext holds the signed-in user of this installation
type UserContext struct {
	UserID      string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// Name returns the display name, falling back to the local part of the email
func (u *UserContext) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// CreatorRef returns the reference stored on records this user creates
func (u *UserContext) CreatorRef() *domain.CreatorRef {
	return &domain.CreatorRef{
		ID:    u.UserID,
		Name:  u.Name(),
		Email: u.Email,
	}
}

// CanEditProject reports whether the user may modify or delete the project.
// Admins edit everything; records without a creator predate ownership and
// stay editable by anyone.
func (u *UserContext) CanEditProject(p domain.Project) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	if p.CreatedBy == nil {
		return true
	}
	return u.UserID == p.CreatedBy.ID
}

// AdminList holds the lowercased admin emails
type AdminList map[string]struct{}

// NewAdminList builds the list from configured emails
func NewAdminList(emails []string) AdminList {
	list := make(AdminList, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			list[strings.ToLower(e)] = struct{}{}
		}
	}
	return list
}

// Contains reports whether email belongs to an admin
func (a AdminList) Contains(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a[strings.ToLower(email)]
	return ok
}
