// Package session holds the signed-in operator: who they are and what role they have.
package session

import (
	"context"
	"strings"
)

type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// ParseRole maps the users.type column. Only "admin" grants the admin role.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), "admin") {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// Session is built once at login and handed to whatever needs it.
type Session struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"-"`
}

// Authenticated needs both the username and the display name.
func (s Session) Authenticated() bool {
	return s.Username != "" && s.Name != ""
}

func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == RoleAdmin
}

// CanManageClients gates client creation and deletion.
func (s Session) CanManageClients() bool {
	return s.IsAdmin()
}

type ctxKey struct{}

func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithContext, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
