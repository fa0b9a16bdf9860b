package policy

import (
	"errors"

	"wallet/internal/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("admin privileges required")
)

// RequireAdmin gates the log-viewing operations. A missing actor and a
// present-but-unprivileged actor are distinct failures: the first maps to
// 401, the second to 403.
func RequireAdmin(actor *models.Actor) error {
	if actor == nil || actor.ID == "" {
		return ErrNotAuthenticated
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
