package policy

import (
	"errors"
	"testing"

	"wallet/internal/models"
)

func TestRequireAdminNoActor(t *testing.T) {
	if err := RequireAdmin(nil); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if err := RequireAdmin(&models.Actor{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for empty actor, got %v", err)
	}
}

func TestRequireAdminNonAdmin(t *testing.T) {
	actor := &models.Actor{ID: "p1", Username: "alice", Role: models.RoleUser}
	if err := RequireAdmin(actor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAdminAdmin(t *testing.T) {
	actor := &models.Actor{ID: "p2", Username: "root", Role: models.RoleAdmin}
	if err := RequireAdmin(actor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
