package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"wallet/internal/models"

	"github.com/lib/pq"
)

func TestPlayerStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO players") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 || args[1] != "alice" || args[3] != models.RoleUser {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewPlayerStore(stubDB{})
	if err := store.Create(ctx, execer, "p1", "alice", "hash", models.RoleUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPlayerStoreCreateDuplicateUsername(t *testing.T) {
	execer := stubExecer{
		execFn: func(context.Context, string, ...any) (sql.Result, error) {
			return nil, &pq.Error{Code: "23505"}
		},
	}
	store := NewPlayerStore(stubDB{})
	err := store.Create(context.Background(), execer, "p1", "alice", "hash", models.RoleUser)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestPlayerStoreGetByUsernameNotFound(t *testing.T) {
	store := NewPlayerStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	})
	_, err := store.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPlayerStoreGetBalance(t *testing.T) {
	store := NewPlayerStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "SELECT balance FROM players") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "p1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*int64) = 10000
			return nil
		},
	})
	balance, err := store.GetBalance(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 10000 {
		t.Fatalf("expected 10000, got %d", balance)
	}
}

func TestPlayerStoreGetBalanceForUpdateLocksRow(t *testing.T) {
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock, query: %s", query)
			}
			*dest.(*int64) = 500
			return nil
		},
	}
	store := NewPlayerStore(stubDB{})
	balance, err := store.GetBalanceForUpdate(context.Background(), getter, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 500 {
		t.Fatalf("expected 500, got %d", balance)
	}
}

func TestPlayerStoreGetBalanceForUpdateNotFound(t *testing.T) {
	getter := stubGetter{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	}
	store := NewPlayerStore(stubDB{})
	_, err := store.GetBalanceForUpdate(context.Background(), getter, "ghost")
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPlayerStoreUpdateBalance(t *testing.T) {
	var gotBalance any
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE players SET balance") {
				t.Fatalf("unexpected query: %s", query)
			}
			gotBalance = args[0]
			return stubResult{rows: 1}, nil
		},
	}
	store := NewPlayerStore(stubDB{})
	if err := store.UpdateBalance(context.Background(), execer, "p1", 2500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBalance != int64(2500) {
		t.Fatalf("expected balance 2500, got %v", gotBalance)
	}
}
