package store

import (
	"context"

	"wallet/internal/models"
)

type LedgerStore struct {
	db DB
}

type LedgerEntryInput struct {
	ID           string
	Token        string
	PlayerID     string
	Operation    models.Operation
	Amount       int64
	BalanceAfter int64
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// InsertEntry appends one ledger row. The token column carries its own
// unique constraint, so even a reservation bypassed at the application
// level cannot produce two entries with the same token.
func (s *LedgerStore) InsertEntry(ctx context.Context, tx Execer, entry LedgerEntryInput) error {
	query := `
		INSERT INTO ledger_entries (id, token, player_id, operation, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		entry.ID, entry.Token, entry.PlayerID, entry.Operation, entry.Amount, entry.BalanceAfter,
	)
	if isUniqueViolation(err) {
		return ErrTokenUsed
	}
	return err
}

// ListByPlayer returns the player's entries oldest first. The seq column
// carries insertion order; created_at ties within the same microsecond.
// An empty history is an empty slice, not an error.
func (s *LedgerStore) ListByPlayer(ctx context.Context, playerID string) ([]models.LedgerEntry, error) {
	entries := []models.LedgerEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, token, player_id, operation, amount, balance_after, created_at
		FROM ledger_entries
		WHERE player_id = $1
		ORDER BY seq
	`, playerID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SumByPlayer recomputes the balance from the ledger. Used by tests and
// reconciliation checks against the stored players.balance.
func (s *LedgerStore) SumByPlayer(ctx context.Context, playerID string) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(CASE WHEN operation = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE player_id = $1
	`, playerID)
	return sum, err
}
