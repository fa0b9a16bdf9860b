package store

import (
	"context"

	"wallet/internal/models"
)

// AuditStore is append-only. Rows are never updated or deleted.
type AuditStore struct {
	db DB
}

func NewAuditStore(db DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Insert(ctx context.Context, id, playerID string, operation models.Operation, status models.Status) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, player_id, operation, status)
		VALUES ($1, $2, $3, $4)
	`, id, playerID, operation, status)
	return err
}

// List returns every entry ordered by player, then insertion order (seq).
func (s *AuditStore) List(ctx context.Context) ([]models.AuditLogEntry, error) {
	entries := []models.AuditLogEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, player_id, operation, status, created_at
		FROM audit_logs
		ORDER BY player_id, seq
	`)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *AuditStore) ListByPlayer(ctx context.Context, playerID string) ([]models.AuditLogEntry, error) {
	entries := []models.AuditLogEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, player_id, operation, status, created_at
		FROM audit_logs
		WHERE player_id = $1
		ORDER BY seq
	`, playerID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
