package handlers

import (
	"context"

	"wallet/internal/models"
	"wallet/internal/services"
	"wallet/internal/store"
)

type PlayerStore interface {
	Create(ctx context.Context, tx store.Execer, id, username, passwordHash string, role models.Role) error
	GetByUsername(ctx context.Context, username string) (models.Player, error)
	GetByID(ctx context.Context, playerID string) (models.Player, error)
}

type LedgerService interface {
	Credit(ctx context.Context, req services.MutationRequest) (services.Receipt, error)
	Debit(ctx context.Context, req services.MutationRequest) (services.Receipt, error)
	Balance(ctx context.Context, playerID string) (int64, error)
	History(ctx context.Context, playerID string) ([]models.LedgerEntry, error)
}

type AuditService interface {
	Record(ctx context.Context, playerID string, operation models.Operation, status models.Status)
	AllEntries(ctx context.Context, actor *models.Actor) ([]models.AuditLogEntry, error)
	EntriesForPlayer(ctx context.Context, actor *models.Actor, username string) ([]models.AuditLogEntry, error)
}
