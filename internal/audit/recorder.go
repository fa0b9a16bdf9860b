package audit

import (
	"context"
	"log"

	"wallet/internal/models"
	"wallet/internal/policy"

	"github.com/google/uuid"
)

type AuditStore interface {
	Insert(ctx context.Context, id, playerID string, operation models.Operation, status models.Status) error
	List(ctx context.Context) ([]models.AuditLogEntry, error)
	ListByPlayer(ctx context.Context, playerID string) ([]models.AuditLogEntry, error)
}

type PlayerStore interface {
	GetByUsername(ctx context.Context, username string) (models.Player, error)
}

// Recorder appends operation outcomes to the audit log and answers the two
// admin-only log queries.
type Recorder struct {
	auditStore  AuditStore
	playerStore PlayerStore
}

func NewRecorder(auditStore AuditStore, playerStore PlayerStore) *Recorder {
	return &Recorder{auditStore: auditStore, playerStore: playerStore}
}

// Record appends one entry. Delivery is best-effort: a failing audit write
// must never turn a committed ledger operation into a user-facing error, so
// the store error is logged and swallowed.
func (r *Recorder) Record(ctx context.Context, playerID string, operation models.Operation, status models.Status) {
	if playerID == "" {
		playerID = models.UnknownPlayerID
	}
	if err := r.auditStore.Insert(ctx, uuid.NewString(), playerID, operation, status); err != nil {
		log.Printf("audit: failed to record %s/%s for %s: %v", operation, status, playerID, err)
	}
}

// AllEntries returns the full log ordered by player then insertion order.
// Admin only.
func (r *Recorder) AllEntries(ctx context.Context, actor *models.Actor) ([]models.AuditLogEntry, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	entries, err := r.auditStore.List(ctx)
	r.recordView(ctx, actor, models.OpShowAllLogs, err)
	return entries, err
}

// EntriesForPlayer returns one player's log entries. Admin only; an unknown
// username is store.ErrPlayerNotFound.
func (r *Recorder) EntriesForPlayer(ctx context.Context, actor *models.Actor, username string) ([]models.AuditLogEntry, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	player, err := r.playerStore.GetByUsername(ctx, username)
	if err != nil {
		r.recordView(ctx, actor, models.OpShowPlayerLogs, err)
		return nil, err
	}
	entries, err := r.auditStore.ListByPlayer(ctx, player.ID)
	r.recordView(ctx, actor, models.OpShowPlayerLogs, err)
	return entries, err
}

func (r *Recorder) recordView(ctx context.Context, actor *models.Actor, operation models.Operation, err error) {
	status := models.StatusSuccessful
	if err != nil {
		status = models.StatusFail
	}
	r.Record(ctx, actor.ID, operation, status)
}
