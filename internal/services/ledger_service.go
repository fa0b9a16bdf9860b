package services

import (
	"context"
	"errors"
	"time"

	"wallet/internal/db"
	"wallet/internal/models"
	"wallet/internal/money"
	"wallet/internal/store"
	"wallet/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidToken         = errors.New("transaction token required")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)

type PlayerStore interface {
	GetBalance(ctx context.Context, playerID string) (int64, error)
	GetBalanceForUpdate(ctx context.Context, tx store.Getter, playerID string) (int64, error)
	UpdateBalance(ctx context.Context, tx store.Execer, playerID string, balance int64) error
}

type TokenStore interface {
	Reserve(ctx context.Context, tx store.Execer, token string) error
}

type LedgerStore interface {
	InsertEntry(ctx context.Context, tx store.Execer, entry store.LedgerEntryInput) error
	ListByPlayer(ctx context.Context, playerID string) ([]models.LedgerEntry, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, playerID string, operation models.Operation, status models.Status)
}

type BalanceHub interface {
	BroadcastBalance(playerID string, update websocket.BalanceUpdate)
}

// LedgerService applies credit/debit mutations to a player's balance and
// answers balance/history reads. Each mutation is one atomic unit: the
// balance read, the update and the ledger append commit together or not at
// all. The token reservation commits first and on its own, so a rejected
// debit still consumes its token.
type LedgerService struct {
	txRunner     db.TxRunner
	players      PlayerStore
	tokens       TokenStore
	ledger       LedgerStore
	recorder     AuditRecorder
	hub          BalanceHub
	storeTimeout time.Duration
}

func NewLedgerService(txRunner db.TxRunner, players PlayerStore, tokens TokenStore, ledger LedgerStore, recorder AuditRecorder, hub BalanceHub, storeTimeout time.Duration) *LedgerService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &LedgerService{
		txRunner:     txRunner,
		players:      players,
		tokens:       tokens,
		ledger:       ledger,
		recorder:     recorder,
		hub:          hub,
		storeTimeout: storeTimeout,
	}
}

type MutationRequest struct {
	PlayerID    string
	AmountMinor int64
	Token       string
}

type Receipt struct {
	Token        string
	Operation    models.Operation
	AmountMinor  int64
	BalanceAfter int64
}

func (s *LedgerService) Credit(ctx context.Context, req MutationRequest) (Receipt, error) {
	return s.apply(ctx, req, models.OpCredit)
}

func (s *LedgerService) Debit(ctx context.Context, req MutationRequest) (Receipt, error) {
	return s.apply(ctx, req, models.OpDebit)
}

func (s *LedgerService) apply(ctx context.Context, req MutationRequest, operation models.Operation) (Receipt, error) {
	receipt, err := s.applyMutation(ctx, req, operation)
	status := models.StatusSuccessful
	if err != nil {
		status = models.StatusFail
	}
	s.recorder.Record(ctx, req.PlayerID, operation, status)
	if err != nil {
		return Receipt{}, err
	}
	s.hub.BroadcastBalance(req.PlayerID, websocket.BalanceUpdate{
		PlayerID: req.PlayerID,
		Balance:  money.FormatMinor(receipt.BalanceAfter),
	})
	return receipt, nil
}

func (s *LedgerService) applyMutation(ctx context.Context, req MutationRequest, operation models.Operation) (Receipt, error) {
	if req.AmountMinor < 0 {
		return Receipt{}, ErrInvalidAmount
	}
	if req.Token == "" {
		return Receipt{}, ErrInvalidToken
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	// Reserve the token in its own committed transaction. Reservations
	// outlive a later business-rule rejection: a failed debit burns its
	// token instead of leaving it replayable.
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.tokens.Reserve(ctx, tx, req.Token)
	})
	if errors.Is(err, store.ErrTokenUsed) {
		return Receipt{}, ErrDuplicateTransaction
	}
	if err != nil {
		return Receipt{}, err
	}

	var balanceAfter int64
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		balance, err := s.players.GetBalanceForUpdate(ctx, tx, req.PlayerID)
		if err != nil {
			return err
		}
		newBalance := balance + req.AmountMinor
		if operation == models.OpDebit {
			newBalance = balance - req.AmountMinor
			if newBalance < 0 {
				return ErrInsufficientFunds
			}
		}
		if err := s.players.UpdateBalance(ctx, tx, req.PlayerID, newBalance); err != nil {
			return err
		}
		if err := s.ledger.InsertEntry(ctx, tx, store.LedgerEntryInput{
			ID:           uuid.NewString(),
			Token:        req.Token,
			PlayerID:     req.PlayerID,
			Operation:    operation,
			Amount:       req.AmountMinor,
			BalanceAfter: newBalance,
		}); err != nil {
			return err
		}
		balanceAfter = newBalance
		return nil
	})
	if errors.Is(err, store.ErrTokenUsed) {
		// Schema-level backstop on ledger_entries.token.
		return Receipt{}, ErrDuplicateTransaction
	}
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		Token:        req.Token,
		Operation:    operation,
		AmountMinor:  req.AmountMinor,
		BalanceAfter: balanceAfter,
	}, nil
}

// Balance is a pure read of the current balance.
func (s *LedgerService) Balance(ctx context.Context, playerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	balance, err := s.players.GetBalance(ctx, playerID)
	status := models.StatusSuccessful
	if err != nil {
		status = models.StatusFail
	}
	s.recorder.Record(ctx, playerID, models.OpViewBalance, status)
	return balance, err
}

// History returns the player's ledger entries oldest first. A player with
// no entries gets an empty slice.
func (s *LedgerService) History(ctx context.Context, playerID string) ([]models.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	entries, err := s.ledger.ListByPlayer(ctx, playerID)
	status := models.StatusSuccessful
	if err != nil {
		status = models.StatusFail
	}
	s.recorder.Record(ctx, playerID, models.OpViewHistory, status)
	return entries, err
}
