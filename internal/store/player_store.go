package store

import (
	"context"
	"database/sql"
	"errors"

	"wallet/internal/models"

	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrUsernameTaken  = errors.New("username already taken")
)

// PlayerStore is the player directory. Balance reads are authoritative on
// every call; there is no caching layer in front of the table.
type PlayerStore struct {
	db DB
}

func NewPlayerStore(db DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) Create(ctx context.Context, tx Execer, id, username, passwordHash string, role models.Role) error {
	query := `
		INSERT INTO players (id, username, password_hash, role, balance)
		VALUES ($1, $2, $3, $4, 0)
	`
	_, err := tx.ExecContext(ctx, query, id, username, passwordHash, role)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

func (s *PlayerStore) GetByUsername(ctx context.Context, username string) (models.Player, error) {
	var player models.Player
	err := s.db.GetContext(ctx, &player, `
		SELECT id, username, password_hash, role, balance, created_at
		FROM players
		WHERE username = $1
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return models.Player{}, err
	}
	return player, nil
}

func (s *PlayerStore) GetByID(ctx context.Context, playerID string) (models.Player, error) {
	var player models.Player
	err := s.db.GetContext(ctx, &player, `
		SELECT id, username, password_hash, role, balance, created_at
		FROM players
		WHERE id = $1
	`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return models.Player{}, err
	}
	return player, nil
}

func (s *PlayerStore) GetBalance(ctx context.Context, playerID string) (int64, error) {
	var balance int64
	err := s.db.GetContext(ctx, &balance, `
		SELECT balance FROM players WHERE id = $1
	`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPlayerNotFound
	}
	return balance, err
}

// GetBalanceForUpdate takes the row lock that serializes concurrent
// mutations against the same player.
func (s *PlayerStore) GetBalanceForUpdate(ctx context.Context, tx Getter, playerID string) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance, `
		SELECT balance FROM players WHERE id = $1 FOR UPDATE
	`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPlayerNotFound
	}
	return balance, err
}

func (s *PlayerStore) UpdateBalance(ctx context.Context, tx Execer, playerID string, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE players SET balance = $1 WHERE id = $2
	`, balance, playerID)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}
