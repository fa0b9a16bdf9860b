package store

import (
	"context"
	"errors"
)

var ErrTokenUsed = errors.New("transaction token already used")

// TokenStore reserves transaction tokens. The token space is global: a
// token consumed by any player for any operation is gone for everyone.
type TokenStore struct {
	db DB
}

func NewTokenStore(db DB) *TokenStore {
	return &TokenStore{db: db}
}

// Reserve marks the token as used. The primary-key insert is the atomic
// check-and-set; a unique violation means some earlier operation already
// consumed it.
func (s *TokenStore) Reserve(ctx context.Context, tx Execer, token string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transaction_tokens (token) VALUES ($1)
	`, token)
	if isUniqueViolation(err) {
		return ErrTokenUsed
	}
	return err
}
