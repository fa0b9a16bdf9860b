package handlers

import (
	"wallet/internal/money"
	"wallet/internal/services"
)

// parseAmountMinor maps any malformed amount to the service's invalid-amount
// error so handlers report one consistent failure.
func parseAmountMinor(raw string) (int64, error) {
	amount, err := money.ParseMinor(raw)
	if err != nil {
		return 0, services.ErrInvalidAmount
	}
	return amount, nil
}
