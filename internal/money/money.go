package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// maxAmount is the largest amount whose minor-unit value still fits int64.
var maxAmount = decimal.New(math.MaxInt64, -2)

// ParseMinor converts a decimal amount string ("100", "0.5", "12.34") into
// minor units. Amounts carry at most two decimal places.
func ParseMinor(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if amount.Exponent() < -2 {
		return 0, ErrTooManyDecimals
	}
	// IntPart truncates past int64, so amounts beyond the representable
	// range must be rejected before shifting.
	if amount.Cmp(maxAmount) > 0 {
		return 0, ErrInvalidAmount
	}
	return amount.Shift(2).IntPart(), nil
}

// FormatMinor renders minor units as a fixed two-decimal string.
func FormatMinor(value int64) string {
	return decimal.New(value, -2).StringFixed(2)
}
