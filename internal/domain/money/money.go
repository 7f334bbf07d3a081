package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotPositive   = errors.New("amount must be positive")
	ErrTooManyPlaces = errors.New("amount must have at most 2 decimal places")
)

// Zero is the canonical zero amount (0.00).
var Zero = decimal.NewFromInt(0)

// Validate checks an amount is strictly positive with at most 2 decimal
// places. All currency values in the ledger are fixed-point decimal(12,2).
func Validate(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrNotPositive
	}
	if !d.Equal(d.Round(2)) {
		return ErrTooManyPlaces
	}
	return nil
}

// Round2 normalizes a computed amount to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// ClampFloor returns d, floored at zero.
func ClampFloor(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}
	return d
}
