package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an exact decimal amount expressed in an ingredient's unit
// (kilograms, litres, pieces). Float arithmetic is never used for quantities.
type Quantity = decimal.Decimal

// ZeroQuantity is the additive identity for quantities
var ZeroQuantity = decimal.Zero

// NewQuantity parses a decimal quantity such as "0.5" or "200"
func NewQuantity(value string) (Quantity, error) {
	q, err := decimal.NewFromString(value)
	if err != nil {
		return ZeroQuantity, fmt.Errorf("invalid quantity %q: %w", value, err)
	}
	return q, nil
}

// MustQuantity parses a decimal quantity and panics on malformed input.
// Intended for fixtures and tests.
func MustQuantity(value string) Quantity {
	return decimal.RequireFromString(value)
}

// QuantityFromInt converts an integer count into a Quantity
func QuantityFromInt(value int64) Quantity {
	return decimal.NewFromInt(value)
}
