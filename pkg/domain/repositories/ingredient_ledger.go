package repositories

import (
	"context"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// IngredientLedger is the read-only source of current ingredient stock
type IngredientLedger interface {
	// Snapshot takes one consistent read of all ingredient stock
	Snapshot(ctx context.Context) (*entities.StockSnapshot, error)
}

// IngredientStore is a ledger that also accepts ingredient writes
type IngredientStore interface {
	IngredientLedger
	SaveIngredient(ctx context.Context, ingredient *entities.Ingredient) error
}
