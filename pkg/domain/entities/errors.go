package entities

import (
	"errors"
	"fmt"
)

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidRecipe      = errors.New("invalid recipe")
	ErrUnknownIngredient  = errors.New("ingredient not in ledger")
	ErrInvalidQuantity    = errors.New("requested quantity must be positive")
	ErrLedgerUnavailable  = errors.New("ingredient ledger unavailable")
	ErrProductionNotFound = errors.New("production not found")
	ErrInvalidTransition  = errors.New("invalid production status transition")
	ErrNoPlannableLines   = errors.New("no plannable production lines")
)

// RecipeResolutionError marks a single plan line whose recipe could not be resolved.
// It is never fatal to the whole plan.
type RecipeResolutionError struct {
	ProductID ProductID
	Err       error
}

func (e *RecipeResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve recipe for %s: %v", e.ProductID, e.Err)
}

func (e *RecipeResolutionError) Unwrap() error {
	return e.Err
}

// InvalidQuantityError marks a plan line dropped because its quantity was not positive
type InvalidQuantityError struct {
	ProductID ProductID
	Quantity  Quantity
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %s for %s", e.Quantity, e.ProductID)
}

func (e *InvalidQuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}

// LedgerUnavailableError means the stock snapshot could not be obtained.
// It aborts the planning run.
type LedgerUnavailableError struct {
	Err error
}

func (e *LedgerUnavailableError) Error() string {
	return fmt.Sprintf("%v: %v", ErrLedgerUnavailable, e.Err)
}

func (e *LedgerUnavailableError) Unwrap() error {
	return e.Err
}

func (e *LedgerUnavailableError) Is(target error) bool {
	return target == ErrLedgerUnavailable
}
