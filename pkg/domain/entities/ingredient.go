package entities

import (
	"fmt"
	"sort"
	"time"
)

// IngredientID is the identity of an ingredient in the ledger
type IngredientID string

// Ingredient is a stocked raw material
type Ingredient struct {
	ID           IngredientID `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Unit         string       `json:"unit" yaml:"unit"`
	CurrentStock Quantity     `json:"current_stock" yaml:"current_stock"`
}

// NewIngredient creates a validated Ingredient
func NewIngredient(id IngredientID, name, unit string, currentStock Quantity) (*Ingredient, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("ingredient name cannot be empty")
	}
	if currentStock.IsNegative() {
		return nil, fmt.Errorf("current stock cannot be negative, got %s", currentStock)
	}

	return &Ingredient{
		ID:           id,
		Name:         name,
		Unit:         unit,
		CurrentStock: currentStock,
	}, nil
}

// StockSnapshot is a single point-in-time read of the ingredient ledger.
// It is treated as immutable for the duration of a planning run.
type StockSnapshot struct {
	TakenAt     time.Time
	ingredients map[IngredientID]Ingredient
}

// NewStockSnapshot copies the given ingredients into an immutable snapshot
func NewStockSnapshot(takenAt time.Time, ingredients []Ingredient) *StockSnapshot {
	byID := make(map[IngredientID]Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		byID[ingredient.ID] = ingredient
	}
	return &StockSnapshot{
		TakenAt:     takenAt,
		ingredients: byID,
	}
}

// Available returns the stock on hand for an ingredient.
// Ingredients absent from the snapshot have never been stocked and report zero.
func (s *StockSnapshot) Available(id IngredientID) Quantity {
	if s == nil {
		return ZeroQuantity
	}
	if ingredient, ok := s.ingredients[id]; ok {
		return ingredient.CurrentStock
	}
	return ZeroQuantity
}

// Knows reports whether the ledger has a record for the ingredient
func (s *StockSnapshot) Knows(id IngredientID) bool {
	if s == nil {
		return false
	}
	_, ok := s.ingredients[id]
	return ok
}

// Ingredient returns the ledger record for an ingredient
func (s *StockSnapshot) Ingredient(id IngredientID) (Ingredient, bool) {
	if s == nil {
		return Ingredient{}, false
	}
	ingredient, ok := s.ingredients[id]
	return ingredient, ok
}

// Len returns the number of ingredients in the snapshot
func (s *StockSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ingredients)
}

// Ingredients returns all ingredients ordered by id
func (s *StockSnapshot) Ingredients() []Ingredient {
	if s == nil {
		return nil
	}
	out := make([]Ingredient, 0, len(s.ingredients))
	for _, ingredient := range s.ingredients {
		out = append(out, ingredient)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
