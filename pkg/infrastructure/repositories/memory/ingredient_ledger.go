package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// IngredientLedger provides in-memory ingredient stock
type IngredientLedger struct {
	mu          sync.RWMutex
	ingredients map[entities.IngredientID]entities.Ingredient
	now         func() time.Time
}

// NewIngredientLedger creates a new in-memory ingredient ledger
func NewIngredientLedger() *IngredientLedger {
	return &IngredientLedger{
		ingredients: make(map[entities.IngredientID]entities.Ingredient),
		now:         time.Now,
	}
}

// Verify interface compliance
var _ repositories.IngredientStore = (*IngredientLedger)(nil)

// LoadIngredients loads ingredients into the ledger
func (l *IngredientLedger) LoadIngredients(ingredients []*entities.Ingredient) error {
	for _, ingredient := range ingredients {
		if err := l.SaveIngredient(context.Background(), ingredient); err != nil {
			return err
		}
	}
	return nil
}

// SaveIngredient adds or replaces an ingredient
func (l *IngredientLedger) SaveIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("ingredient cannot be nil")
	}
	if _, err := entities.NewIngredient(ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.CurrentStock); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.ingredients[ingredient.ID] = *ingredient
	return nil
}

// SetStock changes the stock level of a known ingredient
func (l *IngredientLedger) SetStock(id entities.IngredientID, stock entities.Quantity) error {
	if stock.IsNegative() {
		return fmt.Errorf("current stock cannot be negative, got %s", stock)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ingredient, exists := l.ingredients[id]
	if !exists {
		return fmt.Errorf("%w: %s", entities.ErrUnknownIngredient, id)
	}
	ingredient.CurrentStock = stock
	l.ingredients[id] = ingredient
	return nil
}

// Snapshot copies every stock level under one read lock
func (l *IngredientLedger) Snapshot(ctx context.Context) (*entities.StockSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	ingredients := make([]entities.Ingredient, 0, len(l.ingredients))
	for _, ingredient := range l.ingredients {
		ingredients = append(ingredients, ingredient)
	}
	return entities.NewStockSnapshot(l.now(), ingredients), nil
}
