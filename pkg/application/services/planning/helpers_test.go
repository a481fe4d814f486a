package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func qty(value string) entities.Quantity {
	return entities.MustQuantity(value)
}

func line(product string, quantity string) entities.ProductionLineRequest {
	return entities.ProductionLineRequest{
		ProductID:         entities.ProductID(product),
		RequestedQuantity: qty(quantity),
	}
}

func recipe(product string, items ...entities.RecipeItem) *entities.Recipe {
	r, err := entities.NewRecipe(entities.ProductID(product), items)
	if err != nil {
		panic(err)
	}
	return r
}

func item(ingredient string, perUnit string) entities.RecipeItem {
	return entities.RecipeItem{
		IngredientID:    entities.IngredientID(ingredient),
		QuantityPerUnit: qty(perUnit),
	}
}

func stock(levels map[string]string) *entities.StockSnapshot {
	ingredients := make([]entities.Ingredient, 0, len(levels))
	for id, level := range levels {
		ingredients = append(ingredients, entities.Ingredient{
			ID:           entities.IngredientID(id),
			Name:         id,
			Unit:         "unit",
			CurrentStock: qty(level),
		})
	}
	return entities.NewStockSnapshot(fixedNow, ingredients)
}

// bakeryBook has Cunape (0.5 flour + 2 eggs) and Torta (2 flour + 3 eggs + 0.25 sugar)
func bakeryBook() *entities.RecipeBook {
	return entities.NewRecipeBook([]*entities.Recipe{
		recipe("cunape", item("flour", "0.5"), item("eggs", "2")),
		recipe("torta", item("flour", "2"), item("eggs", "3"), item("sugar", "0.25")),
	})
}

func newTestEngine() *Engine {
	sequence := 0
	return NewEngine(DefaultEngineConfig(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			sequence++
			return fmt.Sprintf("prod-%d", sequence)
		}),
	)
}

type stubRecipeRepository struct {
	recipes []*entities.Recipe
	err     error
}

func (r *stubRecipeRepository) ListRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	return r.recipes, r.err
}

func (r *stubRecipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe) error {
	r.recipes = append(r.recipes, recipe)
	return nil
}

type stubLedger struct {
	snapshot *entities.StockSnapshot
	err      error
	calls    int
}

func (l *stubLedger) Snapshot(ctx context.Context) (*entities.StockSnapshot, error) {
	l.calls++
	return l.snapshot, l.err
}

var errLedgerDown = errors.New("connection refused")
