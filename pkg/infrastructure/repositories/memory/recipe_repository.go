package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/domain/services"
)

// RecipeRepository provides in-memory recipe storage
type RecipeRepository struct {
	mu         sync.RWMutex
	recipes    []*entities.Recipe
	recipesMap map[entities.ProductID]int
	validator  *services.RecipeValidator
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(expectedRecipes int) *RecipeRepository {
	return &RecipeRepository{
		recipes:    make([]*entities.Recipe, 0, expectedRecipes),
		recipesMap: make(map[entities.ProductID]int, expectedRecipes),
		validator:  services.NewRecipeValidator(),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		if err := r.SaveRecipe(context.Background(), recipe); err != nil {
			return err
		}
	}
	return nil
}

// SaveRecipe stores a recipe, replacing any existing recipe for the same product
func (r *RecipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("recipe cannot be nil")
	}
	stored, err := entities.NewRecipe(recipe.ProductID, recipe.Items)
	if err != nil {
		return err
	}
	if err := r.validator.ValidateRecipe(stored).Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.recipesMap[recipe.ProductID]; exists {
		r.recipes[index] = stored
		return nil
	}
	r.recipesMap[recipe.ProductID] = len(r.recipes)
	r.recipes = append(r.recipes, stored)
	return nil
}

// ListRecipes returns all recipes in insertion order
func (r *RecipeRepository) ListRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]*entities.Recipe, len(r.recipes))
	copy(recipes, r.recipes)
	return recipes, nil
}
