package repositories

import (
	"context"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// RecipeCatalog resolves a product to its bill of materials.
// Implementations are read-only for the duration of a planning session.
type RecipeCatalog interface {
	Resolve(productID entities.ProductID) (*entities.Recipe, error)
}

// RecipeRepository is the recipe/product catalog read API
type RecipeRepository interface {
	ListRecipes(ctx context.Context) ([]*entities.Recipe, error)
	SaveRecipe(ctx context.Context, recipe *entities.Recipe) error
}
