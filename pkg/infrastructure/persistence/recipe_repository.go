package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/domain/services"
)

// GormRecipeRepository stores recipes as ordered item rows
type GormRecipeRepository struct {
	db        *gorm.DB
	validator *services.RecipeValidator
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db, validator: services.NewRecipeValidator()}
}

var _ repositories.RecipeRepository = (*GormRecipeRepository)(nil)

// SaveRecipe replaces all item rows of the recipe's product in one transaction
func (r *GormRecipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe) error {
	if _, err := entities.NewRecipe(recipe.ProductID, recipe.Items); err != nil {
		return err
	}
	if err := r.validator.ValidateRecipe(recipe).Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", string(recipe.ProductID)).Delete(&RecipeItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe %s: %w", recipe.ProductID, err)
		}

		models := make([]RecipeItemModel, 0, len(recipe.Items))
		for i, item := range recipe.Items {
			models = append(models, RecipeItemModel{
				ProductID:       string(recipe.ProductID),
				Position:        i,
				IngredientID:    string(item.IngredientID),
				QuantityPerUnit: item.QuantityPerUnit,
			})
		}

		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save recipe %s: %w", recipe.ProductID, err)
		}
		return nil
	})
}

// ListRecipes returns all recipes ordered by product, items in their saved order
func (r *GormRecipeRepository) ListRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	var models []RecipeItemModel
	if err := r.db.WithContext(ctx).Order("product_id").Order("position").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	var recipes []*entities.Recipe
	var current *entities.Recipe
	for _, model := range models {
		productID := entities.ProductID(model.ProductID)
		if current == nil || current.ProductID != productID {
			current = &entities.Recipe{ProductID: productID}
			recipes = append(recipes, current)
		}
		current.Items = append(current.Items, entities.RecipeItem{
			IngredientID:    entities.IngredientID(model.IngredientID),
			QuantityPerUnit: model.QuantityPerUnit,
		})
	}

	return recipes, nil
}
