package services

import (
	"fmt"
	"strings"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// RecipeValidator checks recipe structure before recipes are used for planning
type RecipeValidator struct{}

// NewRecipeValidator creates a new recipe validator
func NewRecipeValidator() *RecipeValidator {
	return &RecipeValidator{}
}

// ValidationResult contains the results of recipe validation
type ValidationResult struct {
	DuplicateItems     []DuplicateItem
	NonPositiveItems   []entities.RecipeItem
	UnknownIngredients []entities.IngredientID
	DuplicateProducts  []entities.ProductID
	Errors             []string
}

// DuplicateItem is an ingredient listed more than once in the same recipe
type DuplicateItem struct {
	ProductID    entities.ProductID
	IngredientID entities.IngredientID
}

// IsValid reports whether validation found no errors
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Err folds the validation errors into a single error, nil when valid
func (r *ValidationResult) Err() error {
	if r.IsValid() {
		return nil
	}
	return fmt.Errorf("%w: %s", entities.ErrInvalidRecipe, strings.Join(r.Errors, "; "))
}

// ValidateRecipe checks a single recipe for duplicate and non-positive lines
func (v *RecipeValidator) ValidateRecipe(recipe *entities.Recipe) *ValidationResult {
	result := newValidationResult()
	v.checkItems(recipe, result)
	return result
}

// ValidateCatalog checks every recipe and that no product has more than one recipe
func (v *RecipeValidator) ValidateCatalog(recipes []*entities.Recipe) *ValidationResult {
	result := newValidationResult()

	seen := make(map[entities.ProductID]bool)
	for _, recipe := range recipes {
		if seen[recipe.ProductID] {
			result.DuplicateProducts = append(result.DuplicateProducts, recipe.ProductID)
			result.Errors = append(result.Errors,
				fmt.Sprintf("product %s has more than one recipe", recipe.ProductID))
			continue
		}
		seen[recipe.ProductID] = true
		v.checkItems(recipe, result)
	}

	return result
}

// ValidateReferences checks that every ingredient a recipe uses exists in the ledger
func (v *RecipeValidator) ValidateReferences(recipe *entities.Recipe, snapshot *entities.StockSnapshot) *ValidationResult {
	result := newValidationResult()

	for _, item := range recipe.Items {
		if !snapshot.Knows(item.IngredientID) {
			result.UnknownIngredients = append(result.UnknownIngredients, item.IngredientID)
			result.Errors = append(result.Errors,
				fmt.Sprintf("recipe %s references unknown ingredient %s", recipe.ProductID, item.IngredientID))
		}
	}

	return result
}

func (v *RecipeValidator) checkItems(recipe *entities.Recipe, result *ValidationResult) {
	seen := make(map[entities.IngredientID]bool, len(recipe.Items))

	for _, item := range recipe.Items {
		if !item.QuantityPerUnit.IsPositive() {
			result.NonPositiveItems = append(result.NonPositiveItems, item)
			result.Errors = append(result.Errors,
				fmt.Sprintf("recipe %s: %s quantity per unit must be positive, got %s",
					recipe.ProductID, item.IngredientID, item.QuantityPerUnit))
		}

		if seen[item.IngredientID] {
			result.DuplicateItems = append(result.DuplicateItems, DuplicateItem{
				ProductID:    recipe.ProductID,
				IngredientID: item.IngredientID,
			})
			result.Errors = append(result.Errors,
				fmt.Sprintf("recipe %s lists ingredient %s more than once", recipe.ProductID, item.IngredientID))
			continue
		}
		seen[item.IngredientID] = true
	}
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		DuplicateItems:     make([]DuplicateItem, 0),
		NonPositiveItems:   make([]entities.RecipeItem, 0),
		UnknownIngredients: make([]entities.IngredientID, 0),
		DuplicateProducts:  make([]entities.ProductID, 0),
		Errors:             make([]string, 0),
	}
}
