package entities

import "fmt"

// ProductID is the identity of a sellable product
type ProductID string

// RecipeItem is the quantity of one ingredient needed to produce exactly one unit of a product
type RecipeItem struct {
	IngredientID    IngredientID `json:"ingredient_id" yaml:"ingredient_id"`
	QuantityPerUnit Quantity     `json:"quantity_per_unit" yaml:"quantity_per_unit"`
}

// NewRecipeItem creates a validated RecipeItem
func NewRecipeItem(ingredientID IngredientID, quantityPerUnit Quantity) (*RecipeItem, error) {
	if string(ingredientID) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if !quantityPerUnit.IsPositive() {
		return nil, fmt.Errorf("quantity per unit must be positive, got %s", quantityPerUnit)
	}

	return &RecipeItem{
		IngredientID:    ingredientID,
		QuantityPerUnit: quantityPerUnit,
	}, nil
}

// Recipe is the bill of materials for a product. One recipe per product.
type Recipe struct {
	ProductID ProductID    `json:"product_id" yaml:"product_id"`
	Items     []RecipeItem `json:"items" yaml:"items"`
}

// NewRecipe creates a validated Recipe; item order is preserved
func NewRecipe(productID ProductID, items []RecipeItem) (*Recipe, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("recipe for %s must have at least one item", productID)
	}

	copied := make([]RecipeItem, len(items))
	copy(copied, items)

	return &Recipe{
		ProductID: productID,
		Items:     copied,
	}, nil
}

// RecipeBook is a materialized, read-only set of recipes keyed by product.
// It satisfies the recipe catalog lookup contract and is safe for concurrent reads.
type RecipeBook struct {
	recipes map[ProductID]Recipe
}

// NewRecipeBook indexes recipes by product; a later recipe for the same product wins
func NewRecipeBook(recipes []*Recipe) *RecipeBook {
	book := &RecipeBook{recipes: make(map[ProductID]Recipe, len(recipes))}
	for _, recipe := range recipes {
		if recipe == nil {
			continue
		}
		book.recipes[recipe.ProductID] = *recipe
	}
	return book
}

// Resolve returns the recipe for a product or ErrRecipeNotFound
func (b *RecipeBook) Resolve(productID ProductID) (*Recipe, error) {
	recipe, ok := b.recipes[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, productID)
	}
	return &recipe, nil
}

// Len returns the number of recipes in the book
func (b *RecipeBook) Len() int {
	return len(b.recipes)
}
