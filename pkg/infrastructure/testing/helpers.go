package testing

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
)

// BuildBakeryTestData builds a small bakery: cuñapes and tortas over five ingredients.
//
// Stock: flour 40kg, eggs 50, sugar 6kg, cheese 8kg, starch 12kg.
// A cuñape takes 0.5kg flour and 2 eggs, so 25 are feasible and 100 are short
// 10kg of flour and 150 eggs.
func BuildBakeryTestData() (*memory.RecipeRepository, *memory.IngredientLedger) {
	recipeRepo := memory.NewRecipeRepository(2)
	ledger := memory.NewIngredientLedger()

	ingredients := []*entities.Ingredient{
		mustIngredient("flour", "Harina de trigo", "kg", "40"),
		mustIngredient("eggs", "Huevos", "unit", "50"),
		mustIngredient("sugar", "Azucar", "kg", "6"),
		mustIngredient("cheese", "Queso fresco", "kg", "8"),
		mustIngredient("starch", "Almidon de yuca", "kg", "12"),
	}
	if err := ledger.LoadIngredients(ingredients); err != nil {
		panic(err)
	}

	recipes := []*entities.Recipe{
		mustRecipe("cunape",
			item("flour", "0.5"),
			item("eggs", "2"),
		),
		mustRecipe("torta",
			item("flour", "2"),
			item("eggs", "3"),
			item("sugar", "0.25"),
		),
	}
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	return recipeRepo, ledger
}

// CunapeLine is a request line for n cuñapes
func CunapeLine(n string) entities.ProductionLineRequest {
	return entities.ProductionLineRequest{
		ProductID:         "cunape",
		RequestedQuantity: entities.MustQuantity(n),
	}
}

func mustIngredient(id entities.IngredientID, name, unit, stock string) *entities.Ingredient {
	ingredient, err := entities.NewIngredient(id, name, unit, entities.MustQuantity(stock))
	if err != nil {
		panic(err)
	}
	return ingredient
}

func item(id entities.IngredientID, perUnit string) entities.RecipeItem {
	return entities.RecipeItem{IngredientID: id, QuantityPerUnit: entities.MustQuantity(perUnit)}
}

func mustRecipe(product entities.ProductID, items ...entities.RecipeItem) *entities.Recipe {
	recipe, err := entities.NewRecipe(product, items)
	if err != nil {
		panic(err)
	}
	return recipe
}
