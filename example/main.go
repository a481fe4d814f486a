package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/application/services/planning"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	recipes := memory.NewRecipeRepository(2)
	ledger := memory.NewIngredientLedger()
	setupBakery(recipes, ledger)

	engine := planning.NewEngine(planning.DefaultEngineConfig())
	planner := planning.NewPlanner(engine, recipes, ledger, nil)

	dueDate := time.Now().AddDate(0, 0, 1)
	req := dto.PlanRequest{
		Name:    "Cuñapes para la feria",
		DueDate: dueDate,
		Lines: []entities.ProductionLineRequest{
			{ProductID: "cunape", RequestedQuantity: entities.QuantityFromInt(100)},
		},
	}

	fmt.Println("🥯 Planning production...")
	fmt.Printf("Request: %s cuñapes by %s\n\n", req.Lines[0].RequestedQuantity, dueDate.Format("2006-01-02"))

	result, err := planner.Plan(ctx, req)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	fmt.Println("🧾 Ingredient demand:")
	for _, id := range result.Demand.IngredientIDs() {
		fmt.Printf("  %s: %s\n", id, result.Demand.Required(id))
	}
	fmt.Println()

	if result.Feasible {
		fmt.Printf("✅ %s can start now (%s)\n", result.Production.Name, result.Production.Status)
		return
	}

	fmt.Printf("⏳ %s stays %s\n\n", result.Production.Name, result.Production.Status)
	fmt.Println("🚨 Shortfall:")
	for _, entry := range result.Shortfall {
		fmt.Printf("  %s: need %s, have %s, missing %s\n",
			entry.IngredientID, entry.Required, entry.Available, entry.Missing)
	}
	fmt.Println()

	fmt.Println("🛒 Purchase draft:")
	for _, line := range result.PurchaseDraft.Lines {
		fmt.Printf("  buy %s %s\n", line.Missing, line.IngredientID)
	}

	// Stock arrives; the same request is now feasible
	_ = ledger.SetStock("flour", entities.QuantityFromInt(60))
	_ = ledger.SetStock("eggs", entities.QuantityFromInt(250))

	recheck, err := planner.Recheck(ctx, result.Production.LineItems)
	if err != nil {
		fmt.Printf("❌ Recheck failed: %v\n", err)
		return
	}
	fmt.Printf("\n📦 After delivery: feasible=%t\n", recheck.Feasible)
}

func setupBakery(recipes *memory.RecipeRepository, ledger *memory.IngredientLedger) {
	cunape, _ := entities.NewRecipe("cunape", []entities.RecipeItem{
		{IngredientID: "flour", QuantityPerUnit: entities.MustQuantity("0.5")},
		{IngredientID: "eggs", QuantityPerUnit: entities.MustQuantity("2")},
	})
	torta, _ := entities.NewRecipe("torta", []entities.RecipeItem{
		{IngredientID: "flour", QuantityPerUnit: entities.MustQuantity("2")},
		{IngredientID: "eggs", QuantityPerUnit: entities.MustQuantity("3")},
		{IngredientID: "sugar", QuantityPerUnit: entities.MustQuantity("0.25")},
	})
	_ = recipes.LoadRecipes([]*entities.Recipe{cunape, torta})

	flour, _ := entities.NewIngredient("flour", "Harina", "kg", entities.QuantityFromInt(40))
	eggs, _ := entities.NewIngredient("eggs", "Huevos", "unit", entities.QuantityFromInt(50))
	sugar, _ := entities.NewIngredient("sugar", "Azucar", "kg", entities.QuantityFromInt(6))
	_ = ledger.LoadIngredients([]*entities.Ingredient{flour, eggs, sugar})
}
