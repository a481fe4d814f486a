package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func TestRecipeRepository_SaveAndReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository(4)

	first, _ := entities.NewRecipe("cunape", []entities.RecipeItem{
		{IngredientID: "flour", QuantityPerUnit: entities.MustQuantity("0.5")},
	})
	second, _ := entities.NewRecipe("cunape", []entities.RecipeItem{
		{IngredientID: "flour", QuantityPerUnit: entities.MustQuantity("0.6")},
		{IngredientID: "eggs", QuantityPerUnit: entities.MustQuantity("2")},
	})

	if err := repo.LoadRecipes([]*entities.Recipe{first, second}); err != nil {
		t.Fatalf("Failed to load recipes: %v", err)
	}

	recipes, err := repo.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("Failed to list recipes: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("Expected 1 recipe after replacement, got %d", len(recipes))
	}
	if len(recipes[0].Items) != 2 {
		t.Errorf("Expected the later recipe to win, got %d items", len(recipes[0].Items))
	}
	if recipes[0].Items[0].QuantityPerUnit.String() != "0.6" {
		t.Errorf("Expected flour 0.6 from the later recipe, got %s", recipes[0].Items[0].QuantityPerUnit)
	}
}

func TestRecipeRepository_RejectsInvalid(t *testing.T) {
	repo := NewRecipeRepository(0)

	err := repo.SaveRecipe(context.Background(), &entities.Recipe{ProductID: "empty"})
	if err == nil {
		t.Error("Expected error for recipe without items")
	}

	tests := []struct {
		name  string
		items []entities.RecipeItem
	}{
		{
			name: "duplicate ingredient",
			items: []entities.RecipeItem{
				{IngredientID: "flour", QuantityPerUnit: entities.MustQuantity("0.5")},
				{IngredientID: "flour", QuantityPerUnit: entities.MustQuantity("0.5")},
			},
		},
		{
			name: "zero quantity",
			items: []entities.RecipeItem{
				{IngredientID: "flour", QuantityPerUnit: entities.ZeroQuantity},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveRecipe(context.Background(), &entities.Recipe{ProductID: "cunape", Items: tt.items})
			if !errors.Is(err, entities.ErrInvalidRecipe) {
				t.Errorf("Expected ErrInvalidRecipe, got %v", err)
			}
		})
	}

	recipes, _ := repo.ListRecipes(context.Background())
	if len(recipes) != 0 {
		t.Errorf("Expected no stored recipes, got %d", len(recipes))
	}
}

func TestIngredientLedger_SnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	ledger := NewIngredientLedger()
	ledger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	flour, _ := entities.NewIngredient("flour", "Harina", "kg", entities.MustQuantity("40"))
	if err := ledger.LoadIngredients([]*entities.Ingredient{flour}); err != nil {
		t.Fatalf("Failed to load ingredients: %v", err)
	}

	snapshot, err := ledger.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if err := ledger.SetStock("flour", entities.MustQuantity("5")); err != nil {
		t.Fatalf("SetStock failed: %v", err)
	}

	if !snapshot.Available("flour").Equal(entities.MustQuantity("40")) {
		t.Errorf("Snapshot must not see later writes, got %s", snapshot.Available("flour"))
	}
	if snapshot.TakenAt.Year() != 2026 {
		t.Errorf("Expected snapshot time from ledger clock, got %v", snapshot.TakenAt)
	}

	fresh, _ := ledger.Snapshot(ctx)
	if !fresh.Available("flour").Equal(entities.MustQuantity("5")) {
		t.Errorf("Expected fresh snapshot to see 5, got %s", fresh.Available("flour"))
	}
}

func TestIngredientLedger_SetStock(t *testing.T) {
	ledger := NewIngredientLedger()

	if err := ledger.SetStock("ghost", entities.MustQuantity("1")); !errors.Is(err, entities.ErrUnknownIngredient) {
		t.Errorf("Expected ErrUnknownIngredient, got %v", err)
	}

	eggs, _ := entities.NewIngredient("eggs", "Huevos", "unit", entities.MustQuantity("12"))
	_ = ledger.SaveIngredient(context.Background(), eggs)
	if err := ledger.SetStock("eggs", entities.MustQuantity("-1")); err == nil {
		t.Error("Expected error for negative stock")
	}
}

func TestIngredientLedger_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewIngredientLedger().Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProductionRepository_SaveFindList(t *testing.T) {
	ctx := context.Background()
	repo := NewProductionRepository()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	later := &entities.Production{
		ID:        "b",
		Name:      "Later",
		Status:    entities.Pending,
		CreatedAt: base.Add(time.Hour),
		LineItems: []entities.ProductionLineRequest{{ProductID: "cunape", RequestedQuantity: entities.MustQuantity("10")}},
	}
	earlier := &entities.Production{ID: "a", Name: "Earlier", Status: entities.InProgress, CreatedAt: base}

	for _, p := range []*entities.Production{later, earlier} {
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	later.LineItems[0].RequestedQuantity = entities.MustQuantity("999")
	found, err := repo.FindByID(ctx, "b")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !found.LineItems[0].RequestedQuantity.Equal(entities.MustQuantity("10")) {
		t.Error("Stored production must not alias the caller's line items")
	}

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("Expected productions ordered by creation time, got %v", list)
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, entities.ErrProductionNotFound) {
		t.Errorf("Expected ErrProductionNotFound, got %v", err)
	}
}

func TestPurchaseOutbox(t *testing.T) {
	outbox := NewPurchaseOutbox()

	if err := outbox.SubmitPurchase(context.Background(), nil); err == nil {
		t.Error("Expected error for nil draft")
	}

	draft := &entities.PurchaseDraft{
		ProductionID: "p1",
		Lines:        []entities.ShortfallEntry{entities.NewShortfallEntry("eggs", entities.MustQuantity("200"), entities.MustQuantity("50"))},
	}
	if err := outbox.SubmitPurchase(context.Background(), draft); err != nil {
		t.Fatalf("SubmitPurchase failed: %v", err)
	}

	submitted := outbox.Submitted()
	if len(submitted) != 1 || submitted[0].ProductionID != "p1" {
		t.Errorf("Expected one submitted draft for p1, got %v", submitted)
	}
}
