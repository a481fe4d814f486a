package entities

import (
	"errors"
	"testing"
	"time"
)

func TestIngredient_Validation(t *testing.T) {
	valid, err := NewIngredient("FLOUR", "Wheat flour", "kg", MustQuantity("40"))
	if err != nil {
		t.Fatalf("Expected valid ingredient creation to succeed: %v", err)
	}
	if valid.Unit != "kg" {
		t.Errorf("Expected unit kg, got %s", valid.Unit)
	}

	testCases := []struct {
		name        string
		id          IngredientID
		ingredient  string
		stock       Quantity
		expectError string
	}{
		{"empty id", "", "Flour", MustQuantity("1"), "ingredient id cannot be empty"},
		{"empty name", "FLOUR", "", MustQuantity("1"), "ingredient name cannot be empty"},
		{"negative stock", "FLOUR", "Flour", MustQuantity("-1"), "current stock cannot be negative, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIngredient(tc.id, tc.ingredient, "kg", tc.stock)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestStockSnapshot_Available(t *testing.T) {
	snapshot := NewStockSnapshot(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), []Ingredient{
		{ID: "FLOUR", Name: "Flour", Unit: "kg", CurrentStock: MustQuantity("40")},
		{ID: "EGG", Name: "Egg", Unit: "pc", CurrentStock: MustQuantity("50")},
	})

	if !snapshot.Available("FLOUR").Equal(MustQuantity("40")) {
		t.Errorf("Expected 40 flour, got %s", snapshot.Available("FLOUR"))
	}
	if !snapshot.Available("SAFFRON").IsZero() {
		t.Errorf("Expected zero for never-stocked ingredient, got %s", snapshot.Available("SAFFRON"))
	}
	if !snapshot.Knows("EGG") || snapshot.Knows("SAFFRON") {
		t.Error("Knows reported wrong membership")
	}

	ingredients := snapshot.Ingredients()
	if len(ingredients) != 2 || ingredients[0].ID != "EGG" {
		t.Errorf("Expected ingredients sorted by id, got %v", ingredients)
	}

	var nilSnapshot *StockSnapshot
	if !nilSnapshot.Available("FLOUR").IsZero() || nilSnapshot.Len() != 0 {
		t.Error("Nil snapshot must report nothing available")
	}
}

func TestErrorKinds(t *testing.T) {
	resolution := &RecipeResolutionError{ProductID: "TORTA", Err: ErrRecipeNotFound}
	if !errors.Is(resolution, ErrRecipeNotFound) {
		t.Error("RecipeResolutionError should unwrap to its cause")
	}

	invalid := &InvalidQuantityError{ProductID: "TORTA", Quantity: MustQuantity("0")}
	if !errors.Is(invalid, ErrInvalidQuantity) {
		t.Error("InvalidQuantityError should match ErrInvalidQuantity")
	}

	cause := errors.New("connection refused")
	ledger := &LedgerUnavailableError{Err: cause}
	if !errors.Is(ledger, ErrLedgerUnavailable) || !errors.Is(ledger, cause) {
		t.Error("LedgerUnavailableError should match both sentinel and cause")
	}
}
