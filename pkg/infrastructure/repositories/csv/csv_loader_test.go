package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, IngredientsFile, "ingredient_id,name,unit,current_stock\nflour,Harina,kg,40\neggs,Huevos,unit,50\n")
	writeFile(t, dir, RecipesFile, "product_id,ingredient_id,quantity_per_unit\ncunape,flour,0.5\ntorta,flour,2\ncunape,eggs,2\n")
	writeFile(t, dir, PlanFile, "product_id,quantity\ncunape,100\n")

	scenario, err := NewLoader().LoadScenario(dir)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if len(scenario.Ingredients) != 2 {
		t.Errorf("Expected 2 ingredients, got %d", len(scenario.Ingredients))
	}
	if !scenario.Ingredients[0].CurrentStock.Equal(entities.MustQuantity("40")) {
		t.Errorf("Expected flour stock 40, got %s", scenario.Ingredients[0].CurrentStock)
	}

	if len(scenario.Recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(scenario.Recipes))
	}
	if scenario.Recipes[0].ProductID != "cunape" || len(scenario.Recipes[0].Items) != 2 {
		t.Errorf("Expected cunape grouped with 2 items, got %+v", scenario.Recipes[0])
	}
	if scenario.Recipes[1].ProductID != "torta" {
		t.Errorf("Expected torta second, got %s", scenario.Recipes[1].ProductID)
	}

	if len(scenario.Lines) != 1 || !scenario.Lines[0].RequestedQuantity.Equal(entities.MustQuantity("100")) {
		t.Errorf("Expected one plan line of 100, got %v", scenario.Lines)
	}
}

func TestLoader_LoadScenario_PlanOptional(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, IngredientsFile, "ingredient_id,name,unit,current_stock\nflour,Harina,kg,40\n")
	writeFile(t, dir, RecipesFile, "product_id,ingredient_id,quantity_per_unit\ncunape,flour,0.5\n")

	scenario, err := NewLoader().LoadScenario(dir)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if len(scenario.Lines) != 0 {
		t.Errorf("Expected no plan lines, got %v", scenario.Lines)
	}
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		load    func(*Loader, string) error
		wantErr string
	}{
		{
			name:    "bad header",
			file:    IngredientsFile,
			content: "id,name,unit,stock\nflour,Harina,kg,40\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadIngredients(p); return err },
			wantErr: "header mismatch",
		},
		{
			name:    "negative stock",
			file:    IngredientsFile,
			content: "ingredient_id,name,unit,current_stock\nflour,Harina,kg,-1\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadIngredients(p); return err },
			wantErr: "ingredients CSV line 2",
		},
		{
			name:    "zero per unit",
			file:    RecipesFile,
			content: "product_id,ingredient_id,quantity_per_unit\ncunape,flour,0\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadRecipes(p); return err },
			wantErr: "must be positive",
		},
		{
			name:    "unparseable quantity",
			file:    PlanFile,
			content: "product_id,quantity\ncunape,lots\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadPlan(p); return err },
			wantErr: "plan CSV line 2",
		},
		{
			name:    "line number counts comments",
			file:    RecipesFile,
			content: "# pasteleria\nproduct_id,ingredient_id,quantity_per_unit\n# cunape\ncunape,flour,0.5\n\n# torta\ntorta,flour,x\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadRecipes(p); return err },
			wantErr: "recipes CSV line 7",
		},
		{
			name:    "wrong column count",
			file:    PlanFile,
			content: "product_id,quantity\n# lote\ncunape,10,extra\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadPlan(p); return err },
			wantErr: "plan CSV line 3: expected 2 columns, got 3",
		},
		{
			name:    "header only",
			file:    PlanFile,
			content: "product_id,quantity\n",
			load:    func(l *Loader, p string) error { _, err := l.LoadPlan(p); return err },
			wantErr: "at least one data row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			err := tt.load(NewLoader(), path)
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoader_PlanKeepsNonPositiveLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), PlanFile, "product_id,quantity\ncunape,0\ntorta,-3\n")

	lines, err := NewLoader().LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("Expected both lines loaded for the planner to drop, got %d", len(lines))
	}
}

func TestLoader_MissingFile(t *testing.T) {
	if _, err := NewLoader().LoadScenario(t.TempDir()); err == nil {
		t.Error("Expected error for empty scenario directory")
	}
}
