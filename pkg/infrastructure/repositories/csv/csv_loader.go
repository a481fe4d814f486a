package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// Scenario file names inside a scenario directory
const (
	IngredientsFile = "ingredients.csv"
	RecipesFile     = "recipes.csv"
	PlanFile        = "plan.csv"
)

// Scenario is a complete set of planning inputs read from a directory
type Scenario struct {
	Ingredients []*entities.Ingredient
	Recipes     []*entities.Recipe
	// Lines is empty when the directory has no plan.csv
	Lines []entities.ProductionLineRequest
}

// Loader handles loading bakery data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario reads ingredients.csv, recipes.csv and, if present, plan.csv from dir
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	ingredients, err := l.LoadIngredients(filepath.Join(dir, IngredientsFile))
	if err != nil {
		return nil, err
	}

	recipes, err := l.LoadRecipes(filepath.Join(dir, RecipesFile))
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{Ingredients: ingredients, Recipes: recipes}

	planPath := filepath.Join(dir, PlanFile)
	if _, err := os.Stat(planPath); err == nil {
		lines, err := l.LoadPlan(planPath)
		if err != nil {
			return nil, err
		}
		scenario.Lines = lines
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat plan file %s: %w", planPath, err)
	}

	return scenario, nil
}

// LoadIngredients loads the ingredient ledger from a CSV file
func (l *Loader) LoadIngredients(filename string) ([]*entities.Ingredient, error) {
	expectedHeader := []string{"ingredient_id", "name", "unit", "current_stock"}
	rows, err := readRecords(filename, "ingredients", expectedHeader)
	if err != nil {
		return nil, err
	}

	var ingredients []*entities.Ingredient
	for _, row := range rows {
		record := row.fields
		stock, err := entities.NewQuantity(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("ingredients CSV line %d: %w", row.line, err)
		}

		ingredient, err := entities.NewIngredient(
			entities.IngredientID(strings.TrimSpace(record[0])),
			strings.TrimSpace(record[1]),
			strings.TrimSpace(record[2]),
			stock,
		)
		if err != nil {
			return nil, fmt.Errorf("ingredients CSV line %d: %w", row.line, err)
		}

		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// LoadRecipes loads recipe lines from a CSV file and groups them by product.
// Products keep the order of their first appearance.
func (l *Loader) LoadRecipes(filename string) ([]*entities.Recipe, error) {
	expectedHeader := []string{"product_id", "ingredient_id", "quantity_per_unit"}
	rows, err := readRecords(filename, "recipes", expectedHeader)
	if err != nil {
		return nil, err
	}

	var order []entities.ProductID
	items := make(map[entities.ProductID][]entities.RecipeItem)

	for _, row := range rows {
		record := row.fields
		productID := entities.ProductID(strings.TrimSpace(record[0]))
		if productID == "" {
			return nil, fmt.Errorf("recipes CSV line %d: product id cannot be empty", row.line)
		}

		perUnit, err := entities.NewQuantity(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("recipes CSV line %d: %w", row.line, err)
		}

		item, err := entities.NewRecipeItem(entities.IngredientID(strings.TrimSpace(record[1])), perUnit)
		if err != nil {
			return nil, fmt.Errorf("recipes CSV line %d: %w", row.line, err)
		}

		if _, seen := items[productID]; !seen {
			order = append(order, productID)
		}
		items[productID] = append(items[productID], *item)
	}

	recipes := make([]*entities.Recipe, 0, len(order))
	for _, productID := range order {
		recipe, err := entities.NewRecipe(productID, items[productID])
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// LoadPlan loads production line requests from a CSV file.
// Quantities are not range-checked here; the planner drops non-positive lines.
func (l *Loader) LoadPlan(filename string) ([]entities.ProductionLineRequest, error) {
	expectedHeader := []string{"product_id", "quantity"}
	rows, err := readRecords(filename, "plan", expectedHeader)
	if err != nil {
		return nil, err
	}

	lines := make([]entities.ProductionLineRequest, 0, len(rows))
	for _, row := range rows {
		record := row.fields
		quantity, err := entities.NewQuantity(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("plan CSV line %d: %w", row.line, err)
		}

		lines = append(lines, entities.ProductionLineRequest{
			ProductID:         entities.ProductID(strings.TrimSpace(record[0])),
			RequestedQuantity: quantity,
		})
	}

	return lines, nil
}

// csvRow is one data record and the file line it starts on
type csvRow struct {
	line   int
	fields []string
}

// readRecords opens a CSV file, checks its header and returns the data rows.
// Comment lines are skipped but still counted in row line numbers.
func readRecords(filename, kind string, expectedHeader []string) ([]csvRow, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV line %d: expected %d columns, got %d", kind, line, len(expectedHeader), len(record))
		}
		rows = append(rows, csvRow{line: line, fields: record})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
