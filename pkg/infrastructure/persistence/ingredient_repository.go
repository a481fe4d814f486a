package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// GormIngredientRepository is a database-backed ingredient ledger
type GormIngredientRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormIngredientRepository creates a new GORM ingredient repository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db, now: time.Now}
}

var _ repositories.IngredientStore = (*GormIngredientRepository)(nil)

// SaveIngredient upserts an ingredient
func (r *GormIngredientRepository) SaveIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	if _, err := entities.NewIngredient(ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.CurrentStock); err != nil {
		return err
	}

	model := IngredientModel{
		ID:           string(ingredient.ID),
		Name:         ingredient.Name,
		Unit:         ingredient.Unit,
		CurrentStock: ingredient.CurrentStock,
		UpdatedAt:    r.now(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save ingredient %s: %w", ingredient.ID, result.Error)
	}
	return nil
}

// Snapshot reads every ingredient in one query
func (r *GormIngredientRepository) Snapshot(ctx context.Context) (*entities.StockSnapshot, error) {
	var models []IngredientModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}

	ingredients := make([]entities.Ingredient, 0, len(models))
	for _, model := range models {
		ingredients = append(ingredients, entities.Ingredient{
			ID:           entities.IngredientID(model.ID),
			Name:         model.Name,
			Unit:         model.Unit,
			CurrentStock: model.CurrentStock,
		})
	}

	return entities.NewStockSnapshot(r.now(), ingredients), nil
}
