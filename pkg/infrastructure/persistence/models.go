package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientModel represents the ingredients table
type IngredientModel struct {
	ID           string          `gorm:"column:id;primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Unit         string          `gorm:"column:unit;not null"`
	CurrentStock decimal.Decimal `gorm:"column:current_stock;type:text;not null"` // exact decimal as text
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (IngredientModel) TableName() string {
	return "ingredients"
}

// RecipeItemModel represents one line of a product recipe
type RecipeItemModel struct {
	ProductID       string          `gorm:"column:product_id;primaryKey"`
	Position        int             `gorm:"column:position;primaryKey"`
	IngredientID    string          `gorm:"column:ingredient_id;not null;index"`
	QuantityPerUnit decimal.Decimal `gorm:"column:quantity_per_unit;type:text;not null"`
}

func (RecipeItemModel) TableName() string {
	return "recipe_items"
}

// ProductionModel represents the productions table
type ProductionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Status    string    `gorm:"column:status;not null;index"`
	LineItems string    `gorm:"column:line_items;type:text;not null"` // JSON array as text
	Shortfall string    `gorm:"column:shortfall;type:text"`           // JSON array as text
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	DueDate   time.Time `gorm:"column:due_date"`
}

func (ProductionModel) TableName() string {
	return "productions"
}

// PurchaseDraftModel represents a submitted purchase draft
type PurchaseDraftModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProductionID string    `gorm:"column:production_id;index"`
	Lines        string    `gorm:"column:lines;type:text;not null"` // JSON array as text
	SubmittedAt  time.Time `gorm:"column:submitted_at;not null"`
}

func (PurchaseDraftModel) TableName() string {
	return "purchase_drafts"
}

// AllModels lists every model for auto-migration
func AllModels() []any {
	return []any{
		&IngredientModel{},
		&RecipeItemModel{},
		&ProductionModel{},
		&PurchaseDraftModel{},
	}
}
