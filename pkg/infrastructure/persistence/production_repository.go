package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// GormProductionRepository implements ProductionRepository using GORM
type GormProductionRepository struct {
	db *gorm.DB
}

// NewGormProductionRepository creates a new GORM production repository
func NewGormProductionRepository(db *gorm.DB) *GormProductionRepository {
	return &GormProductionRepository{db: db}
}

var _ repositories.ProductionRepository = (*GormProductionRepository)(nil)

// Save upserts a production
func (r *GormProductionRepository) Save(ctx context.Context, production *entities.Production) error {
	model, err := productionToModel(production)
	if err != nil {
		return fmt.Errorf("failed to convert production to model: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save production: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a production by ID
func (r *GormProductionRepository) FindByID(ctx context.Context, id string) (*entities.Production, error) {
	var model ProductionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entities.ErrProductionNotFound, id)
		}
		return nil, fmt.Errorf("failed to find production: %w", result.Error)
	}

	return modelToProduction(&model)
}

// List returns all productions, oldest first
func (r *GormProductionRepository) List(ctx context.Context) ([]*entities.Production, error) {
	var models []ProductionModel
	if err := r.db.WithContext(ctx).Order("created_at").Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list productions: %w", err)
	}

	productions := make([]*entities.Production, 0, len(models))
	for i := range models {
		production, err := modelToProduction(&models[i])
		if err != nil {
			return nil, err
		}
		productions = append(productions, production)
	}
	return productions, nil
}

func productionToModel(production *entities.Production) (*ProductionModel, error) {
	lineItems, err := json.Marshal(production.LineItems)
	if err != nil {
		return nil, err
	}

	model := &ProductionModel{
		ID:        production.ID,
		Name:      production.Name,
		Status:    string(production.Status),
		LineItems: string(lineItems),
		CreatedAt: production.CreatedAt,
		DueDate:   production.DueDate,
	}

	if len(production.Shortfall) > 0 {
		shortfall, err := json.Marshal(production.Shortfall)
		if err != nil {
			return nil, err
		}
		model.Shortfall = string(shortfall)
	}

	return model, nil
}

func modelToProduction(model *ProductionModel) (*entities.Production, error) {
	status, err := entities.ParseProductionStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("production %s: %w", model.ID, err)
	}

	production := &entities.Production{
		ID:        model.ID,
		Name:      model.Name,
		Status:    status,
		CreatedAt: model.CreatedAt,
		DueDate:   model.DueDate,
	}

	if err := json.Unmarshal([]byte(model.LineItems), &production.LineItems); err != nil {
		return nil, fmt.Errorf("production %s: invalid line items: %w", model.ID, err)
	}
	if model.Shortfall != "" {
		if err := json.Unmarshal([]byte(model.Shortfall), &production.Shortfall); err != nil {
			return nil, fmt.Errorf("production %s: invalid shortfall: %w", model.ID, err)
		}
	}

	return production, nil
}

// GormPurchaseOutbox records submitted purchase drafts
type GormPurchaseOutbox struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormPurchaseOutbox creates a new GORM purchase outbox
func NewGormPurchaseOutbox(db *gorm.DB) *GormPurchaseOutbox {
	return &GormPurchaseOutbox{db: db, now: time.Now}
}

var _ repositories.PurchaseSubmitter = (*GormPurchaseOutbox)(nil)

// SubmitPurchase stores the draft for the purchasing workflow to pick up
func (o *GormPurchaseOutbox) SubmitPurchase(ctx context.Context, draft *entities.PurchaseDraft) error {
	if draft == nil || len(draft.Lines) == 0 {
		return fmt.Errorf("purchase draft has no lines")
	}

	lines, err := json.Marshal(draft.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode purchase lines: %w", err)
	}

	model := PurchaseDraftModel{
		ProductionID: draft.ProductionID,
		Lines:        string(lines),
		SubmittedAt:  o.now(),
	}
	if err := o.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to submit purchase: %w", err)
	}
	return nil
}

// Submitted returns the stored drafts, oldest first
func (o *GormPurchaseOutbox) Submitted(ctx context.Context) ([]entities.PurchaseDraft, error) {
	var models []PurchaseDraftModel
	if err := o.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	drafts := make([]entities.PurchaseDraft, 0, len(models))
	for _, model := range models {
		draft := entities.PurchaseDraft{ProductionID: model.ProductionID}
		if err := json.Unmarshal([]byte(model.Lines), &draft.Lines); err != nil {
			return nil, fmt.Errorf("purchase %d: invalid lines: %w", model.ID, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}
