package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// ProductionRepository provides in-memory production storage
type ProductionRepository struct {
	mu          sync.RWMutex
	productions map[string]entities.Production
}

// NewProductionRepository creates a new in-memory production repository
func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{
		productions: make(map[string]entities.Production),
	}
}

// Verify interface compliance
var _ repositories.ProductionRepository = (*ProductionRepository)(nil)

// Save inserts or replaces a production
func (r *ProductionRepository) Save(ctx context.Context, production *entities.Production) error {
	if production == nil || production.ID == "" {
		return fmt.Errorf("production must have an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.productions[production.ID] = cloneProduction(*production)
	return nil
}

// FindByID returns a copy of the stored production
func (r *ProductionRepository) FindByID(ctx context.Context, id string) (*entities.Production, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	production, exists := r.productions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrProductionNotFound, id)
	}
	clone := cloneProduction(production)
	return &clone, nil
}

// List returns all productions, oldest first
func (r *ProductionRepository) List(ctx context.Context) ([]*entities.Production, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productions := make([]*entities.Production, 0, len(r.productions))
	for _, production := range r.productions {
		clone := cloneProduction(production)
		productions = append(productions, &clone)
	}
	sort.Slice(productions, func(i, j int) bool {
		if productions[i].CreatedAt.Equal(productions[j].CreatedAt) {
			return productions[i].ID < productions[j].ID
		}
		return productions[i].CreatedAt.Before(productions[j].CreatedAt)
	})
	return productions, nil
}

func cloneProduction(p entities.Production) entities.Production {
	p.LineItems = append([]entities.ProductionLineRequest(nil), p.LineItems...)
	if p.Shortfall != nil {
		p.Shortfall = append([]entities.ShortfallEntry(nil), p.Shortfall...)
	}
	return p
}

// PurchaseOutbox collects submitted purchase drafts in memory
type PurchaseOutbox struct {
	mu     sync.Mutex
	drafts []entities.PurchaseDraft
}

// NewPurchaseOutbox creates an empty outbox
func NewPurchaseOutbox() *PurchaseOutbox {
	return &PurchaseOutbox{}
}

// Verify interface compliance
var _ repositories.PurchaseSubmitter = (*PurchaseOutbox)(nil)

// SubmitPurchase records a draft
func (o *PurchaseOutbox) SubmitPurchase(ctx context.Context, draft *entities.PurchaseDraft) error {
	if draft == nil || len(draft.Lines) == 0 {
		return fmt.Errorf("purchase draft has no lines")
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.drafts = append(o.drafts, entities.PurchaseDraft{
		ProductionID: draft.ProductionID,
		Lines:        append([]entities.ShortfallEntry(nil), draft.Lines...),
	})
	return nil
}

// Submitted returns every draft received so far
func (o *PurchaseOutbox) Submitted() []entities.PurchaseDraft {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]entities.PurchaseDraft(nil), o.drafts...)
}
