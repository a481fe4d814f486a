package repositories

import (
	"context"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// ProductionRepository is the production persistence API
type ProductionRepository interface {
	Save(ctx context.Context, production *entities.Production) error
	FindByID(ctx context.Context, id string) (*entities.Production, error)
	List(ctx context.Context) ([]*entities.Production, error)
}

// PurchaseSubmitter hands purchase drafts to the purchasing workflow
type PurchaseSubmitter interface {
	SubmitPurchase(ctx context.Context, draft *entities.PurchaseDraft) error
}
