package planning

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// PurchaseOrderGenerator drafts the purchase that covers a shortfall
type PurchaseOrderGenerator struct{}

// NewPurchaseOrderGenerator creates a new purchase order generator
func NewPurchaseOrderGenerator() *PurchaseOrderGenerator {
	return &PurchaseOrderGenerator{}
}

// Generate returns nil when nothing is missing. Otherwise it returns one line
// per short ingredient whose quantity is exactly the missing amount.
func (g *PurchaseOrderGenerator) Generate(shortfall []entities.ShortfallEntry) *entities.PurchaseDraft {
	lines := make([]entities.ShortfallEntry, 0, len(shortfall))
	for _, entry := range shortfall {
		if entry.IsShort() {
			lines = append(lines, entry)
		}
	}

	if len(lines) == 0 {
		return nil
	}

	return &entities.PurchaseDraft{Lines: lines}
}
