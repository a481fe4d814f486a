package entities

// PurchaseDraft is the minimal purchase request covering a shortfall.
// It is handed to the purchasing workflow and never persisted by the planner.
type PurchaseDraft struct {
	ProductionID string           `json:"production_id,omitempty" yaml:"production_id,omitempty"`
	Lines        []ShortfallEntry `json:"lines" yaml:"lines"`
}

// QuantityFor returns the quantity to purchase for an ingredient, zero if not in the draft
func (d *PurchaseDraft) QuantityFor(id IngredientID) Quantity {
	if d == nil {
		return ZeroQuantity
	}
	for _, line := range d.Lines {
		if line.IngredientID == id {
			return line.Missing
		}
	}
	return ZeroQuantity
}
