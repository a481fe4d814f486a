package entities

import "sort"

// ProductionLineRequest is a user's request to produce a quantity of a product
type ProductionLineRequest struct {
	ProductID         ProductID `json:"product_id" yaml:"product_id"`
	RequestedQuantity Quantity  `json:"requested_quantity" yaml:"requested_quantity"`
}

// AggregatedDemand maps each ingredient to its total required quantity
// across every product in a plan. It is derived and never persisted.
type AggregatedDemand map[IngredientID]Quantity

// Add accumulates quantity into the running total for an ingredient
func (d AggregatedDemand) Add(id IngredientID, quantity Quantity) {
	if current, ok := d[id]; ok {
		d[id] = current.Add(quantity)
		return
	}
	d[id] = quantity
}

// Required returns the total required for an ingredient, zero if absent
func (d AggregatedDemand) Required(id IngredientID) Quantity {
	if quantity, ok := d[id]; ok {
		return quantity
	}
	return ZeroQuantity
}

// Merge returns a new demand summing d and other per ingredient
func (d AggregatedDemand) Merge(other AggregatedDemand) AggregatedDemand {
	merged := make(AggregatedDemand, len(d)+len(other))
	for id, quantity := range d {
		merged.Add(id, quantity)
	}
	for id, quantity := range other {
		merged.Add(id, quantity)
	}
	return merged
}

// Equal compares two demands by numeric value, so "15" equals "15.0"
func (d AggregatedDemand) Equal(other AggregatedDemand) bool {
	if len(d) != len(other) {
		return false
	}
	for id, quantity := range d {
		theirs, ok := other[id]
		if !ok || !quantity.Equal(theirs) {
			return false
		}
	}
	return true
}

// IngredientIDs returns the ingredients in the demand in ascending order
func (d AggregatedDemand) IngredientIDs() []IngredientID {
	ids := make([]IngredientID, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// ShortfallEntry records how much of an ingredient is missing for a plan
type ShortfallEntry struct {
	IngredientID IngredientID `json:"ingredient_id" yaml:"ingredient_id"`
	Required     Quantity     `json:"required" yaml:"required"`
	Available    Quantity     `json:"available" yaml:"available"`
	Missing      Quantity     `json:"missing" yaml:"missing"`
}

// NewShortfallEntry derives missing = max(0, required - available)
func NewShortfallEntry(id IngredientID, required, available Quantity) ShortfallEntry {
	missing := required.Sub(available)
	if missing.IsNegative() {
		missing = ZeroQuantity
	}
	return ShortfallEntry{
		IngredientID: id,
		Required:     required,
		Available:    available,
		Missing:      missing,
	}
}

// IsShort reports whether anything is missing
func (e ShortfallEntry) IsShort() bool {
	return e.Missing.IsPositive()
}
