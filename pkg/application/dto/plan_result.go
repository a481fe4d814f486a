package dto

import (
	"time"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// PlanRequest is one planning run's input
type PlanRequest struct {
	Lines   []entities.ProductionLineRequest
	Name    string
	DueDate time.Time
}

// PlanResult contains the complete output of a planning run
type PlanResult struct {
	Production       *entities.Production
	Demand           entities.AggregatedDemand
	Shortfall        []entities.ShortfallEntry
	Feasible         bool
	PurchaseDraft    *entities.PurchaseDraft
	ResolutionErrors []*entities.RecipeResolutionError
	DroppedLines     []*entities.InvalidQuantityError
	SnapshotTakenAt  time.Time
}

// HasIssues reports whether any line was dropped or failed to resolve
func (r *PlanResult) HasIssues() bool {
	return len(r.ResolutionErrors) > 0 || len(r.DroppedLines) > 0
}

// DemandLine is one ingredient total in a rendered plan
type DemandLine struct {
	IngredientID entities.IngredientID `json:"ingredient_id" yaml:"ingredient_id"`
	Required     entities.Quantity     `json:"required" yaml:"required"`
}

// LineIssue describes a request line that did not contribute to demand
type LineIssue struct {
	ProductID entities.ProductID `json:"product_id" yaml:"product_id"`
	Reason    string             `json:"reason" yaml:"reason"`
}

// PlanView is the serializable form of a PlanResult used by the CLI and HTTP API
type PlanView struct {
	Production      *entities.Production      `json:"production,omitempty" yaml:"production,omitempty"`
	Feasible        bool                      `json:"feasible" yaml:"feasible"`
	Demand          []DemandLine              `json:"demand" yaml:"demand"`
	Shortfall       []entities.ShortfallEntry `json:"shortfall" yaml:"shortfall"`
	PurchaseDraft   *entities.PurchaseDraft   `json:"purchase_draft" yaml:"purchase_draft"`
	Unresolved      []LineIssue               `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Dropped         []LineIssue               `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	SnapshotTakenAt time.Time                 `json:"snapshot_taken_at" yaml:"snapshot_taken_at"`
}

// View flattens the result into a stable, ordered shape
func (r *PlanResult) View() PlanView {
	view := PlanView{
		Production:      r.Production,
		Feasible:        r.Feasible,
		Demand:          make([]DemandLine, 0, len(r.Demand)),
		Shortfall:       r.Shortfall,
		PurchaseDraft:   r.PurchaseDraft,
		SnapshotTakenAt: r.SnapshotTakenAt,
	}
	if view.Shortfall == nil {
		view.Shortfall = []entities.ShortfallEntry{}
	}

	for _, id := range r.Demand.IngredientIDs() {
		view.Demand = append(view.Demand, DemandLine{IngredientID: id, Required: r.Demand[id]})
	}
	for _, failure := range r.ResolutionErrors {
		view.Unresolved = append(view.Unresolved, LineIssue{
			ProductID: failure.ProductID,
			Reason:    failure.Err.Error(),
		})
	}
	for _, dropped := range r.DroppedLines {
		view.Dropped = append(view.Dropped, LineIssue{
			ProductID: dropped.ProductID,
			Reason:    dropped.Error(),
		})
	}

	return view
}
