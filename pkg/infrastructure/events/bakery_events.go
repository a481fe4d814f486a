package events

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

const (
	ProductionPlannedEvent       = "production.planned"
	ProductionStatusChangedEvent = "production.status_changed"

	ShortageIdentifiedEvent = "shortage.identified"

	PurchaseDraftedEvent   = "purchase.drafted"
	PurchaseSubmittedEvent = "purchase.submitted"
)

type ProductionPlanned struct {
	Production entities.Production `json:"production"`
	Feasible   bool                `json:"feasible"`
}

type ProductionStatusChanged struct {
	ProductionID string                    `json:"production_id"`
	From         entities.ProductionStatus `json:"from"`
	To           entities.ProductionStatus `json:"to"`
}

type ShortageIdentified struct {
	ProductionID string                  `json:"production_id"`
	Shortage     entities.ShortfallEntry `json:"shortage"`
}

type PurchaseDrafted struct {
	Draft entities.PurchaseDraft `json:"draft"`
}

type PurchaseSubmitted struct {
	Draft entities.PurchaseDraft `json:"draft"`
}

func NewProductionPlannedEvent(production entities.Production, feasible bool) Event {
	return NewEvent(ProductionPlannedEvent, production.ID, ProductionPlanned{
		Production: production,
		Feasible:   feasible,
	})
}

func NewProductionStatusChangedEvent(productionID string, from, to entities.ProductionStatus) Event {
	return NewEvent(ProductionStatusChangedEvent, productionID, ProductionStatusChanged{
		ProductionID: productionID,
		From:         from,
		To:           to,
	})
}

// NewShortageIdentifiedEvent is recorded on the ingredient's stream
func NewShortageIdentifiedEvent(productionID string, shortage entities.ShortfallEntry) Event {
	return NewEvent(
		ShortageIdentifiedEvent,
		string(shortage.IngredientID),
		ShortageIdentified{ProductionID: productionID, Shortage: shortage},
	)
}

func NewPurchaseDraftedEvent(draft entities.PurchaseDraft) Event {
	return NewEvent(PurchaseDraftedEvent, draft.ProductionID, PurchaseDrafted{Draft: draft})
}

func NewPurchaseSubmittedEvent(draft entities.PurchaseDraft) Event {
	return NewEvent(PurchaseSubmittedEvent, draft.ProductionID, PurchaseSubmitted{Draft: draft})
}

// AllEventTypes lists every event type the planner publishes
func AllEventTypes() []string {
	return []string{
		ProductionPlannedEvent,
		ProductionStatusChangedEvent,
		ShortageIdentifiedEvent,
		PurchaseDraftedEvent,
		PurchaseSubmittedEvent,
	}
}
