package planning

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// FeasibilityChecker compares demand against one stock snapshot
type FeasibilityChecker struct{}

// NewFeasibilityChecker creates a new feasibility checker
func NewFeasibilityChecker() *FeasibilityChecker {
	return &FeasibilityChecker{}
}

// Check returns the shortfall entries, ordered by ingredient, and whether the
// plan can run. An ingredient the snapshot does not know is treated as having
// nothing in stock. The plan is feasible exactly when the shortfall is empty.
func (c *FeasibilityChecker) Check(
	demand entities.AggregatedDemand,
	snapshot *entities.StockSnapshot,
) ([]entities.ShortfallEntry, bool) {
	shortfall := make([]entities.ShortfallEntry, 0)

	for _, id := range demand.IngredientIDs() {
		entry := entities.NewShortfallEntry(id, demand[id], snapshot.Available(id))
		if entry.IsShort() {
			shortfall = append(shortfall, entry)
		}
	}

	return shortfall, len(shortfall) == 0
}
