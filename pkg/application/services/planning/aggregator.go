package planning

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// RequirementAggregator multiplies recipes out by requested quantities and
// sums the result per ingredient
type RequirementAggregator struct{}

// NewRequirementAggregator creates a new requirement aggregator
func NewRequirementAggregator() *RequirementAggregator {
	return &RequirementAggregator{}
}

// Aggregate computes the total demand of every line whose recipe resolves.
// Lines whose recipe cannot be resolved are reported and contribute nothing.
// Lines with a non-positive quantity are skipped.
func (a *RequirementAggregator) Aggregate(
	lines []entities.ProductionLineRequest,
	catalog repositories.RecipeCatalog,
) (entities.AggregatedDemand, []*entities.RecipeResolutionError) {
	demand, _, failures := a.aggregate(lines, catalog)
	return demand, failures
}

// aggregate also returns the lines that contributed to demand
func (a *RequirementAggregator) aggregate(
	lines []entities.ProductionLineRequest,
	catalog repositories.RecipeCatalog,
) (entities.AggregatedDemand, []entities.ProductionLineRequest, []*entities.RecipeResolutionError) {
	demand := make(entities.AggregatedDemand)
	resolved := make([]entities.ProductionLineRequest, 0, len(lines))
	var failures []*entities.RecipeResolutionError

	for _, line := range lines {
		if !line.RequestedQuantity.IsPositive() {
			continue
		}

		recipe, err := catalog.Resolve(line.ProductID)
		if err != nil {
			failures = append(failures, &entities.RecipeResolutionError{
				ProductID: line.ProductID,
				Err:       err,
			})
			continue
		}

		for _, item := range recipe.Items {
			demand.Add(item.IngredientID, item.QuantityPerUnit.Mul(line.RequestedQuantity))
		}
		resolved = append(resolved, line)
	}

	return demand, resolved, failures
}
