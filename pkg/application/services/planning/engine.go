package planning

import (
	"fmt"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/domain/services"
)

// EngineConfig holds configuration for the planning engine
type EngineConfig struct {
	// RequireKnownIngredients fails resolution of any recipe that uses an
	// ingredient missing from the snapshot
	RequireKnownIngredients bool
	// NamePrefix is used for productions created without a name
	NamePrefix string
}

// DefaultEngineConfig returns the configuration used by the CLI and API
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RequireKnownIngredients: true,
		NamePrefix:              DefaultNamePrefix,
	}
}

// Evaluation is the outcome of demand aggregation and the feasibility check
type Evaluation struct {
	// Lines that contributed to demand, in request order
	Lines            []entities.ProductionLineRequest
	Demand           entities.AggregatedDemand
	Shortfall        []entities.ShortfallEntry
	Feasible         bool
	ResolutionErrors []*entities.RecipeResolutionError
	DroppedLines     []*entities.InvalidQuantityError
}

// Engine runs the planning pipeline over materialized inputs. It performs no I/O.
type Engine struct {
	config     EngineConfig
	aggregator *RequirementAggregator
	checker    *FeasibilityChecker
	builder    *ProductionOrderBuilder
	generator  *PurchaseOrderGenerator
	validator  *services.RecipeValidator
}

// NewEngine creates a planning engine
func NewEngine(config EngineConfig, opts ...BuilderOption) *Engine {
	builderOpts := append([]BuilderOption{WithNamePrefix(config.NamePrefix)}, opts...)
	return &Engine{
		config:     config,
		aggregator: NewRequirementAggregator(),
		checker:    NewFeasibilityChecker(),
		builder:    NewProductionOrderBuilder(builderOpts...),
		generator:  NewPurchaseOrderGenerator(),
		validator:  services.NewRecipeValidator(),
	}
}

// Evaluate drops invalid lines, aggregates demand and checks it against the snapshot
func (e *Engine) Evaluate(
	lines []entities.ProductionLineRequest,
	catalog repositories.RecipeCatalog,
	snapshot *entities.StockSnapshot,
) *Evaluation {
	valid, dropped := partitionLines(lines)

	if e.config.RequireKnownIngredients {
		catalog = &ledgerBoundCatalog{
			catalog:   catalog,
			snapshot:  snapshot,
			validator: e.validator,
		}
	}

	demand, resolved, failures := e.aggregator.aggregate(valid, catalog)
	shortfall, feasible := e.checker.Check(demand, snapshot)

	return &Evaluation{
		Lines:            resolved,
		Demand:           demand,
		Shortfall:        shortfall,
		Feasible:         feasible,
		ResolutionErrors: failures,
		DroppedLines:     dropped,
	}
}

// Run evaluates the request and builds the production and purchase draft.
// When no line survives, the partial result is returned with ErrNoPlannableLines.
func (e *Engine) Run(
	req dto.PlanRequest,
	catalog repositories.RecipeCatalog,
	snapshot *entities.StockSnapshot,
) (*dto.PlanResult, error) {
	eval := e.Evaluate(req.Lines, catalog, snapshot)

	result := &dto.PlanResult{
		Demand:           eval.Demand,
		Shortfall:        eval.Shortfall,
		Feasible:         eval.Feasible,
		ResolutionErrors: eval.ResolutionErrors,
		DroppedLines:     eval.DroppedLines,
	}
	if snapshot != nil {
		result.SnapshotTakenAt = snapshot.TakenAt
	}

	if len(eval.Lines) == 0 {
		return result, entities.ErrNoPlannableLines
	}

	result.Production = e.builder.Build(eval.Lines, eval.Shortfall, eval.Feasible, ProductionMetadata{
		Name:    req.Name,
		DueDate: req.DueDate,
	})

	if draft := e.generator.Generate(eval.Shortfall); draft != nil {
		draft.ProductionID = result.Production.ID
		result.PurchaseDraft = draft
	}

	return result, nil
}

// partitionLines drops lines with a non-positive quantity and merges duplicate
// products additively, keeping first-seen order
func partitionLines(lines []entities.ProductionLineRequest) ([]entities.ProductionLineRequest, []*entities.InvalidQuantityError) {
	var dropped []*entities.InvalidQuantityError
	merged := make([]entities.ProductionLineRequest, 0, len(lines))
	index := make(map[entities.ProductID]int, len(lines))

	for _, line := range lines {
		if !line.RequestedQuantity.IsPositive() {
			dropped = append(dropped, &entities.InvalidQuantityError{
				ProductID: line.ProductID,
				Quantity:  line.RequestedQuantity,
			})
			continue
		}

		if i, ok := index[line.ProductID]; ok {
			merged[i].RequestedQuantity = merged[i].RequestedQuantity.Add(line.RequestedQuantity)
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged, dropped
}

// ledgerBoundCatalog rejects recipes that reference ingredients the ledger does not track
type ledgerBoundCatalog struct {
	catalog   repositories.RecipeCatalog
	snapshot  *entities.StockSnapshot
	validator *services.RecipeValidator
}

func (c *ledgerBoundCatalog) Resolve(productID entities.ProductID) (*entities.Recipe, error) {
	recipe, err := c.catalog.Resolve(productID)
	if err != nil {
		return nil, err
	}

	result := c.validator.ValidateReferences(recipe, c.snapshot)
	if !result.IsValid() {
		return nil, fmt.Errorf("%w: %v", entities.ErrUnknownIngredient, result.UnknownIngredients)
	}

	return recipe, nil
}
