package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
)

// Planner loads recipes and a stock snapshot, then runs the engine over them
type Planner struct {
	engine  *Engine
	recipes repositories.RecipeRepository
	ledger  repositories.IngredientLedger
	logger  *logging.Logger
}

// NewPlanner creates a planner. A nil logger discards output.
func NewPlanner(
	engine *Engine,
	recipes repositories.RecipeRepository,
	ledger repositories.IngredientLedger,
	logger *logging.Logger,
) *Planner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Planner{
		engine:  engine,
		recipes: recipes,
		ledger:  ledger,
		logger:  logger.WithComponent("planner"),
	}
}

// Materialize reads the recipe catalog and takes one stock snapshot.
// A snapshot failure is reported as a LedgerUnavailableError.
func (p *Planner) Materialize(ctx context.Context) (*entities.RecipeBook, *entities.StockSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	recipes, err := p.recipes.ListRecipes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	snapshot, err := p.ledger.Snapshot(ctx)
	if err != nil {
		return nil, nil, &entities.LedgerUnavailableError{Err: err}
	}
	if snapshot == nil {
		return nil, nil, &entities.LedgerUnavailableError{Err: errors.New("ledger returned no snapshot")}
	}

	return entities.NewRecipeBook(recipes), snapshot, nil
}

// Plan runs one planning pass. Nothing is persisted.
func (p *Planner) Plan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResult, error) {
	p.logger.Debug("planning started", "lines", len(req.Lines))

	catalog, snapshot, err := p.Materialize(ctx)
	if err != nil {
		p.logger.Error("planning aborted", "error", err)
		return nil, err
	}

	result, err := p.engine.Run(req, catalog, snapshot)

	for _, failure := range result.ResolutionErrors {
		p.logger.Warn("recipe resolution failed", "product", failure.ProductID, "error", failure.Err)
	}
	for _, dropped := range result.DroppedLines {
		p.logger.Warn("line dropped", "product", dropped.ProductID, "quantity", dropped.Quantity.String())
	}

	if err != nil {
		p.logger.Warn("no plannable lines", "requested", len(req.Lines))
		return result, err
	}

	p.logger.Info("plan evaluated",
		"production", result.Production.ID,
		"status", result.Production.Status.String(),
		"ingredients", len(result.Demand),
		"short", len(result.Shortfall),
	)

	return result, nil
}

// Recheck evaluates existing production lines against a fresh snapshot
func (p *Planner) Recheck(ctx context.Context, lines []entities.ProductionLineRequest) (*Evaluation, error) {
	catalog, snapshot, err := p.Materialize(ctx)
	if err != nil {
		return nil, err
	}
	return p.engine.Evaluate(lines, catalog, snapshot), nil
}
