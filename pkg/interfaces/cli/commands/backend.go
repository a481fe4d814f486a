package commands

import (
	"fmt"

	"github.com/vsinha/bakeplan/pkg/application/services/planning"
	"github.com/vsinha/bakeplan/pkg/application/services/production"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/domain/services"
	"github.com/vsinha/bakeplan/pkg/infrastructure/database"
	"github.com/vsinha/bakeplan/pkg/infrastructure/events"
	"github.com/vsinha/bakeplan/pkg/infrastructure/persistence"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
)

// backend is a fully wired production service plus the stores behind it
type backend struct {
	service     *production.Service
	recipes     *persistence.GormRecipeRepository
	ingredients *persistence.GormIngredientRepository
	// lines from plan.csv when the backend came from a scenario directory
	scenarioLines []entities.ProductionLineRequest
	events        *events.InMemoryEventStore
	close         func() error
}

// Close waits for pending event handlers and releases the store
func (b *backend) Close() error {
	b.events.Wait()
	return b.close()
}

func (o *globalOptions) newService(
	recipes repositories.RecipeRepository,
	ledger repositories.IngredientLedger,
	productions repositories.ProductionRepository,
	purchases repositories.PurchaseSubmitter,
) (*production.Service, *events.InMemoryEventStore) {
	engine := planning.NewEngine(o.cfg.Planning.EngineConfig())
	planner := planning.NewPlanner(engine, recipes, ledger, o.logger)

	store := events.NewInMemoryEventStore(o.logger)
	audit := o.logger.WithComponent("events")
	_ = store.Subscribe(events.AllEventTypes(), &events.HandlerFunc{
		Types: events.AllEventTypes(),
		Fn: func(e events.Event) error {
			audit.Debug("event", "type", e.Type(), "stream", e.StreamID())
			return nil
		},
	})

	return production.NewService(planner, productions, purchases, store, o.logger), store
}

// openDatabaseBackend connects to the configured database and migrates it
func (o *globalOptions) openDatabaseBackend() (*backend, error) {
	db, err := database.NewConnection(&o.cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	recipes := persistence.NewGormRecipeRepository(db)
	ingredients := persistence.NewGormIngredientRepository(db)

	service, store := o.newService(recipes, ingredients,
		persistence.NewGormProductionRepository(db),
		persistence.NewGormPurchaseOutbox(db))

	return &backend{
		service:     service,
		events:      store,
		recipes:     recipes,
		ingredients: ingredients,
		close:       func() error { return database.Close(db) },
	}, nil
}

// openScenarioBackend loads a CSV scenario directory into memory
func (o *globalOptions) openScenarioBackend(dir string) (*backend, error) {
	scenario, err := csv.NewLoader().LoadScenario(dir)
	if err != nil {
		return nil, err
	}

	if result := services.NewRecipeValidator().ValidateCatalog(scenario.Recipes); !result.IsValid() {
		return nil, fmt.Errorf("recipes in %s: %w", dir, result.Err())
	}

	recipes := memory.NewRecipeRepository(len(scenario.Recipes))
	if err := recipes.LoadRecipes(scenario.Recipes); err != nil {
		return nil, err
	}
	ledger := memory.NewIngredientLedger()
	if err := ledger.LoadIngredients(scenario.Ingredients); err != nil {
		return nil, err
	}

	service, store := o.newService(recipes, ledger,
		memory.NewProductionRepository(),
		memory.NewPurchaseOutbox())

	return &backend{
		service:       service,
		events:        store,
		scenarioLines: scenario.Lines,
		close:         func() error { return nil },
	}, nil
}
