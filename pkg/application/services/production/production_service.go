package production

import (
	"context"
	"fmt"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/application/services/planning"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/infrastructure/events"
	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
)

// RevalidationResult is the outcome of re-checking a pending production
type RevalidationResult struct {
	Production *entities.Production      `json:"production" yaml:"production"`
	Feasible   bool                      `json:"feasible" yaml:"feasible"`
	Promoted   bool                      `json:"promoted" yaml:"promoted"`
	Shortfall  []entities.ShortfallEntry `json:"shortfall" yaml:"shortfall"`
	// PurchaseDraft is nil when the production was promoted
	PurchaseDraft   *entities.PurchaseDraft `json:"purchase_draft" yaml:"purchase_draft"`
	UnresolvedLines []dto.LineIssue         `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// Service persists plans and manages the lifecycle of stored productions
type Service struct {
	planner     *planning.Planner
	generator   *planning.PurchaseOrderGenerator
	productions repositories.ProductionRepository
	purchases   repositories.PurchaseSubmitter
	eventStore  events.EventStore
	logger      *logging.Logger
}

// NewService creates a production service. eventStore and logger may be nil.
func NewService(
	planner *planning.Planner,
	productions repositories.ProductionRepository,
	purchases repositories.PurchaseSubmitter,
	eventStore events.EventStore,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		planner:     planner,
		generator:   planning.NewPurchaseOrderGenerator(),
		productions: productions,
		purchases:   purchases,
		eventStore:  eventStore,
		logger:      logger.WithComponent("production"),
	}
}

// Preview runs the planner without storing anything
func (s *Service) Preview(ctx context.Context, req dto.PlanRequest) (*dto.PlanResult, error) {
	return s.planner.Plan(ctx, req)
}

// CreatePlan runs the planner and stores the resulting production
func (s *Service) CreatePlan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResult, error) {
	result, err := s.planner.Plan(ctx, req)
	if err != nil {
		return result, err
	}

	if err := s.productions.Save(ctx, result.Production); err != nil {
		return nil, fmt.Errorf("failed to save production: %w", err)
	}

	s.publish(events.NewProductionPlannedEvent(*result.Production, result.Feasible))
	s.publishShortfall(result.Production.ID, result.Shortfall, result.PurchaseDraft)

	return result, nil
}

// Get returns a stored production
func (s *Service) Get(ctx context.Context, id string) (*entities.Production, error) {
	return s.productions.FindByID(ctx, id)
}

// List returns all stored productions
func (s *Service) List(ctx context.Context) ([]*entities.Production, error) {
	return s.productions.List(ctx)
}

// Revalidate checks a pending production against a fresh stock snapshot.
// It is promoted to InProgress only when every line resolves and nothing is short;
// otherwise it stays Pending with the new shortfall and a fresh purchase draft.
func (s *Service) Revalidate(ctx context.Context, id string) (*RevalidationResult, error) {
	production, err := s.productions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if production.Status != entities.Pending {
		return nil, fmt.Errorf("%w: only pending productions can be revalidated, %s is %s",
			entities.ErrInvalidTransition, id, production.Status)
	}

	eval, err := s.planner.Recheck(ctx, production.LineItems)
	if err != nil {
		return nil, err
	}

	result := &RevalidationResult{
		Production: production,
		Feasible:   eval.Feasible && len(eval.ResolutionErrors) == 0,
		Shortfall:  eval.Shortfall,
	}
	for _, failure := range eval.ResolutionErrors {
		result.UnresolvedLines = append(result.UnresolvedLines, dto.LineIssue{
			ProductID: failure.ProductID,
			Reason:    failure.Err.Error(),
		})
	}

	if result.Feasible {
		if err := production.TransitionTo(entities.InProgress); err != nil {
			return nil, err
		}
		production.Shortfall = nil
		result.Promoted = true
	} else {
		production.Shortfall = eval.Shortfall
		if draft := s.generator.Generate(eval.Shortfall); draft != nil {
			draft.ProductionID = production.ID
			result.PurchaseDraft = draft
		}
	}

	if err := s.productions.Save(ctx, production); err != nil {
		return nil, fmt.Errorf("failed to save production: %w", err)
	}

	if result.Promoted {
		s.publish(events.NewProductionStatusChangedEvent(production.ID, entities.Pending, entities.InProgress))
		s.logger.Info("production promoted", "production", production.ID)
	} else {
		s.publishShortfall(production.ID, eval.Shortfall, result.PurchaseDraft)
		s.logger.Info("production still pending", "production", production.ID, "short", len(eval.Shortfall))
	}

	return result, nil
}

// Cancel moves a production to Cancelled
func (s *Service) Cancel(ctx context.Context, id string) (*entities.Production, error) {
	return s.transition(ctx, id, entities.Cancelled)
}

// Complete moves an in-progress production to Completed
func (s *Service) Complete(ctx context.Context, id string) (*entities.Production, error) {
	return s.transition(ctx, id, entities.Completed)
}

// SubmitPurchase hands a draft to the purchasing workflow
func (s *Service) SubmitPurchase(ctx context.Context, draft *entities.PurchaseDraft) error {
	if draft == nil || len(draft.Lines) == 0 {
		return fmt.Errorf("nothing to purchase")
	}
	if err := s.purchases.SubmitPurchase(ctx, draft); err != nil {
		return fmt.Errorf("failed to submit purchase: %w", err)
	}
	s.publish(events.NewPurchaseSubmittedEvent(*draft))
	return nil
}

func (s *Service) transition(ctx context.Context, id string, next entities.ProductionStatus) (*entities.Production, error) {
	production, err := s.productions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := production.Status
	if err := production.TransitionTo(next); err != nil {
		return nil, err
	}

	if err := s.productions.Save(ctx, production); err != nil {
		return nil, fmt.Errorf("failed to save production: %w", err)
	}

	s.publish(events.NewProductionStatusChangedEvent(production.ID, from, next))
	return production, nil
}

func (s *Service) publishShortfall(productionID string, shortfall []entities.ShortfallEntry, draft *entities.PurchaseDraft) {
	for _, entry := range shortfall {
		s.publish(events.NewShortageIdentifiedEvent(productionID, entry))
	}
	if draft != nil {
		s.publish(events.NewPurchaseDraftedEvent(*draft))
	}
}

func (s *Service) publish(event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to publish event", "type", event.Type(), "error", err)
	}
}
