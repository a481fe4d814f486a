package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/csv"
)

func newPlanCommand(opts *globalOptions) *cobra.Command {
	var (
		scenarioDir    string
		lineArgs       []string
		planFile       string
		name           string
		due            string
		save           bool
		submitPurchase bool
		strict         bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Check a production request against current stock",
		Long: `Aggregate ingredient demand for the requested products, compare it with one
stock snapshot and report the shortfall and purchase draft.

Lines come from --line flags, a --plan-file CSV, or the plan.csv of --scenario.
Without --scenario the configured database is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenarioDir != "" && save {
				return fmt.Errorf("--save needs the database backend and cannot be combined with --scenario")
			}

			var b *backend
			var err error
			if scenarioDir != "" {
				b, err = opts.openScenarioBackend(scenarioDir)
			} else {
				b, err = opts.openDatabaseBackend()
			}
			if err != nil {
				return err
			}
			defer b.Close()

			lines, err := parseLines(lineArgs)
			if err != nil {
				return err
			}
			if planFile != "" {
				fromFile, err := csv.NewLoader().LoadPlan(planFile)
				if err != nil {
					return err
				}
				lines = append(lines, fromFile...)
			}
			if len(lines) == 0 {
				lines = b.scenarioLines
			}
			if len(lines) == 0 {
				return fmt.Errorf("no production lines given: use --line, --plan-file or a scenario with %s", csv.PlanFile)
			}

			dueDate := opts.cfg.Planning.DueDate(time.Now())
			if due != "" {
				dueDate, err = time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid --due %q, expected YYYY-MM-DD: %w", due, err)
				}
			}

			req := dto.PlanRequest{Lines: lines, Name: name, DueDate: dueDate}

			var result *dto.PlanResult
			if save {
				result, err = b.service.CreatePlan(cmd.Context(), req)
			} else {
				result, err = b.service.Preview(cmd.Context(), req)
			}

			renderer, rerr := opts.renderer(cmd)
			if rerr != nil {
				return rerr
			}
			if err != nil {
				if errors.Is(err, entities.ErrNoPlannableLines) && result != nil {
					if rerr := renderer.RenderPlan(result); rerr != nil {
						return rerr
					}
				}
				return err
			}

			if err := renderer.RenderPlan(result); err != nil {
				return err
			}
			if strict && result.HasIssues() {
				return fmt.Errorf("%d of %d lines skipped and --strict is set",
					len(result.ResolutionErrors)+len(result.DroppedLines), len(lines))
			}

			if submitPurchase && result.PurchaseDraft != nil {
				if err := b.service.SubmitPurchase(cmd.Context(), result.PurchaseDraft); err != nil {
					return err
				}
				opts.logger.Info("purchase submitted", "lines", len(result.PurchaseDraft.Lines))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioDir, "scenario", "s", "", "Scenario directory with ingredients.csv, recipes.csv and optional plan.csv")
	cmd.Flags().StringArrayVarP(&lineArgs, "line", "l", nil, "Production line as product=quantity (repeatable)")
	cmd.Flags().StringVar(&planFile, "plan-file", "", "CSV file with product_id,quantity lines")
	cmd.Flags().StringVar(&name, "name", "", "Production name (default: prefix plus creation time)")
	cmd.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD (default: today plus planning.default_due_days)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the production in the database")
	cmd.Flags().BoolVar(&submitPurchase, "submit-purchase", false, "Submit the purchase draft when something is short")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any line is unknown or has a non-positive quantity")

	return cmd
}

// parseLines reads product=quantity pairs
func parseLines(args []string) ([]entities.ProductionLineRequest, error) {
	lines := make([]entities.ProductionLineRequest, 0, len(args))
	for _, arg := range args {
		product, quantity, ok := strings.Cut(arg, "=")
		product = strings.TrimSpace(product)
		if !ok || product == "" {
			return nil, fmt.Errorf("invalid line %q, expected product=quantity", arg)
		}
		qty, err := entities.NewQuantity(strings.TrimSpace(quantity))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in line %q: %w", arg, err)
		}
		lines = append(lines, entities.ProductionLineRequest{
			ProductID:         entities.ProductID(product),
			RequestedQuantity: qty,
		})
	}
	return lines, nil
}
