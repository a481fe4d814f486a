package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func newProductionsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "productions",
		Aliases: []string{"production", "prod"},
		Short:   "Inspect and manage stored productions",
	}

	cmd.AddCommand(newProductionsListCommand(opts))
	cmd.AddCommand(newProductionsShowCommand(opts))
	cmd.AddCommand(newProductionsRevalidateCommand(opts))
	cmd.AddCommand(newProductionsTransitionCommand(opts, "cancel", "Cancel a pending or in-progress production", entities.Cancelled))
	cmd.AddCommand(newProductionsTransitionCommand(opts, "complete", "Mark an in-progress production as completed", entities.Completed))

	return cmd
}

func newProductionsListCommand(opts *globalOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored productions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter entities.ProductionStatus
			if status != "" {
				parsed, err := entities.ParseProductionStatus(status)
				if err != nil {
					return err
				}
				filter = parsed
			}

			b, err := opts.openDatabaseBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			productions, err := b.service.List(cmd.Context())
			if err != nil {
				return err
			}
			if filter != "" {
				kept := productions[:0]
				for _, p := range productions {
					if p.Status == filter {
						kept = append(kept, p)
					}
				}
				productions = kept
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderProductions(productions)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show productions with this status")
	return cmd
}

func newProductionsShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <production-id>",
		Short: "Show one production with its lines and last shortfall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.openDatabaseBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			found, err := b.service.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderProduction(found)
		},
	}
}

func newProductionsRevalidateCommand(opts *globalOptions) *cobra.Command {
	var submitPurchase bool

	cmd := &cobra.Command{
		Use:   "revalidate <production-id>",
		Short: "Re-check a pending production against current stock",
		Long: `Take a fresh stock snapshot and re-run the feasibility check for a pending
production. It is promoted to in-progress when nothing is short.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.openDatabaseBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			result, err := b.service.Revalidate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			if err := renderer.RenderRevalidation(result); err != nil {
				return err
			}

			if submitPurchase && result.PurchaseDraft != nil {
				return b.service.SubmitPurchase(cmd.Context(), result.PurchaseDraft)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&submitPurchase, "submit-purchase", false, "Submit the new purchase draft if still short")
	return cmd
}

func newProductionsTransitionCommand(opts *globalOptions, use, short string, next entities.ProductionStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <production-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.openDatabaseBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			var updated *entities.Production
			if next == entities.Cancelled {
				updated, err = b.service.Cancel(cmd.Context(), args[0])
			} else {
				updated, err = b.service.Complete(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderProduction(updated)
		},
	}
}
