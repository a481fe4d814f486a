package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/bakeplan/pkg/domain/services"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/csv"
)

func newSeedCommand(opts *globalOptions) *cobra.Command {
	var scenarioDir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load ingredients and recipes from a scenario directory into the database",
		Long: `Read ingredients.csv and recipes.csv from a scenario directory, validate the
recipes and upsert everything into the configured database. Existing
ingredients have their stock replaced and existing recipes are overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := csv.NewLoader().LoadScenario(scenarioDir)
			if err != nil {
				return err
			}

			if result := services.NewRecipeValidator().ValidateCatalog(scenario.Recipes); !result.IsValid() {
				return fmt.Errorf("recipes in %s are invalid: %w", scenarioDir, result.Err())
			}

			b, err := opts.openDatabaseBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			ctx := cmd.Context()
			for _, ingredient := range scenario.Ingredients {
				if err := b.ingredients.SaveIngredient(ctx, ingredient); err != nil {
					return err
				}
			}
			for _, recipe := range scenario.Recipes {
				if err := b.recipes.SaveRecipe(ctx, recipe); err != nil {
					return err
				}
			}

			opts.logger.Info("scenario seeded",
				"dir", scenarioDir,
				"ingredients", len(scenario.Ingredients),
				"recipes", len(scenario.Recipes),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d ingredients and %d recipes from %s\n",
				len(scenario.Ingredients), len(scenario.Recipes), scenarioDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioDir, "scenario", "s", "", "Scenario directory with ingredients.csv and recipes.csv")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
