package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vsinha/bakeplan/pkg/infrastructure/config"
	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
	"github.com/vsinha/bakeplan/pkg/interfaces/cli/output"
)

// globalOptions holds the persistent flags and what PersistentPreRunE builds from them
type globalOptions struct {
	configPath string
	format     string
	noColor    bool
	verbose    bool

	cfg    *config.Config
	logger *logging.Logger
}

func (o *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	return output.NewRenderer(cmd.OutOrStdout(), o.format)
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "bakeplan",
		Short: "Plan bakery production runs against ingredient stock",
		Long: `bakeplan turns a production request into ingredient demand, checks it
against current stock and drafts a purchase order for whatever is missing.

Examples:
  bakeplan plan --scenario example/bakery
  bakeplan plan --line cunape=100 --line torta=4 --save
  bakeplan seed --scenario example/bakery
  bakeplan productions list
  bakeplan productions revalidate <production-id>
  bakeplan serve`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}

			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.Logging.Level = string(logging.LevelDebug)
			}

			opts.cfg = cfg
			opts.logger = logging.New(cfg.Logging.LoggerConfig())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return opts.logger.Close()
			}
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to config file (default: bakeplan.yaml in ., ./configs or /etc/bakeplan)")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", output.FormatText,
		"Output format: text, json, yaml, csv")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false,
		"Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(newPlanCommand(opts))
	rootCmd.AddCommand(newProductionsCommand(opts))
	rootCmd.AddCommand(newSeedCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
