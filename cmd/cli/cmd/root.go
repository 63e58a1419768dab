// Package cmd provides the CLI commands for water-rates.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"water-rates/internal/logging"
)

var (
	cfgFile string
	verbose bool
	log     *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "water-rates",
	Short: "Model how tiered water rates move usage and revenue",
	Long: `water-rates models how a tiered utility-rate schedule affects
per-customer water usage and provider revenue under a
price-elasticity-of-demand assumption.

Examples:
  water-rates evaluate --config examples/scenario.yaml
  water-rates simulate --config examples/scenario.yaml --out results/population.csv
  water-rates tiers --config examples/scenario.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		log = logging.New(level, true)
	},
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to scenario YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(tiersCmd)
}
