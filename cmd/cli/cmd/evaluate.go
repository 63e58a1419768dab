package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"water-rates/internal/config"
	"water-rates/internal/demand"
	"water-rates/internal/model"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run a single-point demand evaluation for one scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return errors.New("--config is required")
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		res := demand.Evaluate(cfg.Scenario.ToModelInputs())
		printResult(cfg.Scenario.Name, res)
		return nil
	},
}

func printResult(name string, res model.DemandResult) {
	if name != "" {
		fmt.Printf("Scenario: %s\n", name)
	}
	if !res.TiersValid {
		log.Warn("tier schedule rejected, using flat fallback",
			zap.String("reason", res.ValidationMessage))
	}
	fmt.Printf("Usage per connection: %.3f kgal", res.UsagePerConnection)
	if res.UsageP5 != nil && res.UsageP95 != nil {
		fmt.Printf("  (P5 %.3f / P95 %.3f)", *res.UsageP5, *res.UsageP95)
	}
	fmt.Println()
	fmt.Printf("Marginal $%.4f  Average $%.4f  Perceived $%.4f per kgal\n",
		res.MarginalPrice, res.AveragePrice, res.PerceivedPrice)
	fmt.Printf("Bill per connection: $%.2f", res.BillPerConnection)
	if res.BillP5 != nil && res.BillP95 != nil {
		fmt.Printf("  (P5 $%.2f / P95 $%.2f)", *res.BillP5, *res.BillP95)
	}
	fmt.Println()
	fmt.Printf("System usage: %.3f MG   Revenue: $%.2f\n", res.UsageVolumeMG, res.Revenue)
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}
