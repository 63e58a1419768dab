package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"water-rates/internal/config"
	"water-rates/internal/model"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Validate a scenario's tier schedule and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return errors.New("--config is required")
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		v := model.ValidateTiers(config.ToModelTiers(cfg.Scenario.Tiers))
		if v.Valid {
			fmt.Println("tier schedule OK")
		} else {
			fmt.Printf("tier schedule INVALID: %s\n", v.Message)
			fmt.Println("fallback schedule:")
		}
		for i, t := range v.Tiers.Tiers {
			if t.Unbounded() {
				fmt.Printf("  %d: %.2f+ kgal @ $%.4f\n", i+1, t.Lower, t.Price)
			} else {
				fmt.Printf("  %d: %.2f-%.2f kgal @ $%.4f\n", i+1, t.Lower, t.Upper, t.Price)
			}
		}
		return nil
	},
}
