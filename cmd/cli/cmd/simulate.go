package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"water-rates/internal/config"
	"water-rates/internal/export"
	"water-rates/internal/montecarlo"
)

var simulateOut string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo population simulation for one scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return errors.New("--config is required")
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		s := cfg.Scenario

		size := s.SampleSize
		if size <= 0 {
			size = montecarlo.DefaultSampleSize
		}
		var draws montecarlo.Draws
		if s.Seed != 0 {
			draws = montecarlo.GenerateDrawsSeeded(size, s.Seed)
		} else {
			draws = montecarlo.GenerateDraws(size)
		}
		log.Debug("generated draws", zap.Int("size", size), zap.Uint64("seed", s.Seed))

		sim := montecarlo.Run(montecarlo.Params{
			Inputs:     s.ToModelInputs(),
			Draws:      draws,
			UsageSigma: s.UsageSigma,
		})
		printResult(s.Name, sim.Result)

		if simulateOut != "" {
			if err := os.MkdirAll(filepath.Dir(simulateOut), 0o755); err != nil {
				return err
			}
			if err := export.WritePopulationCSV(simulateOut, sim.Population); err != nil {
				return fmt.Errorf("write population csv: %w", err)
			}
			fmt.Printf("Wrote %d rows to %s\n", len(sim.Population.Usages), simulateOut)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateOut, "out", "", "optional path for per-individual CSV")
}
