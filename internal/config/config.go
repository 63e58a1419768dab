package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"water-rates/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	// Optional: load the tier schedule from a separate YAML (e.g.
	// examples/schedules/*.yaml). Inline Scenario.Tiers override it.
	TiersFile string         `yaml:"tiers_file"`
	Scenario  ScenarioConfig `yaml:"scenario"`
}

// ScenarioConfig holds one scenario's rate and demand inputs.
type ScenarioConfig struct {
	Name         string          `yaml:"name"`
	Connections  int             `yaml:"connections"`
	Elasticity   float64         `yaml:"elasticity"`
	BaseFee      float64         `yaml:"base_fee"`
	Alpha        float64         `yaml:"alpha"`
	BillSalience float64         `yaml:"bill_salience"`
	UsageSigma   float64         `yaml:"usage_sigma"`
	SampleSize   int             `yaml:"sample_size"`
	Seed         uint64          `yaml:"seed"`
	Baseline     *BaselineConfig `yaml:"baseline"`
	Tiers        []TierConfig    `yaml:"tiers"`
}

// BaselineConfig is a frozen baseline anchor.
type BaselineConfig struct {
	Usage          float64 `yaml:"usage"`
	PerceivedPrice float64 `yaml:"perceived_price"`
}

// TierConfig is one price band. Omitting upper marks the open-ended top
// tier.
type TierConfig struct {
	Lower float64  `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
	Price float64  `yaml:"price"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If tiers_file is set, load it; inline tiers take precedence.
	if c.TiersFile != "" && len(c.Scenario.Tiers) == 0 {
		tiersPath := c.TiersFile
		if !filepath.IsAbs(tiersPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to cwd-relative.
			cand := filepath.Join(filepath.Dir(path), tiersPath)
			if _, err := os.Stat(cand); err == nil {
				tiersPath = cand
			}
		}
		tiers, err := loadTiersFile(tiersPath)
		if err != nil {
			return nil, err
		}
		c.Scenario.Tiers = tiers
	}
	return &c, nil
}

// Validate rejects scenarios the engine can't even start on. Tier
// invariant violations are deliberately NOT rejected here: the engine
// degrades to its fallback schedule and reports the reason, which the CLI
// surfaces as a warning.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	s := c.Scenario
	if len(s.Tiers) == 0 {
		return errors.New("scenario.tiers is required (inline or via tiers_file)")
	}
	if s.Connections < 0 {
		return fmt.Errorf("scenario.connections must be >= 0, got %d", s.Connections)
	}
	if s.SampleSize < 0 {
		return fmt.Errorf("scenario.sample_size must be >= 0, got %d", s.SampleSize)
	}
	return nil
}

// ToModelInputs maps the scenario onto engine inputs. Scalar coercion is
// the engine's job; this is a pure shape change.
func (s ScenarioConfig) ToModelInputs() model.DemandInputs {
	in := model.DemandInputs{
		Connections:  s.Connections,
		Elasticity:   s.Elasticity,
		BaseFee:      s.BaseFee,
		Alpha:        s.Alpha,
		BillSalience: s.BillSalience,
		Tiers:        ToModelTiers(s.Tiers),
	}
	if s.Baseline != nil {
		in.Baseline = &model.BaselineAnchor{
			Usage:          s.Baseline.Usage,
			PerceivedPrice: s.Baseline.PerceivedPrice,
		}
	}
	return in
}

// ToModelTiers converts config tiers, mapping a missing upper bound to the
// open-ended marker.
func ToModelTiers(tiers []TierConfig) []model.Tier {
	out := make([]model.Tier, len(tiers))
	for i, t := range tiers {
		upper := math.Inf(1)
		if t.Upper != nil {
			upper = *t.Upper
		}
		out[i] = model.Tier{Lower: t.Lower, Upper: upper, Price: t.Price}
	}
	return out
}

type tiersFileWrapper struct {
	Tiers []TierConfig `yaml:"tiers"`
}

func loadTiersFile(path string) ([]TierConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w tiersFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Tiers, nil
}
