// SPDX-License-Identifier: MIT

// Package config loads recipe files for the quaso command.
//
// A recipe file is YAML:
//
//	recipe:
//	  name: lentil spread
//	  ingredients:
//	    - name: cooked lentils
//	      amount: 0.63
//	    - name: coconut fat
//	    - name: smoked sea salt
//	      amount: 0.016
//	chain:
//	  iterations: 100000
//	  thinning: 1000
//	  seed: 42
//	  replicates: 4
//
// Ingredients without an amount are unknown. Values resolve in the order
// defaults → file → QUASO_* environment → command-line flags (applied by the
// caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/quaso/hitrun"
	"github.com/katalvlaran/quaso/mixture"
	"github.com/katalvlaran/quaso/polytope"
)

// ErrInvalidConfig reports a file that parses but cannot describe a run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// File is the top-level layout of a recipe file.
type File struct {
	Recipe RecipeConfig `yaml:"recipe"`
	Chain  ChainConfig  `yaml:"chain"`
}

// RecipeConfig names a dish and lists its ingredients, most abundant first.
type RecipeConfig struct {
	Name        string             `yaml:"name"`
	Ingredients []IngredientConfig `yaml:"ingredients"`
}

// IngredientConfig is one label line. A nil Amount means unknown.
type IngredientConfig struct {
	Name   string   `yaml:"name"`
	Amount *float64 `yaml:"amount,omitempty"`
}

// ChainConfig holds the sampler settings. Zero Thinning derives the stride
// from Iterations; a nil Seed seeds from the clock.
type ChainConfig struct {
	Iterations int     `yaml:"iterations"`
	Thinning   int     `yaml:"thinning"`
	Seed       *uint64 `yaml:"seed,omitempty"`
	Replicates int     `yaml:"replicates"`
}

// Default returns a File with an empty recipe and default chain settings.
func Default() File {
	return File{
		Chain: ChainConfig{
			Iterations: hitrun.DefaultIterations,
			Replicates: mixture.DefaultReplicates,
		},
	}
}

// Load reads path, applies QUASO_* environment overrides and validates the
// result. A malformed override is an ErrInvalidConfig, not a silent default.
func Load(path string) (File, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read recipe file: %w", err)
	}
	if err = Parse(data, &cfg); err != nil {
		return cfg, err
	}
	if err = loadFromEnv(&cfg); err != nil {
		return cfg, err
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document does not set.
func Parse(data []byte, cfg *File) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse recipe file: %w", err)
	}

	return nil
}

func loadFromEnv(cfg *File) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"QUASO_ITERATIONS", &cfg.Chain.Iterations},
		{"QUASO_THINNING", &cfg.Chain.Thinning},
		{"QUASO_REPLICATES", &cfg.Chain.Replicates},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, e.key, v)
		}
		*e.dst = i
	}
	if v := os.Getenv("QUASO_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: QUASO_SEED=%q is not an unsigned integer", ErrInvalidConfig, v)
		}
		cfg.Chain.Seed = &s
	}

	return nil
}

// Validate checks the settings that option constructors would otherwise
// panic on. Amount ranges are left to mixture.Estimate.
func (f File) Validate() error {
	if len(f.Recipe.Ingredients) == 0 {
		return fmt.Errorf("%w: recipe has no ingredients", ErrInvalidConfig)
	}
	if f.Chain.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1", ErrInvalidConfig)
	}
	if f.Chain.Thinning < 0 {
		return fmt.Errorf("%w: thinning must be >= 0", ErrInvalidConfig)
	}
	if f.Chain.Replicates < 1 {
		return fmt.Errorf("%w: replicates must be >= 1", ErrInvalidConfig)
	}

	return nil
}

// ToRecipe converts the file into a mixture.Recipe.
func (f File) ToRecipe() mixture.Recipe {
	names := make([]string, len(f.Recipe.Ingredients))
	amounts := make([]*float64, len(f.Recipe.Ingredients))
	for i, ing := range f.Recipe.Ingredients {
		names[i] = ing.Name
		amounts[i] = ing.Amount
	}

	return mixture.Recipe{
		Name:        f.Recipe.Name,
		Ingredients: names,
		Given:       polytope.FromPointers(amounts),
	}
}

// ToOptions converts the chain settings into mixture options. Validate must
// have passed.
func (f File) ToOptions() []mixture.Option {
	chain := []hitrun.Option{hitrun.WithIterations(f.Chain.Iterations)}
	if f.Chain.Thinning > 0 {
		chain = append(chain, hitrun.WithThinning(f.Chain.Thinning))
	}
	if f.Chain.Seed != nil {
		chain = append(chain, hitrun.WithSeed(*f.Chain.Seed))
	}

	return []mixture.Option{
		mixture.WithChain(chain...),
		mixture.WithReplicates(f.Chain.Replicates),
	}
}
