// Package config loads engine settings from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/tossequity/equity"
	"github.com/lox/tossequity/internal/pheval"
)

// Environment variable names that override the file.
const (
	EnvSeed      = "TOSS_SEED"
	EnvWorkers   = "TOSS_WORKERS"
	EnvEvaluator = "TOSS_EVALUATOR"
	EnvLogLevel  = "TOSS_LOG_LEVEL"
)

// Evaluator names.
const (
	EvaluatorNative     = "native"
	EvaluatorPaulHankin = "paulhankin"
)

// Config is the complete configuration.
type Config struct {
	LogLevel string       `hcl:"log_level,optional"`
	TimeBank string       `hcl:"time_bank,optional"`
	Engine   EngineConfig `hcl:"engine,block"`
}

// EngineConfig tunes the equity engine.
type EngineConfig struct {
	Evaluator            string       `hcl:"evaluator,optional"`
	Workers              int          `hcl:"workers,optional"`
	ParallelThreshold    int          `hcl:"parallel_threshold,optional"`
	Seed                 *int64       `hcl:"seed,optional"`
	DiscardIterations    int          `hcl:"discard_iterations,optional"`
	PreDiscardIterations int          `hcl:"pre_discard_iterations,optional"`
	FloorIterations      int          `hcl:"floor_iterations,optional"`
	Tiers                []TierConfig `hcl:"tier,block"`
}

// TierConfig is one time-keyed iteration level.
type TierConfig struct {
	Above      string `hcl:"above"`
	Iterations int    `hcl:"iterations"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TimeBank == "" {
		c.TimeBank = "30s"
	}
	e := &c.Engine
	if e.Evaluator == "" {
		e.Evaluator = EvaluatorNative
	}
	if e.Workers == 0 {
		e.Workers = 1
	}
	if e.ParallelThreshold == 0 {
		e.ParallelThreshold = equity.DefaultParallelThreshold
	}
	if e.DiscardIterations == 0 {
		e.DiscardIterations = equity.DefaultDiscardIterations
	}
	if e.PreDiscardIterations == 0 {
		e.PreDiscardIterations = equity.DefaultPreDiscardIterations
	}
	defaults := equity.DefaultTiers()
	if e.FloorIterations == 0 {
		e.FloorIterations = defaults.Floor
	}
	if len(e.Tiers) == 0 {
		for _, t := range defaults.Levels {
			e.Tiers = append(e.Tiers, TierConfig{Above: t.Above.String(), Iterations: t.Iterations})
		}
	}
}

// Load reads filename, applies environment overrides and fills the remaining
// zero values with defaults. A missing file means defaults only. A .env file
// in the working directory is loaded first if present.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := os.Stat(filename); filename != "" && !errors.Is(err, fs.ErrNotExist) {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, cfg)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	}

	// Defaults fill whatever neither the file nor the environment set, so a
	// zero from either source means the same thing.
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Engine.Seed = &seed
	}
	if s := os.Getenv(EnvWorkers); s != "" {
		workers, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvWorkers, err)
		}
		c.Engine.Workers = workers
	}
	if s := os.Getenv(EnvEvaluator); s != "" {
		c.Engine.Evaluator = s
	}
	if s := os.Getenv(EnvLogLevel); s != "" {
		c.LogLevel = s
	}
	return nil
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	e := c.Engine
	switch e.Evaluator {
	case EvaluatorNative, EvaluatorPaulHankin:
	default:
		return fmt.Errorf("unknown evaluator %q", e.Evaluator)
	}
	if e.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", e.Workers)
	}
	if e.ParallelThreshold < 0 {
		return fmt.Errorf("parallel_threshold must not be negative: %d", e.ParallelThreshold)
	}
	if e.DiscardIterations <= 0 || e.PreDiscardIterations <= 0 || e.FloorIterations <= 0 {
		return fmt.Errorf("iteration counts must be positive")
	}
	if _, err := c.Tiers(); err != nil {
		return err
	}
	if _, err := c.TimeBankDuration(); err != nil {
		return err
	}
	if _, err := c.ParseLogLevel(); err != nil {
		return err
	}
	return nil
}

// Tiers converts the tier blocks to engine tiers.
func (c *Config) Tiers() (equity.Tiers, error) {
	tiers := equity.Tiers{Floor: c.Engine.FloorIterations}
	for _, t := range c.Engine.Tiers {
		above, err := time.ParseDuration(t.Above)
		if err != nil {
			return equity.Tiers{}, fmt.Errorf("tier above %q: %w", t.Above, err)
		}
		if t.Iterations <= 0 {
			return equity.Tiers{}, fmt.Errorf("tier above %s: iterations must be positive", t.Above)
		}
		tiers.Levels = append(tiers.Levels, equity.Tier{Above: above, Iterations: t.Iterations})
	}
	return tiers, nil
}

// TimeBankDuration parses time_bank.
func (c *Config) TimeBankDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.TimeBank)
	if err != nil {
		return 0, fmt.Errorf("time_bank %q: %w", c.TimeBank, err)
	}
	return d, nil
}

// Evaluator returns the configured hand evaluator.
func (c *Config) Evaluator() (equity.Evaluator, error) {
	switch c.Engine.Evaluator {
	case EvaluatorNative:
		return equity.Native{}, nil
	case EvaluatorPaulHankin:
		return pheval.Evaluator{}, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", c.Engine.Evaluator)
	}
}

// EngineOptions translates the engine block into equity options.
func (c *Config) EngineOptions(logger *log.Logger) ([]equity.Option, error) {
	ev, err := c.Evaluator()
	if err != nil {
		return nil, err
	}
	tiers, err := c.Tiers()
	if err != nil {
		return nil, err
	}
	return []equity.Option{
		equity.WithEvaluator(ev),
		equity.WithLogger(logger),
		equity.WithWorkers(c.Engine.Workers),
		equity.WithParallelThreshold(c.Engine.ParallelThreshold),
		equity.WithPreDiscardIterations(c.Engine.PreDiscardIterations),
		equity.WithTiers(tiers),
	}, nil
}

// ParseLogLevel maps log_level onto a charmbracelet level.
func (c *Config) ParseLogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
