// Package coarsening implements one coarsening step of a multilevel graph
// algorithm: size-constrained label propagation clustering, the derived
// coarse mapping, and graph contraction.
package coarsening

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Node ordering strategies for the propagation passes.
const (
	OrderingNatural = "natural"
	OrderingRandom  = "random"
	OrderingDegree  = "degree"
)

// Config manages algorithm configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Algorithm parameters
	v.SetDefault("coarsening.upper_bound_partition", 0.0)
	v.SetDefault("coarsening.label_iterations", 10)
	v.SetDefault("coarsening.node_ordering", OrderingRandom)
	v.SetDefault("coarsening.apply_partition", false)
	v.SetDefault("coarsening.early_termination", false)
	v.SetDefault("coarsening.random_seed", time.Now().UnixNano())

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.enable_progress", true)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for algorithm parameters
func (c *Config) UpperBoundPartition() float64 { return c.v.GetFloat64("coarsening.upper_bound_partition") }
func (c *Config) LabelIterations() int         { return c.v.GetInt("coarsening.label_iterations") }
func (c *Config) NodeOrdering() string         { return c.v.GetString("coarsening.node_ordering") }
func (c *Config) ApplyPartition() bool         { return c.v.GetBool("coarsening.apply_partition") }
func (c *Config) RandomSeed() int64            { return c.v.GetInt64("coarsening.random_seed") }

// EarlyTermination stops the propagation as soon as a pass makes zero moves.
// This changes the output versus the fixed-pass-count default, so it is off
// unless explicitly enabled.
func (c *Config) EarlyTermination() bool { return c.v.GetBool("coarsening.early_termination") }

func (c *Config) LogLevel() string     { return c.v.GetString("logging.level") }
func (c *Config) EnableProgress() bool { return c.v.GetBool("logging.enable_progress") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "coarsening").Logger()
}
