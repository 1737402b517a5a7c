package engine

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/sim"
)

const (
	StrategySampled    = "sampled"
	StrategyExhaustive = "exhaustive"
)

// Config controls how boards are simulated and which rules must hold before
// a level counts as complete.
type Config struct {
	// Simulation
	Strategy    string // "sampled" or "exhaustive" (default: sampled)
	Generations int    // Decision generations per leg (default: 4)
	Samples     int    // Walks per generation (default: 2)
	MaxHops     int    // Hop cap per walk; 0 derives it from Generations

	// Rules
	RequireEmptyHand   bool // Pieces left in the hand fail the rules (default: true)
	RequireNoHeldPiece bool // A piece being moved fails the rules (default: true)

	// Reporting
	ExportNets bool // Attach the merged nets to every Evaluation (default: false)
}

// DefaultConfig returns the configuration that reproduces the game.
func DefaultConfig() *Config {
	return &Config{
		Strategy:           StrategySampled,
		Generations:        sim.DefaultGenerations,
		Samples:            sim.DefaultSamplesPerGeneration,
		MaxHops:            0,
		RequireEmptyHand:   true,
		RequireNoHeldPiece: true,
		ExportNets:         false,
	}
}

// Validate checks the configuration and fills in defaults for zero values.
func (c *Config) Validate() error {
	if c.Strategy == "" {
		c.Strategy = StrategySampled
	}
	switch c.Strategy {
	case StrategySampled, StrategyExhaustive:
	default:
		return fmt.Errorf("engine: unknown strategy %q", c.Strategy)
	}

	if c.Generations < 1 {
		c.Generations = sim.DefaultGenerations
	}
	// Decisions are bits of an 8-bit generation counter.
	if c.Generations > 256 {
		return fmt.Errorf("engine: %d generations, at most 256", c.Generations)
	}
	if c.Samples < 1 {
		c.Samples = sim.DefaultSamplesPerGeneration
	}
	if c.MaxHops < 0 {
		return fmt.Errorf("engine: negative hop limit %d", c.MaxHops)
	}
	return nil
}

// Simulator returns the path-tracing strategy the configuration selects.
func (c *Config) Simulator() sim.Strategy {
	if c.Strategy == StrategyExhaustive {
		return sim.Exhaustive{}
	}
	return sim.Sampler{
		Generations: c.Generations,
		Samples:     c.Samples,
		MaxHops:     c.MaxHops,
	}
}
