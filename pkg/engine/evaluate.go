package engine

import (
	"fmt"
	"io"
	"log"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/sim"
)

// Status is the part of the player's state that is not on the board.
type Status struct {
	Held      bool // a piece is picked up
	HandEmpty bool // every hand slot is blank
}

// Evaluation is the result of one pass over a board.
type Evaluation struct {
	Pruned board.Board
	Stats  board.PruneStats
	Matrix netlist.Matrix
	Short  bool
	Key    netlist.Key
	LEDs   oracle.LEDs

	// SwitchPosition is read from the board before pruning; -1 when no
	// switch is present.
	SwitchPosition int
	// StrictClean is true when the strict prune left the board unchanged.
	StrictClean bool
	MeetsRules  bool

	// Goal is filled by Check.
	Goal *goal.Result
	// Nets is filled when Config.ExportNets is set.
	Nets *netlist.Nets
}

// Complete reports whether the goal check ran and found the level solved.
func (ev *Evaluation) Complete() bool {
	return ev.Goal != nil && ev.Goal.Complete
}

func (ev *Evaluation) String() string {
	return fmt.Sprintf("key=%s short=%t leds=%s switch=%d rules=%t",
		ev.Key, ev.Short, ev.LEDs, ev.SwitchPosition, ev.MeetsRules)
}

// Evaluator runs the prune, simulate, pack and lookup pipeline. It holds no
// per-board state and is safe for concurrent use.
type Evaluator struct {
	cfg      *Config
	table    oracle.Table
	strategy sim.Strategy
	logger   *log.Logger
}

// NewEvaluator validates cfg and builds an evaluator. A nil cfg uses
// DefaultConfig, a nil table the embedded oracle and a nil logger discards
// output.
func NewEvaluator(cfg *Config, table oracle.Table, logger *log.Logger) (*Evaluator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		table = oracle.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Evaluator{
		cfg:      cfg,
		table:    table,
		strategy: cfg.Simulator(),
		logger:   logger,
	}, nil
}

// Config returns the validated configuration.
func (e *Evaluator) Config() *Config {
	return e.cfg
}

// Evaluate scores b. Placeholders on b are resolved first; b itself is not
// modified.
func (e *Evaluator) Evaluate(b board.Board, st Status) *Evaluation {
	b = b.Resolved()

	pruned, stats := board.PruneWithStats(b, piece.Normal)
	m := sim.Simulate(&pruned, e.strategy)

	ev := &Evaluation{
		Pruned:         pruned,
		Stats:          stats,
		Matrix:         m,
		Short:          m.ShortCircuit(),
		Key:            m.Pack(),
		SwitchPosition: b.SwitchPosition(),
	}
	ev.LEDs = e.table.Lookup(ev.Key)

	_, strict := board.PruneWithStats(b, piece.MeetsRules)
	ev.StrictClean = strict.Changes() == 0
	ev.MeetsRules = e.input(ev, st).RulesMet()

	if e.cfg.ExportNets {
		ev.Nets = netlist.NewNets(m)
	}

	e.logger.Printf("engine: %s removed=%d degraded=%d", ev, stats.Removed, stats.Degenerated)
	return ev
}

// Check evaluates b and compares it against g, updating tr.
func (e *Evaluator) Check(b board.Board, st Status, g *goal.Goal, tr *goal.Tracker) *Evaluation {
	ev := e.Evaluate(b, st)
	res := tr.Evaluate(g, e.input(ev, st))
	ev.Goal = &res
	if res.Complete {
		e.logger.Printf("engine: level complete (key=%s)", ev.Key)
	}
	return ev
}

func (e *Evaluator) input(ev *Evaluation, st Status) goal.Input {
	return goal.Input{
		LEDs:           ev.LEDs,
		Short:          ev.Short,
		HandEmpty:      st.HandEmpty || !e.cfg.RequireEmptyHand,
		Held:           st.Held && e.cfg.RequireNoHeldPiece,
		PruneClean:     ev.StrictClean,
		SwitchPosition: ev.SwitchPosition,
	}
}
