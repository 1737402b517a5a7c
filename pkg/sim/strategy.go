package sim

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

const (
	DefaultGenerations          = 4
	DefaultSamplesPerGeneration = 2
)

// Strategy traces every path from one leg and records the terminals reached
// in m.
type Strategy interface {
	Trace(b *board.Board, leg Leg, m *netlist.Matrix)
}

// Sampler replays single walks under a DecisionSource: Samples walks per
// generation over Generations generations. The bit cursor is not rewound
// between the walks of one generation.
type Sampler struct {
	Generations int
	Samples     int
	MaxHops     int // zero picks HopLimit(Generations)
}

// DefaultSampler returns the four generation, two sample configuration.
func DefaultSampler() Sampler {
	return Sampler{
		Generations: DefaultGenerations,
		Samples:     DefaultSamplesPerGeneration,
	}
}

// Trace implements Strategy.
func (s Sampler) Trace(b *board.Board, leg Leg, m *netlist.Matrix) {
	hops := s.MaxHops
	if hops <= 0 {
		hops = HopLimit(s.Generations)
	}
	var d DecisionSource
	d.Init()
	for g := 0; g < s.Generations; g++ {
		for i := 0; i < s.Samples; i++ {
			dest := SimulateElectron(b, leg.Source, leg.Cell, leg.Entry, &d, hops)
			m.Connect(leg.Source, dest)
		}
		d.Next()
	}
}

func (s Sampler) String() string {
	return fmt.Sprintf("sampled(%dx%d)", s.Generations, s.Samples)
}

// Exhaustive follows both exits of every T-piece, visiting each (cell, entry
// edge) state at most once per leg. It finds every terminal a walk could
// reach under some sequence of decisions.
type Exhaustive struct{}

type state struct {
	cell  board.Coord
	entry piece.Edge
}

// Trace implements Strategy.
func (Exhaustive) Trace(b *board.Board, leg Leg, m *netlist.Matrix) {
	visited := mapset.New[state]()
	stack := []state{{leg.Cell, leg.Entry}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !cur.cell.In() || visited.Has(cur) {
			continue
		}
		visited.Put(cur)

		t := b.At(cur.cell)
		if node, done := terminal(t, cur.entry); done {
			if node != nil {
				m.Connect(leg.Source, *node)
			}
			continue
		}

		var exits []piece.Edge
		if t.Kind() == piece.KindTee {
			for _, decision := range []bool{true, false} {
				if out, ok := piece.Branch(t, cur.entry, decision); ok {
					exits = append(exits, out)
				}
			}
		} else if out, ok := piece.Route(t, cur.entry); ok {
			exits = append(exits, out)
		}
		for _, out := range exits {
			stack = append(stack, state{cur.cell.Step(out), out.Opposite()})
		}
	}
}

func (Exhaustive) String() string {
	return "exhaustive"
}

// SimulateAllPaths traces one leg with the default sampler.
func SimulateAllPaths(b *board.Board, leg Leg, m *netlist.Matrix) {
	DefaultSampler().Trace(b, leg, m)
}

// Simulate traces every leg of a pruned board and returns the resulting
// matrix. A nil strategy uses the default sampler.
func Simulate(b *board.Board, s Strategy) netlist.Matrix {
	var m netlist.Matrix
	for _, leg := range Legs(b) {
		if s == nil {
			SimulateAllPaths(b, leg, &m)
			continue
		}
		s.Trace(b, leg, &m)
	}
	return m
}
