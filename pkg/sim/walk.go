package sim

import (
	"math/bits"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// statesPerPhase is the number of distinct (cell, entry edge) states a walk
// can pass through without repeating.
const statesPerPhase = board.Cells * 4

// HopLimit returns the longest walk that can still end at a terminal when
// branch choices come from the given number of generations. Between two
// decisions a walk either ends within statesPerPhase hops or cycles forever,
// and once the generation bits are used up every decision is false.
//
// For the default four generations this is 300, above the 255 hops an 8-bit
// counter allows, so every walk that fits a byte-sized hop budget still
// completes.
func HopLimit(generations int) int {
	if generations < 1 {
		generations = 1
	}
	return statesPerPhase * (bits.Len(uint(generations-1)) + 1)
}

// DefaultHopLimit is HopLimit for the default four generations.
var DefaultHopLimit = HopLimit(DefaultGenerations)

// SimulateElectron follows one path through b. The path enters the cell at
// start through its entry edge and moves until it reaches a terminal, leaves
// the board, meets a blank, blocker or dead end, or exceeds maxHops. It
// returns the terminal reached, or src when the path ends anywhere else.
// T-pieces take their exit from d. A maxHops of zero or less uses
// DefaultHopLimit.
func SimulateElectron(b *board.Board, src netlist.Node, start board.Coord, entry piece.Edge, d Decider, maxHops int) netlist.Node {
	if maxHops <= 0 {
		maxHops = DefaultHopLimit
	}
	at, in := start, entry
	for hop := 0; hop < maxHops && at.In(); hop++ {
		t := b.At(at)
		if node, done := terminal(t, in); done {
			if node == nil {
				return src
			}
			return *node
		}

		var (
			out piece.Edge
			ok  bool
		)
		if t.Kind() == piece.KindTee {
			out, ok = piece.Branch(t, in, d.Decide())
		} else {
			out, ok = piece.Route(t, in)
		}
		if !ok {
			return src
		}
		at, in = at.Step(out), out.Opposite()
	}
	return src
}

// terminal reports whether t stops a path entering through in. When it does
// and the entry matches one of its terminals, the terminal node is returned.
func terminal(t piece.Type, in piece.Edge) (*netlist.Node, bool) {
	var n netlist.Node
	switch t.Kind() {
	case piece.KindPower:
		if !piece.Presents(t, in, piece.Normal) {
			return nil, true
		}
		n = netlist.VV
	case piece.KindGround:
		if !piece.Presents(t, in, piece.Normal) {
			return nil, true
		}
		n = netlist.GND
	case piece.KindLED:
		led, _ := t.IsLED()
		switch in {
		case led.Anode:
			n = netlist.Anode(led.Color)
		case led.Cathode:
			n = netlist.Cathode(led.Color)
		default:
			return nil, true
		}
	default:
		return nil, false
	}
	return &n, true
}
