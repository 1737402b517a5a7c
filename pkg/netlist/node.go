package netlist

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Node is a circuit terminal.
type Node uint8

const (
	VV Node = iota // power supply
	GND            // ground, written "00"
	RA
	RC
	YA
	YC
	GA
	GC
)

// NodeCount is the number of terminals.
const NodeCount = 8

var nodeNames = [NodeCount]string{"VV", "00", "RA", "RC", "YA", "YC", "GA", "GC"}

func (n Node) String() string {
	if int(n) < NodeCount {
		return nodeNames[n]
	}
	return fmt.Sprintf("Node(%d)", n)
}

// ParseNode looks up a node by its two-letter name.
func ParseNode(s string) (Node, error) {
	for i, name := range nodeNames {
		if name == s {
			return Node(i), nil
		}
	}
	return 0, fmt.Errorf("netlist: unknown node %q", s)
}

// Anode returns the anode terminal of the LED of color c.
func Anode(c piece.Color) Node {
	return RA + Node(2*c)
}

// Cathode returns the cathode terminal of the LED of color c.
func Cathode(c piece.Color) Node {
	return RC + Node(2*c)
}
