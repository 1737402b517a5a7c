package piece

import (
	"fmt"
	"math/bits"
	"strings"
)

// Edge identifies one side of a board cell.
type Edge uint8

const (
	Top Edge = iota
	Right
	Bottom
	Left

	// NoEdge marks a missing route or branch.
	NoEdge Edge = 0xFF
)

// Edges lists the four sides in clockwise order starting at Top.
var Edges = [4]Edge{Top, Right, Bottom, Left}

var edgeNames = map[Edge]string{
	Top:    "T",
	Right:  "R",
	Bottom: "B",
	Left:   "L",
	NoEdge: "-",
}

func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Edge(%d)", e)
}

// Opposite returns the side facing e on the neighboring cell.
func (e Edge) Opposite() Edge {
	if e > Left {
		return NoEdge
	}
	return (e + 2) % 4
}

// Clockwise returns the side e moves to when its piece is turned a quarter
// turn clockwise.
func (e Edge) Clockwise() Edge {
	if e > Left {
		return NoEdge
	}
	return (e + 1) % 4
}

// EdgeSet is a bitmask of edges.
type EdgeSet uint8

// AllEdges has every side set.
const AllEdges EdgeSet = 0x0F

// SetOf builds a set from individual edges.
func SetOf(edges ...Edge) EdgeSet {
	var s EdgeSet
	for _, e := range edges {
		s = s.With(e)
	}
	return s
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool {
	if e > Left {
		return false
	}
	return s&(1<<e) != 0
}

// With returns the set plus e.
func (s EdgeSet) With(e Edge) EdgeSet {
	if e > Left {
		return s
	}
	return s | 1<<e
}

// Without returns the set minus e.
func (s EdgeSet) Without(e Edge) EdgeSet {
	if e > Left {
		return s
	}
	return s &^ (1 << e)
}

// Count returns the number of edges in the set.
func (s EdgeSet) Count() int {
	return bits.OnesCount8(uint8(s & AllEdges))
}

// Slice returns the members in Top, Right, Bottom, Left order.
func (s EdgeSet) Slice() []Edge {
	out := make([]Edge, 0, 4)
	for _, e := range Edges {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Clockwise rotates every member a quarter turn.
func (s EdgeSet) Clockwise() EdgeSet {
	var out EdgeSet
	for _, e := range s.Slice() {
		out = out.With(e.Clockwise())
	}
	return out
}

func (s EdgeSet) String() string {
	var b strings.Builder
	for _, e := range s.Slice() {
		b.WriteString(e.String())
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}
