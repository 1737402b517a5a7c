package sim

import (
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Leg is a path start just outside a terminal: the neighbor cell across the
// terminal's edge, entered through the facing edge.
type Leg struct {
	Source netlist.Node `json:"source"`
	Cell   board.Coord  `json:"cell"`
	Entry  piece.Edge   `json:"entry"`
}

func legAcross(src netlist.Node, c board.Coord, e piece.Edge) Leg {
	return Leg{Source: src, Cell: c.Step(e), Entry: e.Opposite()}
}

// Legs lists the path starts of every power piece and LED on b in row-major
// order. Power contributes one leg; each LED contributes its anode leg then
// its cathode leg. Ground is never a source.
func Legs(b *board.Board) []Leg {
	var legs []Leg
	b.Each(func(c board.Coord, t piece.Type) {
		switch t.Kind() {
		case piece.KindPower:
			for _, e := range piece.Connects(t, piece.Normal).Slice() {
				legs = append(legs, legAcross(netlist.VV, c, e))
			}
		case piece.KindLED:
			led, _ := t.IsLED()
			legs = append(legs,
				legAcross(netlist.Anode(led.Color), c, led.Anode),
				legAcross(netlist.Cathode(led.Color), c, led.Cathode),
			)
		}
	})
	return legs
}
