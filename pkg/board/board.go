// Package board holds the 5x5 grid of pieces and the pruning pass that strips
// pieces without enough connected neighbors.
package board

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

const (
	Rows  = 5
	Cols  = 5
	Cells = Rows * Cols
)

// Coord addresses a cell. Row 0 is the top of the board and Col 0 its left
// side.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// In reports whether c lies on the board.
func (c Coord) In() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Step returns the cell across edge e. The result may be off the board.
func (c Coord) Step(e piece.Edge) Coord {
	switch e {
	case piece.Top:
		return Coord{c.Row - 1, c.Col}
	case piece.Right:
		return Coord{c.Row, c.Col + 1}
	case piece.Bottom:
		return Coord{c.Row + 1, c.Col}
	case piece.Left:
		return Coord{c.Row, c.Col - 1}
	}
	return Coord{-1, -1}
}

// Board is a value type; copies are independent.
type Board [Rows][Cols]piece.Type

// At returns the piece at c, or Blank when c is off the board.
func (b *Board) At(c Coord) piece.Type {
	if !c.In() {
		return piece.Blank
	}
	return b[c.Row][c.Col]
}

// Set stores t at c. Coordinates off the board are ignored.
func (b *Board) Set(c Coord, t piece.Type) {
	if c.In() {
		b[c.Row][c.Col] = t
	}
}

// Each calls fn for every cell in row-major order.
func (b *Board) Each(fn func(c Coord, t piece.Type)) {
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			fn(Coord{r, col}, b[r][col])
		}
	}
}

// Find returns the first cell, in row-major order, whose piece matches.
func (b *Board) Find(match func(piece.Type) bool) (Coord, bool) {
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			if match(b[r][col]) {
				return Coord{r, col}, true
			}
		}
	}
	return Coord{}, false
}

// Resolved returns a copy with every placeholder replaced by its default
// orientation.
func (b Board) Resolved() Board {
	for r := range b {
		for c := range b[r] {
			b[r][c] = piece.Resolve(b[r][c])
		}
	}
	return b
}

// SwitchPosition reports the position of the switch on the board, or -1 when
// no switch is present.
func (b *Board) SwitchPosition() int {
	c, ok := b.Find(func(t piece.Type) bool { return t.Kind() == piece.KindSwitch })
	if !ok {
		return -1
	}
	return b.At(c).SwitchPosition()
}

// Empty reports whether every cell is blank.
func (b *Board) Empty() bool {
	_, ok := b.Find(func(t piece.Type) bool { return t != piece.Blank })
	return !ok
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			name := "."
			if t := b[r][c]; t != piece.Blank {
				name = t.String()
			}
			fmt.Fprintf(&sb, "%-16s", name)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
