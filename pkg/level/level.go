// Package level loads puzzle levels: the initial board layout, the goal
// table and the pieces dealt to the player's hand.
package level

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// ErrInvalid wraps every structural problem found while building a level.
var ErrInvalid = errors.New("level: invalid level")

const (
	HandRows = 2
	HandCols = 5
	HandSize = HandRows * HandCols
)

// Hand is the 2x5 tray of pieces not yet on the board.
type Hand [HandRows][HandCols]piece.Type

// Empty reports whether every slot is blank.
func (h *Hand) Empty() bool {
	return h.Count() == 0
}

// Count returns the number of occupied slots.
func (h *Hand) Count() int {
	n := 0
	for _, row := range h {
		for _, t := range row {
			if t != piece.Blank {
				n++
			}
		}
	}
	return n
}

// Free returns the first blank slot in row-major order.
func (h *Hand) Free() (board.Coord, bool) {
	for r := range h {
		for c := range h[r] {
			if h[r][c] == piece.Blank {
				return board.Coord{Row: r, Col: c}, true
			}
		}
	}
	return board.Coord{}, false
}

// In reports whether c addresses a hand slot.
func (h *Hand) In(c board.Coord) bool {
	return c.Row >= 0 && c.Row < HandRows && c.Col >= 0 && c.Col < HandCols
}

// Resolved returns a copy with placeholders turned to their default
// orientation.
func (h Hand) Resolved() Hand {
	for r := range h {
		for c := range h[r] {
			h[r][c] = piece.Resolve(h[r][c])
		}
	}
	return h
}

// Lock says what the player may do with a cell of the initial layout.
type Lock uint8

const (
	// Free cells were empty in the layout.
	Free Lock = iota
	// Rotatable cells started as an unknown-rotation piece. They can be
	// turned but not picked up.
	Rotatable
	// Locked cells can be neither turned nor picked up.
	Locked
)

func (l Lock) String() string {
	switch l {
	case Free:
		return "free"
	case Rotatable:
		return "rotatable"
	case Locked:
		return "locked"
	}
	return fmt.Sprintf("Lock(%d)", l)
}

// Level is one puzzle. Layout and Hand keep placeholders as written; use
// Board and DealtHand for the playable state.
type Level struct {
	Number int
	Layout board.Board
	Goal   goal.Goal
	Hand   Hand
}

// Board returns the initial board with placeholders resolved.
func (l *Level) Board() board.Board {
	return l.Layout.Resolved()
}

// DealtHand returns the initial hand with placeholders resolved.
func (l *Level) DealtHand() Hand {
	return l.Hand.Resolved()
}

// Lock returns the lock state of cell c.
func (l *Level) Lock(c board.Coord) Lock {
	t := l.Layout.At(c)
	switch {
	case t == piece.Blank:
		return Free
	case t.Unknown():
		return Rotatable
	default:
		return Locked
	}
}

// HasSwitch reports whether the goal is switched.
func (l *Level) HasSwitch() bool {
	return l.Goal.HasSwitch()
}

// Pieces returns the number of pieces on the initial board and in the hand.
func (l *Level) Pieces() int {
	n := l.Hand.Count()
	l.Layout.Each(func(_ board.Coord, t piece.Type) {
		if t != piece.Blank {
			n++
		}
	})
	return n
}

// Build converts every parsed block into a Level.
func (f *File) Build() ([]*Level, error) {
	levels := make([]*Level, 0, len(f.Levels))
	seen := make(map[int]bool)
	for _, d := range f.Levels {
		l, err := d.Build()
		if err != nil {
			return nil, err
		}
		if seen[l.Number] {
			return nil, fmt.Errorf("%w: %s: level %d defined twice", ErrInvalid, d.Pos, l.Number)
		}
		seen[l.Number] = true
		levels = append(levels, l)
	}
	return levels, nil
}

// Build validates one block and converts it into a Level.
func (d *Decl) Build() (*Level, error) {
	if d.Number < 1 {
		return nil, fmt.Errorf("%w: %s: level number %d", ErrInvalid, d.Pos, d.Number)
	}
	l := &Level{Number: d.Number}

	if len(d.Board) != board.Rows {
		return nil, fmt.Errorf("%w: level %d: board has %d rows, want %d", ErrInvalid, d.Number, len(d.Board), board.Rows)
	}
	for r, row := range d.Board {
		if len(row.Cells) != board.Cols {
			return nil, fmt.Errorf("%w: level %d: %s: row has %d cells, want %d", ErrInvalid, d.Number, row.Pos, len(row.Cells), board.Cols)
		}
		for c, name := range row.Cells {
			t, err := piece.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("%w: level %d: %s: %v", ErrInvalid, d.Number, row.Pos, err)
			}
			l.Layout[r][c] = t
		}
	}

	if len(d.Goal) > goal.Rows {
		return nil, fmt.Errorf("%w: level %d: %d goal rows, at most %d", ErrInvalid, d.Number, len(d.Goal), goal.Rows)
	}
	for r, row := range d.Goal {
		if len(row.Cells) > goal.Width {
			return nil, fmt.Errorf("%w: level %d: %s: goal row has %d cells, at most %d", ErrInvalid, d.Number, row.Pos, len(row.Cells), goal.Width)
		}
		for c, name := range row.Cells {
			m, err := goal.ParseMarker(name)
			if err != nil {
				return nil, fmt.Errorf("%w: level %d: %s: %v", ErrInvalid, d.Number, row.Pos, err)
			}
			l.Goal[r][c] = m
		}
	}
	if err := checkSwitchRows(&l.Goal); err != nil {
		return nil, fmt.Errorf("%w: level %d: %v", ErrInvalid, d.Number, err)
	}

	if len(d.Hand) > HandSize {
		return nil, fmt.Errorf("%w: level %d: %d hand pieces, at most %d", ErrInvalid, d.Number, len(d.Hand), HandSize)
	}
	for i, name := range d.Hand {
		t, err := piece.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: level %d: hand: %v", ErrInvalid, d.Number, err)
		}
		l.Hand[i/HandCols][i%HandCols] = t
	}
	return l, nil
}

// checkSwitchRows requires a switched goal to label all three rows in
// order.
func checkSwitchRows(g *goal.Goal) error {
	if !g.HasSwitch() {
		for r := range g {
			if g[r][0].Switch() != 0 {
				return fmt.Errorf("goal row %d: switch marker without sw1 in row 1", r+1)
			}
		}
		return nil
	}
	for r := range g {
		if g[r][0].Switch() != r+1 {
			return fmt.Errorf("goal row %d: want sw%d, got %s", r+1, r+1, g[r][0])
		}
	}
	return nil
}
