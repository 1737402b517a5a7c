package level

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Format renders l as a pack block that Load reads back.
func Format(l *Level) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "level %d {\n", l.Number)

	sb.WriteString("  board {\n")
	width := 1
	l.Layout.Each(func(_ board.Coord, t piece.Type) {
		width = max(width, len(cellName(t)))
	})
	for r := 0; r < board.Rows; r++ {
		cells := make([]string, board.Cols)
		for c := range cells {
			cells[c] = fmt.Sprintf("%-*s", width, cellName(l.Layout[r][c]))
		}
		fmt.Fprintf(&sb, "    [ %s ]\n", strings.TrimRight(strings.Join(cells, " "), " "))
	}
	sb.WriteString("  }\n")

	sb.WriteString("  goal {\n")
	for r := 0; r < l.Goal.Lines(); r++ {
		row := l.Goal[r][:]
		for len(row) > 0 && row[len(row)-1] == goal.Blank {
			row = row[:len(row)-1]
		}
		names := make([]string, len(row))
		for i, m := range row {
			names[i] = markerName(m)
		}
		fmt.Fprintf(&sb, "    [ %s ]\n", strings.Join(names, " "))
	}
	sb.WriteString("  }\n")

	var hand []string
	for _, row := range l.Hand {
		for _, t := range row {
			if t != piece.Blank {
				hand = append(hand, t.String())
			}
		}
	}
	if len(hand) == 0 {
		sb.WriteString("  hand { }\n")
	} else {
		fmt.Fprintf(&sb, "  hand { %s }\n", strings.Join(hand, " "))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Write renders levels separated by blank lines.
func Write(w io.Writer, levels []*Level) error {
	for i, l := range levels {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, Format(l)); err != nil {
			return err
		}
	}
	return nil
}

func cellName(t piece.Type) string {
	if t == piece.Blank {
		return "."
	}
	return t.String()
}

func markerName(m goal.Marker) string {
	if m == goal.Blank {
		return "."
	}
	return m.String()
}
