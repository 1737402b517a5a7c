package board

import "github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"

// PruneStats summarizes a pruning run.
type PruneStats struct {
	Passes      int // passes over the board, the final no-change pass included
	Removed     int // pieces turned into blanks
	Degenerated int // pieces reduced to a simpler piece
}

// Changes is the number of removals and degenerations.
func (s PruneStats) Changes() int {
	return s.Removed + s.Degenerated
}

// Prune repeatedly strips pieces that lack connected neighbors until a pass
// makes no change. It returns the pruned board and whether no pass removed or
// degenerated anything. The input board is not modified.
func Prune(b Board, p piece.Policy) (Board, bool) {
	out, stats := PruneWithStats(b, p)
	return out, stats.Changes() == 0
}

// PruneWithStats is Prune with counters.
//
// Cells are visited in row-major order and updated in place, so a change is
// visible to the cells checked after it in the same pass. Blockers become
// blanks without counting as a change.
func PruneWithStats(b Board, p piece.Policy) (Board, PruneStats) {
	var stats PruneStats
	for {
		stats.Passes++
		changed := 0
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				at := Coord{r, c}
				cur := b[r][c]
				next, ok := piece.Degrade(cur, p, b.supported(at, p))
				b[r][c] = next
				if !ok {
					continue
				}
				changed++
				if next == piece.Blank {
					stats.Removed++
				} else {
					stats.Degenerated++
				}
			}
		}
		if changed == 0 {
			return b, stats
		}
	}
}

// supported returns the edges of the piece at c whose neighbor presents the
// facing edge back.
func (b *Board) supported(c Coord, p piece.Policy) piece.EdgeSet {
	var set piece.EdgeSet
	for _, e := range piece.Connects(b.At(c), p).Slice() {
		n := c.Step(e)
		if n.In() && piece.Presents(b.At(n), e.Opposite(), p) {
			set = set.With(e)
		}
	}
	return set
}
