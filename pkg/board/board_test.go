package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// redCircuit is power, a red LED and ground joined by straights. Every
// piece is supported, so nothing prunes.
func redCircuit() Board {
	var b Board
	b.Set(Coord{0, 0}, piece.VccR)
	b.Set(Coord{0, 1}, piece.StraightLR)
	b.Set(Coord{0, 2}, piece.RLedALCB)
	b.Set(Coord{1, 2}, piece.StraightTB)
	b.Set(Coord{2, 2}, piece.GndLTR)
	return b
}

func TestCoordStep(t *testing.T) {
	c := Coord{2, 2}
	assert.Equal(t, Coord{1, 2}, c.Step(piece.Top))
	assert.Equal(t, Coord{2, 3}, c.Step(piece.Right))
	assert.Equal(t, Coord{3, 2}, c.Step(piece.Bottom))
	assert.Equal(t, Coord{2, 1}, c.Step(piece.Left))
	assert.False(t, Coord{0, 0}.Step(piece.Top).In())
	assert.False(t, Coord{4, 4}.Step(piece.Right).In())
}

func TestAtOffBoard(t *testing.T) {
	b := redCircuit()
	assert.Equal(t, piece.Blank, b.At(Coord{-1, 0}))
	assert.Equal(t, piece.Blank, b.At(Coord{0, 5}))
	b.Set(Coord{5, 5}, piece.VccT)
	assert.Equal(t, redCircuit(), b)
}

func TestPruneEmptyBoard(t *testing.T) {
	var b Board
	pruned, ok := Prune(b, piece.Normal)
	assert.True(t, ok)
	assert.True(t, pruned.Empty())
}

func TestPruneConnectedCircuit(t *testing.T) {
	b := redCircuit()
	for _, p := range []piece.Policy{piece.Normal, piece.MeetsRules} {
		pruned, ok := Prune(b, p)
		assert.True(t, ok, "policy %s", p)
		assert.Equal(t, b, pruned, "policy %s", p)
	}
}

func TestPruneDoesNotModifyInput(t *testing.T) {
	var b Board
	b.Set(Coord{4, 4}, piece.CornerTL)
	before := b
	pruned, ok := Prune(b, piece.Normal)
	assert.False(t, ok)
	assert.True(t, pruned.Empty())
	assert.Equal(t, before, b)
}

func TestPruneCascadesInPlace(t *testing.T) {
	// The corner is visited first, so the power piece sees the blank in the
	// same pass.
	var b Board
	b.Set(Coord{0, 0}, piece.CornerBR)
	b.Set(Coord{0, 1}, piece.VccL)

	pruned, stats := PruneWithStats(b, piece.Normal)
	assert.True(t, pruned.Empty())
	assert.Equal(t, 2, stats.Passes)
	assert.Equal(t, 2, stats.Removed)

	// Reversed order needs another pass.
	b = Board{}
	b.Set(Coord{0, 0}, piece.VccR)
	b.Set(Coord{0, 1}, piece.CornerBL)

	pruned, stats = PruneWithStats(b, piece.Normal)
	assert.True(t, pruned.Empty())
	assert.Equal(t, 3, stats.Passes)
	assert.Equal(t, 2, stats.Removed)
}

func TestPruneDegradesTee(t *testing.T) {
	b := redCircuit()
	b.Set(Coord{0, 1}, piece.TeeRBL)

	pruned, stats := PruneWithStats(b, piece.Normal)
	assert.Equal(t, piece.StraightLR, pruned.At(Coord{0, 1}))
	assert.Equal(t, 1, stats.Degenerated)
	assert.Equal(t, 0, stats.Removed)
	assert.Equal(t, redCircuit(), pruned)
}

func TestPruneDegradesBridge(t *testing.T) {
	b := redCircuit()
	b.Set(Coord{0, 1}, piece.Bridge1)

	pruned, ok := Prune(b, piece.Normal)
	assert.False(t, ok)
	assert.Equal(t, piece.StraightLR, pruned.At(Coord{0, 1}))
}

func TestPruneBlockerIsSilent(t *testing.T) {
	b := redCircuit()
	b.Set(Coord{4, 0}, piece.Blocker)
	b.Set(Coord{4, 4}, piece.Blocker)

	pruned, ok := Prune(b, piece.Normal)
	assert.True(t, ok)
	assert.Equal(t, redCircuit(), pruned)
}

func TestPruneClearsInvalidPieces(t *testing.T) {
	b := redCircuit()
	b[3][0] = piece.Type(200)
	b[0][3] = piece.Type(piece.Count)

	pruned, ok := Prune(b, piece.Normal)
	assert.True(t, ok)
	assert.Equal(t, redCircuit(), pruned)

	r := b.Resolved()
	assert.Equal(t, piece.Blank, r.At(Coord{3, 0}))
	assert.Equal(t, piece.Blank, r.At(Coord{0, 3}))
}

func TestPruneIdempotent(t *testing.T) {
	boards := []Board{redCircuit()}

	b := redCircuit()
	b.Set(Coord{0, 1}, piece.TeeRBL)
	b.Set(Coord{3, 3}, piece.DoubleCornerTRBL)
	b.Set(Coord{4, 4}, piece.Blocker)
	b.Set(Coord{3, 0}, piece.Sw2TB)
	boards = append(boards, b)

	var full Board
	kinds := []piece.Type{piece.TeeLTR, piece.CornerBR, piece.Bridge2, piece.StraightTB, piece.GndRBL}
	full.Each(func(c Coord, _ piece.Type) {
		full.Set(c, kinds[(c.Row*Cols+c.Col)%len(kinds)])
	})
	boards = append(boards, full)

	for i, b := range boards {
		for _, p := range []piece.Policy{piece.Normal, piece.MeetsRules} {
			once, _ := Prune(b, p)
			twice, ok := Prune(once, p)
			require.Equal(t, once, twice, "board %d policy %s", i, p)
			assert.True(t, ok, "board %d policy %s", i, p)
		}
	}
}

func TestPruneStrictSwitch(t *testing.T) {
	// The corner at (1,1) reaches the switch through its bottom edge, which
	// the switch only offers under the strict policy.
	var b Board
	b.Set(Coord{0, 0}, piece.VccR)
	b.Set(Coord{0, 1}, piece.Sw2LR)
	b.Set(Coord{0, 2}, piece.RLedALCB)
	b.Set(Coord{1, 1}, piece.CornerTR)
	b.Set(Coord{1, 2}, piece.GndLTR)

	normal, stats := PruneWithStats(b, piece.Normal)
	assert.Equal(t, piece.Blank, normal.At(Coord{1, 1}))
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, piece.GndLTR, normal.At(Coord{1, 2}))

	strict, ok := Prune(b, piece.MeetsRules)
	assert.True(t, ok)
	assert.Equal(t, b, strict)
}

func TestSwitchPosition(t *testing.T) {
	b := redCircuit()
	assert.Equal(t, -1, b.SwitchPosition())
	b.Set(Coord{4, 4}, piece.Sw3TL)
	assert.Equal(t, 3, b.SwitchPosition())
	b.Set(Coord{4, 4}, piece.Sw1RB)
	assert.Equal(t, 1, b.SwitchPosition())
}

func TestResolved(t *testing.T) {
	var b Board
	b.Set(Coord{1, 1}, piece.CornerU)
	b.Set(Coord{2, 2}, piece.TeeU)
	r := b.Resolved()
	assert.Equal(t, piece.CornerBL, r.At(Coord{1, 1}))
	assert.Equal(t, piece.TeeRBL, r.At(Coord{2, 2}))
	assert.Equal(t, piece.CornerU, b.At(Coord{1, 1}))
}
