package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/sim"
)

// redCircuit wires power through a straight into the red anode and the red
// cathode through a straight into ground.
func redCircuit() board.Board {
	var b board.Board
	b[0][0] = piece.VccR
	b[0][1] = piece.StraightLR
	b[0][2] = piece.RLedALCB
	b[1][2] = piece.StraightTB
	b[2][2] = piece.GndLTR
	return b
}

// shortCircuit wires power straight into ground.
func shortCircuit() board.Board {
	var b board.Board
	b[0][0] = piece.VccB
	b[1][0] = piece.StraightTB
	b[2][0] = piece.StraightTB
	b[3][0] = piece.GndLTR
	return b
}

func newEvaluator(t testing.TB, cfg *Config) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(cfg, nil, nil)
	require.NoError(t, err)
	return ev
}

var done = Status{HandEmpty: true}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sim.DefaultSampler(), cfg.Simulator())

	cfg = &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StrategySampled, cfg.Strategy)
	assert.Equal(t, sim.DefaultGenerations, cfg.Generations)
	assert.Equal(t, sim.DefaultSamplesPerGeneration, cfg.Samples)

	cfg = &Config{Strategy: StrategyExhaustive}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sim.Exhaustive{}, cfg.Simulator())

	assert.Error(t, (&Config{Strategy: "random"}).Validate())
	assert.Error(t, (&Config{MaxHops: -1}).Validate())
	assert.Error(t, (&Config{Generations: 300}).Validate())

	_, err := NewEvaluator(&Config{Strategy: "random"}, nil, nil)
	assert.Error(t, err)
}

func TestEvaluateEmptyBoard(t *testing.T) {
	e := newEvaluator(t, nil)
	ev := e.Evaluate(board.Board{}, Status{HandEmpty: false})
	assert.False(t, ev.Short)
	assert.Equal(t, netlist.Key(0), ev.Key)
	assert.Equal(t, oracle.AllOff, ev.LEDs)
	assert.Equal(t, -1, ev.SwitchPosition)
	assert.True(t, ev.StrictClean)
	assert.False(t, ev.MeetsRules)
	assert.Nil(t, ev.Goal)
	assert.False(t, ev.Complete())
}

func TestEvaluateRedCircuit(t *testing.T) {
	for _, cfg := range []*Config{DefaultConfig(), {Strategy: StrategyExhaustive}} {
		t.Run(cfg.Strategy, func(t *testing.T) {
			e := newEvaluator(t, cfg)
			b := redCircuit()
			ev := e.Evaluate(b, done)

			assert.Equal(t, b, ev.Pruned, "nothing to prune")
			assert.Zero(t, ev.Stats.Changes())
			assert.False(t, ev.Short)
			assert.Equal(t, netlist.Key(0x04080000), ev.Key)
			assert.Equal(t, oracle.RedOn, ev.LEDs)
			assert.True(t, ev.StrictClean)
			assert.True(t, ev.MeetsRules)
			assert.Equal(t, redCircuit(), b, "input untouched")
		})
	}
}

func TestCheckRedCircuit(t *testing.T) {
	e := newEvaluator(t, nil)
	g := goal.Goal{{goal.RedOn}}
	var tr goal.Tracker

	ev := e.Check(redCircuit(), done, &g, &tr)
	require.NotNil(t, ev.Goal)
	assert.True(t, ev.Goal.Matched)
	assert.True(t, ev.Complete())

	g = goal.Goal{{goal.GreenOn}}
	ev = e.Check(redCircuit(), done, &g, &tr)
	assert.False(t, ev.Goal.Matched)
	assert.False(t, ev.Complete())

	ev = e.Check(redCircuit(), Status{Held: true, HandEmpty: true}, &goal.Goal{{goal.RedOn}}, &tr)
	assert.True(t, ev.Goal.Matched)
	assert.False(t, ev.MeetsRules)
	assert.False(t, ev.Complete())
}

func TestEvaluateShort(t *testing.T) {
	e := newEvaluator(t, nil)
	ev := e.Evaluate(shortCircuit(), done)
	assert.True(t, ev.Short)
	assert.Equal(t, netlist.Key(0), ev.Key)
	assert.Equal(t, oracle.AllOff, ev.LEDs)
	assert.True(t, ev.StrictClean)
	assert.False(t, ev.MeetsRules)
}

func TestEvaluateShortAlongsideLitLED(t *testing.T) {
	b := redCircuit()
	b[0][1] = piece.TeeRBL
	b[1][1] = piece.StraightTB
	b[2][1] = piece.CornerTR

	ev := newEvaluator(t, nil).Evaluate(b, done)
	assert.True(t, ev.Short)
	assert.Equal(t, oracle.AllOff, ev.LEDs)
	assert.False(t, ev.MeetsRules)
}

func TestEvaluateUnsupportedPieceFailsRules(t *testing.T) {
	b := redCircuit()
	b[4][4] = piece.CornerBL

	ev := newEvaluator(t, nil).Evaluate(b, done)
	assert.Equal(t, oracle.RedOn, ev.LEDs)
	assert.Equal(t, 1, ev.Stats.Removed)
	assert.Equal(t, piece.Blank, ev.Pruned[4][4])
	assert.False(t, ev.StrictClean)
	assert.False(t, ev.MeetsRules)
}

func TestEvaluateRelaxedRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireEmptyHand = false
	cfg.RequireNoHeldPiece = false
	e := newEvaluator(t, cfg)

	ev := e.Evaluate(redCircuit(), Status{Held: true})
	assert.True(t, ev.MeetsRules)
}

func TestEvaluateResolvesPlaceholders(t *testing.T) {
	b := redCircuit()
	b[4][4] = piece.CornerU
	ev := newEvaluator(t, nil).Evaluate(b, done)
	assert.Equal(t, piece.Blank, ev.Pruned[4][4])
	assert.Equal(t, 1, ev.Stats.Removed)
}

func TestEvaluateExportNets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExportNets = true
	ev := newEvaluator(t, cfg).Evaluate(redCircuit(), done)
	require.NotNil(t, ev.Nets)
	assert.True(t, ev.Nets.SameNet(netlist.VV, netlist.RA))
	assert.True(t, ev.Nets.SameNet(netlist.GND, netlist.RC))
	assert.False(t, ev.Nets.SameNet(netlist.VV, netlist.GND))

	ev = newEvaluator(t, nil).Evaluate(redCircuit(), done)
	assert.Nil(t, ev.Nets)
}

func TestEvaluateDeterministic(t *testing.T) {
	e := newEvaluator(t, nil)
	b := redCircuit()
	b[3][0] = piece.TeeTRB
	b[3][1] = piece.CornerTL
	assert.Equal(t, e.Evaluate(b, done), e.Evaluate(b, done))
}

func BenchmarkEvaluate(b *testing.B) {
	e := newEvaluator(b, nil)
	brd := redCircuit()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Evaluate(brd, done)
	}
}
