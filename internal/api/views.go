package api

import (
	"encoding/json"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Grid is a board written as rows of piece names; "." is empty.
type Grid [][]string

// LevelView describes a level.
type LevelView struct {
	Number    int      `json:"number"`
	HasSwitch bool     `json:"has_switch"`
	Board     Grid     `json:"board"`
	Goal      Grid     `json:"goal"`
	Hand      []string `json:"hand"`
}

// LevelSummary is one line of the level list.
type LevelSummary struct {
	Number    int  `json:"number"`
	HasSwitch bool `json:"has_switch"`
	Pieces    int  `json:"pieces"`
}

// EvaluationView is the outcome of an evaluation pass.
type EvaluationView struct {
	Key            string          `json:"key"`
	Short          bool            `json:"short_circuit"`
	LEDs           []string        `json:"leds"`
	SwitchPosition int             `json:"switch_position"`
	StrictClean    bool            `json:"strict_clean"`
	MeetsRules     bool            `json:"meets_rules"`
	Removed        int             `json:"removed"`
	Pruned         Grid            `json:"pruned"`
	Goal           *GoalView       `json:"goal,omitempty"`
	Nets           json.RawMessage `json:"nets,omitempty"`
}

// GoalView reports progress against a level goal.
type GoalView struct {
	Target   []string `json:"target"`
	Matched  bool     `json:"matched"`
	Met      []bool   `json:"met"`
	Complete bool     `json:"complete"`
}

// StateView is a session snapshot.
type StateView struct {
	ID         string          `json:"id"`
	Level      int             `json:"level"`
	Board      Grid            `json:"board"`
	Hand       Grid            `json:"hand"`
	Held       string          `json:"held,omitempty"`
	Moves      int             `json:"moves"`
	Evaluation *EvaluationView `json:"evaluation"`
}

func cellName(t piece.Type) string {
	if t == piece.Blank {
		return "."
	}
	return t.String()
}

func boardGrid(b *board.Board) Grid {
	g := make(Grid, board.Rows)
	for r := range g {
		g[r] = make([]string, board.Cols)
		for c := range g[r] {
			g[r][c] = cellName(b[r][c])
		}
	}
	return g
}

func handGrid(h *level.Hand) Grid {
	g := make(Grid, level.HandRows)
	for r := range g {
		g[r] = make([]string, level.HandCols)
		for c := range g[r] {
			g[r][c] = cellName(h[r][c])
		}
	}
	return g
}

// parseGrid reads a 5x5 board.
func parseGrid(g Grid) (board.Board, error) {
	var b board.Board
	if len(g) != board.Rows {
		return b, fmt.Errorf("board has %d rows, want %d", len(g), board.Rows)
	}
	for r, row := range g {
		if len(row) != board.Cols {
			return b, fmt.Errorf("row %d has %d cells, want %d", r, len(row), board.Cols)
		}
		for c, name := range row {
			t, err := piece.Parse(name)
			if err != nil {
				return b, err
			}
			b[r][c] = t
		}
	}
	return b, nil
}

func ledNames(l oracle.LEDs) []string {
	names := []string{}
	for _, c := range piece.Colors {
		if l.On(c) {
			names = append(names, c.String())
		}
	}
	return names
}

func newLevelView(l *level.Level) LevelView {
	v := LevelView{
		Number:    l.Number,
		HasSwitch: l.HasSwitch(),
		Board:     boardGrid(&l.Layout),
		Hand:      []string{},
	}
	for r := 0; r < l.Goal.Lines(); r++ {
		row := make([]string, 0, len(l.Goal[r]))
		for _, m := range l.Goal[r] {
			row = append(row, m.String())
		}
		v.Goal = append(v.Goal, row)
	}
	for _, row := range l.Hand {
		for _, t := range row {
			if t != piece.Blank {
				v.Hand = append(v.Hand, t.String())
			}
		}
	}
	return v
}

func newEvaluationView(ev *engine.Evaluation) (*EvaluationView, error) {
	v := &EvaluationView{
		Key:            ev.Key.String(),
		Short:          ev.Short,
		LEDs:           ledNames(ev.LEDs),
		SwitchPosition: ev.SwitchPosition,
		StrictClean:    ev.StrictClean,
		MeetsRules:     ev.MeetsRules,
		Removed:        ev.Stats.Removed,
		Pruned:         boardGrid(&ev.Pruned),
	}
	if ev.Goal != nil {
		gv := &GoalView{
			Matched:  ev.Goal.Matched,
			Met:      ev.Goal.Met[:],
			Complete: ev.Goal.Complete,
			Target:   []string{},
		}
		// the unmatchable sentinel has bits beyond the three LEDs
		if ev.Goal.Target&^oracle.AllOn == 0 {
			gv.Target = ledNames(ev.Goal.Target)
		}
		v.Goal = gv
	}
	if ev.Nets != nil {
		data, err := ev.Nets.ExportJSON()
		if err != nil {
			return nil, err
		}
		v.Nets = data
	}
	return v, nil
}

func newStateView(st engine.State) (*StateView, error) {
	v := &StateView{
		ID:    st.ID,
		Level: st.Level,
		Board: boardGrid(&st.Board),
		Hand:  handGrid(&st.Hand),
		Moves: st.Moves,
	}
	if st.Holding {
		v.Held = st.Held.String()
	}
	if st.Last != nil {
		ev, err := newEvaluationView(st.Last)
		if err != nil {
			return nil, err
		}
		v.Evaluation = ev
	}
	return v, nil
}
