package goal

import "github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"

// Input is everything one evaluation pass knows about the board.
type Input struct {
	LEDs  oracle.LEDs
	Short bool
	// HandEmpty is true when no hand slot holds an unplaced piece.
	HandEmpty bool
	Held      bool
	// PruneClean is true when the strict prune of the unpruned board
	// changed nothing.
	PruneClean bool
	// SwitchPosition is 1..3, or -1 when no switch is on the board.
	SwitchPosition int
}

// RulesMet reports whether the board is a legal finished circuit,
// independent of which LEDs it lights.
func (in Input) RulesMet() bool {
	return !in.Short && !in.Held && in.HandEmpty && in.PruneClean
}

// Result is the outcome of comparing one evaluation against a goal.
type Result struct {
	Target   oracle.LEDs
	Matched  bool
	Met      [Rows]bool
	RulesMet bool
	Complete bool
}

// Tracker remembers which switch positions have been satisfied since the
// board last changed. The zero value is ready to use.
type Tracker struct {
	met [Rows]bool
}

// Observe records whether the LEDs matched at switch position pos. Positions
// outside 1..3 are ignored.
func (t *Tracker) Observe(pos int, matched bool) {
	if pos < 1 || pos > Rows {
		return
	}
	t.met[pos-1] = matched
}

// Invalidate forgets every position. Call it on any change other than
// turning the switch.
func (t *Tracker) Invalidate() {
	t.met = [Rows]bool{}
}

// Met returns the per-position flags.
func (t *Tracker) Met() [Rows]bool {
	return t.met
}

// Evaluate compares in against g, updates the flag for the current switch
// position and reports completion.
func (t *Tracker) Evaluate(g *Goal, in Input) Result {
	r := Result{
		Target:   g.States(in.SwitchPosition),
		RulesMet: in.RulesMet(),
	}
	r.Matched = in.LEDs == r.Target

	if g.HasSwitch() {
		t.Observe(in.SwitchPosition, r.Matched)
		r.Met = t.met
		r.Complete = t.met[0] && t.met[1] && t.met[2] && r.RulesMet
		return r
	}

	r.Met[0] = r.Matched
	r.Complete = r.Matched && r.RulesMet
	return r
}
