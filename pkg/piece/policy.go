package piece

// Policy selects the connectivity table used when pieces check their
// neighbors.
type Policy uint8

const (
	// Normal treats a switch as presenting only its two active edges.
	Normal Policy = iota
	// MeetsRules is the strict policy used to validate a finished board.
	// Switches present all four edges so that no position leaves a loose end.
	MeetsRules
)

func (p Policy) String() string {
	if p == MeetsRules {
		return "meets-rules"
	}
	return "normal"
}

// Connects returns the edges t presents to its neighbors under p. Blanks,
// blockers and placeholders present none.
func Connects(t Type, p Policy) EdgeSet {
	if !t.Placeable() {
		return 0
	}
	if p == MeetsRules && table[t].kind == KindSwitch {
		return AllEdges
	}
	return table[t].edges
}

// Presents reports whether t offers edge e under p.
func Presents(t Type, e Edge, p Policy) bool {
	return Connects(t, p).Has(e)
}

// twoEdge maps a pair of edges to the corner or straight that joins them.
var twoEdge = map[EdgeSet]Type{
	SetOf(Bottom, Left):  CornerBL,
	SetOf(Top, Left):     CornerTL,
	SetOf(Top, Right):    CornerTR,
	SetOf(Bottom, Right): CornerBR,
	SetOf(Left, Right):   StraightLR,
	SetOf(Top, Bottom):   StraightTB,
}

// Degrade returns what t becomes when only the edges in supported have a
// neighbor that connects back. The second result reports whether anything was
// removed or reduced. Blockers and invalid identifiers become Blank without
// counting as a change; blanks and placeholders never change.
func Degrade(t Type, p Policy, supported EdgeSet) (Type, bool) {
	if !t.Valid() {
		return Blank, false
	}
	if !t.Placeable() {
		return t, false
	}
	need := Connects(t, p)
	have := supported & need

	switch table[t].kind {
	case KindBlank:
		return t, false
	case KindBlocker:
		return Blank, false
	case KindPower, KindGround:
		if have.Count() == 0 {
			return Blank, true
		}
	case KindSwitch, KindLED, KindStraight, KindCorner:
		if have.Count() < 2 {
			return Blank, true
		}
	case KindTee:
		switch have.Count() {
		case 3:
			return t, false
		case 2:
			return twoEdge[have], true
		default:
			return Blank, true
		}
	case KindDoubleCorner, KindBridge:
		paths := table[t].paths
		lost0 := have&paths[0] != paths[0]
		lost1 := have&paths[1] != paths[1]
		switch {
		case lost0 && lost1:
			return Blank, true
		case lost0:
			return twoEdge[paths[1]], true
		case lost1:
			return twoEdge[paths[0]], true
		}
	}
	return t, false
}
