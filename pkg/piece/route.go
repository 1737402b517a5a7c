package piece

// Route returns the edge a path leaves through after entering t through in,
// for pieces with fixed pass-through paths (switches, straights, corners,
// double corners and bridges). The second result is false when t has no path
// through in.
func Route(t Type, in Edge) (Edge, bool) {
	if !t.Placeable() {
		return NoEdge, false
	}
	for _, path := range table[t].paths {
		if !path.Has(in) {
			continue
		}
		if rest := path.Without(in).Slice(); len(rest) == 1 {
			return rest[0], true
		}
	}
	return NoEdge, false
}

// fork holds the exits of a T-piece for one entry edge.
type fork struct {
	one  Edge // exit when the decision bit is 1
	zero Edge // exit when the decision bit is 0
}

var noFork = fork{NoEdge, NoEdge}

var teeForks = map[Type][4]fork{
	TeeRBL: {
		Top:    noFork,
		Right:  {one: Left, zero: Bottom},
		Bottom: {one: Right, zero: Left},
		Left:   {one: Bottom, zero: Right},
	},
	TeeBLT: {
		Top:    {one: Left, zero: Bottom},
		Right:  noFork,
		Bottom: {one: Top, zero: Left},
		Left:   {one: Bottom, zero: Top},
	},
	TeeLTR: {
		Top:    {one: Left, zero: Right},
		Right:  {one: Top, zero: Left},
		Bottom: noFork,
		Left:   {one: Right, zero: Top},
	},
	TeeTRB: {
		Top:    {one: Bottom, zero: Right},
		Right:  {one: Top, zero: Bottom},
		Bottom: {one: Right, zero: Top},
		Left:   noFork,
	},
}

// Branch returns the exit of T-piece t entered through in for the given
// decision bit. The second result is false when t is not a T-piece or in is
// its absent edge.
func Branch(t Type, in Edge, decision bool) (Edge, bool) {
	forks, ok := teeForks[t]
	if !ok || in > Left {
		return NoEdge, false
	}
	f := forks[in]
	if decision {
		return f.one, f.one != NoEdge
	}
	return f.zero, f.zero != NoEdge
}
