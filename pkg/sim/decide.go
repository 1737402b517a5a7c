package sim

// Decider supplies branch choices to a walk.
type Decider interface {
	Decide() bool
}

// DecisionSource is a repeatable replacement for random branch choices. The
// n-th decision of generation g is bit n of g, so stepping through
// generations 0 to 3 tries every combination of the first two branch points
// a path meets.
//
// The zero value is ready at generation 0.
type DecisionSource struct {
	generation uint8
	cursor     uint8
}

// Init rewinds to generation 0.
func (d *DecisionSource) Init() {
	d.generation = 0
	d.cursor = 0
}

// Next advances to the following generation and rewinds the bit cursor.
func (d *DecisionSource) Next() {
	d.generation++
	d.cursor = 0
}

// Decide consumes one bit of the current generation. After eight decisions
// every further decision is false.
func (d *DecisionSource) Decide() bool {
	if d.cursor >= 8 {
		return false
	}
	bit := d.generation>>d.cursor&1 == 1
	d.cursor++
	return bit
}

// Generation returns the current generation index.
func (d *DecisionSource) Generation() int {
	return int(d.generation)
}
