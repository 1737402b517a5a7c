// Package sim walks paths through a pruned board to find which terminals are
// joined.
//
// Every power piece and LED has legs: the cell just across each of its
// terminal edges. A Strategy starts from each leg and records the terminal
// each path ends on in a netlist.Matrix. Sampler repeats single walks whose
// T-piece choices come from a DecisionSource; Exhaustive follows every
// branch. Paths that end anywhere but a terminal record the source against
// itself, which the matrix ignores.
package sim
