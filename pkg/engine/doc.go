// Package engine ties the circuit rules together.
//
// An Evaluator runs one pass over a board: prune the unsupported pieces,
// trace every terminal leg, pack the resulting connection matrix into a key
// and look the key up in the oracle to learn which LEDs are lit. A second,
// strict prune of the unpruned board decides whether every piece is
// properly connected. Check then compares the outcome with a level's goal.
//
// A Session hosts one attempt at a level. It owns the board, the hand and
// the piece being moved. Every move is re-evaluated under the session lock;
// only moves that change the board, as opposed to turning the switch, reset
// the switch positions already satisfied.
package engine
