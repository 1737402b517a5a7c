// Package piece defines the circuit pieces that can be placed on the 5x5
// board: their identifiers, which edges they connect, how they rotate, how
// a path travels through them and what they degrade into when a neighbor
// stops connecting.
//
// All lookups are total. Unknown identifiers present no edges, rotate to
// themselves and carry no route.
package piece
