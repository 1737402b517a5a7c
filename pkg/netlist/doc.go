// Package netlist records which circuit terminals are joined by conductive
// paths and encodes that record as a compact key.
//
// # Nodes
//
// There are eight terminals: the power supply (VV), ground (00) and the
// anode and cathode of the red, yellow and green LEDs (RA, RC, YA, YC, GA,
// GC). A Matrix is a symmetric 8x8 relation over them; the diagonal is
// ignored.
//
// # Keys
//
// Pack folds the 27 off-diagonal pairs that exclude the power/ground pair
// into a 27-bit Key. Bit i is set when pair i, in the order below, is
// connected:
//
//	 0: GA-GC
//	 1: YC-GC   2: YC-GA
//	 3: YA-GC   4: YA-GA   5: YA-YC
//	 6: RC-GC   7: RC-GA   8: RC-YC   9: RC-YA
//	10: RA-GC  11: RA-GA  12: RA-YC  13: RA-YA  14: RA-RC
//	15: 00-GC  16: 00-GA  17: 00-YC  18: 00-YA  19: 00-RC  20: 00-RA
//	21: VV-GC  22: VV-GA  23: VV-YC  24: VV-YA  25: VV-RC  26: VV-RA
//
// The power/ground pair is never encoded. A matrix with that pair set is a
// short circuit and packs to zero.
//
// # Nets
//
// Nets groups connected terminals with union-find for display and export:
//
//	m := netlist.Matrix{}
//	m.Connect(netlist.VV, netlist.RA)
//	nets := netlist.NewNets(m)
//	data, _ := nets.ExportJSON()
package netlist
