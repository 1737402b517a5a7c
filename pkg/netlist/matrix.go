package netlist

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Key is a packed 27-bit netlist.
type Key uint32

// KeyMask covers the bits a Key may use.
const KeyMask Key = 0x07FFFFFF

func (k Key) String() string {
	return fmt.Sprintf("0x%08x", uint32(k))
}

// pairs lists the (row, column) node pair encoded by each key bit.
var pairs = [27][2]Node{
	{GA, GC},
	{YC, GC}, {YC, GA},
	{YA, GC}, {YA, GA}, {YA, YC},
	{RC, GC}, {RC, GA}, {RC, YC}, {RC, YA},
	{RA, GC}, {RA, GA}, {RA, YC}, {RA, YA}, {RA, RC},
	{GND, GC}, {GND, GA}, {GND, YC}, {GND, YA}, {GND, RC}, {GND, RA},
	{VV, GC}, {VV, GA}, {VV, YC}, {VV, YA}, {VV, RC}, {VV, RA},
}

// Matrix is the connectivity relation between terminals. Connect keeps it
// symmetric; the zero value has nothing connected.
type Matrix [NodeCount][NodeCount]bool

// Connect records that a and b are joined.
func (m *Matrix) Connect(a, b Node) {
	if int(a) >= NodeCount || int(b) >= NodeCount {
		return
	}
	m[a][b] = true
	m[b][a] = true
}

// Connected reports whether a and b are joined. A node is not considered
// connected to itself.
func (m Matrix) Connected(a, b Node) bool {
	if a == b || int(a) >= NodeCount || int(b) >= NodeCount {
		return false
	}
	return m[a][b]
}

// ShortCircuit reports whether power reaches ground directly.
func (m Matrix) ShortCircuit() bool {
	return m[GND][VV]
}

// Symmetric reports whether every off-diagonal entry matches its mirror.
func (m Matrix) Symmetric() bool {
	for a := 0; a < NodeCount; a++ {
		for b := a + 1; b < NodeCount; b++ {
			if m[a][b] != m[b][a] {
				return false
			}
		}
	}
	return true
}

// Pack encodes the matrix. A short circuit packs to zero.
func (m Matrix) Pack() Key {
	if m.ShortCircuit() {
		return 0
	}
	var k Key
	for i, p := range pairs {
		if m[p[0]][p[1]] {
			k |= 1 << i
		}
	}
	return k
}

// Unpack rebuilds the symmetric matrix encoded by k. Bits above the key
// width are ignored.
func Unpack(k Key) Matrix {
	var m Matrix
	for i, p := range pairs {
		if k&(1<<i) != 0 {
			m.Connect(p[0], p[1])
		}
	}
	return m
}

// SwapColors exchanges the roles of two LED colors: anode rows and columns
// of a and b trade places, as do their cathodes.
func SwapColors(m Matrix, a, b piece.Color) Matrix {
	if a == b {
		return m
	}
	var perm [NodeCount]Node
	for i := range perm {
		perm[i] = Node(i)
	}
	perm[Anode(a)], perm[Anode(b)] = Anode(b), Anode(a)
	perm[Cathode(a)], perm[Cathode(b)] = Cathode(b), Cathode(a)

	var out Matrix
	for y := 0; y < NodeCount; y++ {
		for x := 0; x < NodeCount; x++ {
			out[y][x] = m[perm[y]][perm[x]]
		}
	}
	return out
}

// Pairs returns the connected pairs in key-bit order.
func (m Matrix) Pairs() [][2]Node {
	var out [][2]Node
	if m.ShortCircuit() {
		out = append(out, [2]Node{GND, VV})
	}
	for _, p := range pairs {
		if m[p[0]][p[1]] {
			out = append(out, p)
		}
	}
	return out
}

func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < NodeCount; x++ {
		sb.WriteString(" " + Node(x).String())
	}
	sb.WriteString("\n")
	for y := 0; y < NodeCount; y++ {
		sb.WriteString(Node(y).String() + " ")
		for x := 0; x < NodeCount; x++ {
			if m[y][x] && x != y {
				sb.WriteString("  1")
			} else {
				sb.WriteString("  .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
