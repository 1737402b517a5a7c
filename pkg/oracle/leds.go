package oracle

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// LEDs is a 3-bit vector of lit LEDs: red is bit 0, yellow bit 1 and green
// bit 2.
type LEDs uint8

const (
	RedOn    LEDs = 1 << iota
	YellowOn
	GreenOn

	AllOff LEDs = 0
	AllOn       = RedOn | YellowOn | GreenOn
)

// Bit returns the vector with only color c lit.
func Bit(c piece.Color) LEDs {
	if c > piece.Green {
		return 0
	}
	return 1 << c
}

// On reports whether color c is lit.
func (l LEDs) On(c piece.Color) bool {
	b := Bit(c)
	return b != 0 && l&b != 0
}

// Swap exchanges the lit states of colors a and b.
func (l LEDs) Swap(a, b piece.Color) LEDs {
	aOn, bOn := l.On(a), l.On(b)
	l &^= Bit(a) | Bit(b)
	if aOn {
		l |= Bit(b)
	}
	if bOn {
		l |= Bit(a)
	}
	return l
}

func (l LEDs) String() string {
	if l&^AllOn != 0 {
		return "invalid"
	}
	var parts []string
	for _, c := range piece.Colors {
		if l.On(c) {
			parts = append(parts, c.String())
		}
	}
	if len(parts) == 0 {
		return "off"
	}
	return strings.Join(parts, "+")
}
