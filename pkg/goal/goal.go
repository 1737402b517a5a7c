// Package goal decides whether the lit LEDs satisfy a level's goal table.
package goal

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Marker is one cell of a goal table.
type Marker uint8

const (
	Blank Marker = iota
	RedOff
	YellowOff
	GreenOff
	RedOn
	YellowOn
	GreenOn
	Sw1
	Sw2
	Sw3

	markerCount
)

var markerNames = [markerCount]string{
	Blank:     "blank",
	RedOff:    "rled_off",
	YellowOff: "yled_off",
	GreenOff:  "gled_off",
	RedOn:     "rled_on",
	YellowOn:  "yled_on",
	GreenOn:   "gled_on",
	Sw1:       "sw1",
	Sw2:       "sw2",
	Sw3:       "sw3",
}

func (m Marker) String() string {
	if m < markerCount {
		return markerNames[m]
	}
	return fmt.Sprintf("Marker(%d)", m)
}

// ParseMarker resolves a marker name. "." is accepted for Blank.
func ParseMarker(name string) (Marker, error) {
	if name == "." {
		return Blank, nil
	}
	for m, n := range markerNames {
		if strings.EqualFold(n, name) {
			return Marker(m), nil
		}
	}
	return Blank, fmt.Errorf("goal: unknown marker %q", name)
}

// LED returns the color a marker targets and whether it asks for it lit.
func (m Marker) LED() (c piece.Color, on bool, ok bool) {
	switch m {
	case RedOff, RedOn:
		c = piece.Red
	case YellowOff, YellowOn:
		c = piece.Yellow
	case GreenOff, GreenOn:
		c = piece.Green
	default:
		return 0, false, false
	}
	return c, m >= RedOn, true
}

// Switch returns the switch position a marker labels, or 0.
func (m Marker) Switch() int {
	if m >= Sw1 && m <= Sw3 {
		return int(m-Sw1) + 1
	}
	return 0
}

const (
	Rows  = 3
	Width = 4
)

// Unmatchable is returned by States when no valid switch position is given
// for a switched level. No oracle entry carries it.
const Unmatchable oracle.LEDs = 0xFF

// Goal is a level's goal table. A switched level has one row per switch
// position, each led by its sw marker; otherwise row 0 holds up to three LED
// targets.
type Goal [Rows][Width]Marker

// HasSwitch reports whether the level is switched.
func (g *Goal) HasSwitch() bool {
	return g[0][0] == Sw1
}

// States returns the LED vector a switch position must produce. Pass -1
// for levels without a switch.
func (g *Goal) States(pos int) oracle.LEDs {
	if g.HasSwitch() {
		if pos < 1 || pos > Rows {
			return Unmatchable
		}
		return vector(g[pos-1][1:])
	}
	return vector(g[0][:Width-1])
}

func vector(cells []Marker) oracle.LEDs {
	var v oracle.LEDs
	for _, m := range cells {
		if c, on, ok := m.LED(); ok && on {
			v |= oracle.Bit(c)
		}
	}
	return v
}

// Lines returns the number of leading non-blank rows.
func (g *Goal) Lines() int {
	n := 0
	for _, row := range g {
		if row == [Width]Marker{} {
			break
		}
		n++
	}
	return n
}

func (g Goal) String() string {
	var sb strings.Builder
	for i := 0; i < g.Lines(); i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for _, m := range g[i] {
			if m == Blank {
				continue
			}
			sb.WriteByte(' ')
			sb.WriteString(m.String())
		}
		sb.WriteString(" ]")
	}
	return sb.String()
}
