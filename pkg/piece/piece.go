package piece

import (
	"fmt"
	"strings"
)

// Type is a piece identifier. Values 0 through 47 are concrete pieces that can
// sit on the board; values 48 through 60 are placeholders for pieces whose
// rotation has not been chosen yet and must be resolved before placement.
type Type uint8

const (
	Blank Type = iota

	VccT
	VccR
	VccB
	VccL

	GndLTR
	GndTRB
	GndRBL
	GndBLT

	Sw1BL
	Sw1LT
	Sw1TR
	Sw1RB

	RLedABCR
	RLedALCB
	RLedATCL
	RLedARCT

	Sw2BT
	Sw2LR
	Sw2TB
	Sw2RL

	YLedALCR
	YLedATCB
	YLedARCL
	YLedABCT

	Sw3BR
	Sw3LB
	Sw3TL
	Sw3RT

	GLedABCL
	GLedALCT
	GLedATCR
	GLedARCB

	StraightLR
	StraightTB

	DoubleCornerTLBR
	DoubleCornerTRBL

	CornerBL
	CornerTL
	CornerTR
	CornerBR

	TeeRBL
	TeeBLT
	TeeLTR
	TeeTRB

	Bridge1
	Bridge2

	Blocker

	VccU
	GndU
	Sw1U
	RLedU
	Sw2U
	YLedU
	Sw3U
	GLedU
	StraightU
	DoubleCornerU
	CornerU
	TeeU
	BridgeU
)

const (
	// Placeable is the number of concrete piece types.
	Placeable = int(Blocker) + 1
	// Count is the total number of piece types, placeholders included.
	Count = int(BridgeU) + 1
)

// Kind groups the rotations of a piece.
type Kind uint8

const (
	KindBlank Kind = iota
	KindPower
	KindGround
	KindSwitch
	KindLED
	KindStraight
	KindDoubleCorner
	KindCorner
	KindTee
	KindBridge
	KindBlocker
	KindUnknown
)

var kindNames = map[Kind]string{
	KindBlank:        "blank",
	KindPower:        "power",
	KindGround:       "ground",
	KindSwitch:       "switch",
	KindLED:          "led",
	KindStraight:     "straight",
	KindDoubleCorner: "double-corner",
	KindCorner:       "corner",
	KindTee:          "tee",
	KindBridge:       "bridge",
	KindBlocker:      "blocker",
	KindUnknown:      "unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Color is an LED color.
type Color uint8

const (
	Red Color = iota
	Yellow
	Green
)

// Colors lists the LED colors in red, yellow, green order.
var Colors = [3]Color{Red, Yellow, Green}

var colorNames = map[Color]string{
	Red:    "red",
	Yellow: "yellow",
	Green:  "green",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", c)
}

// LED describes the terminals of an LED piece.
type LED struct {
	Color   Color
	Anode   Edge
	Cathode Edge
}

type info struct {
	name     string
	kind     Kind
	edges    EdgeSet // connectivity under the normal policy
	cw       Type
	led      LED
	position int        // switch position, 1 to 3
	paths    [2]EdgeSet // independent conductive paths of pass-through pieces
	resolve  Type       // default orientation of a placeholder
}

var table = [Count]info{
	Blank: {name: "blank", kind: KindBlank, cw: Blank},

	VccT: {name: "vcc_t", kind: KindPower, edges: SetOf(Top), cw: VccR},
	VccR: {name: "vcc_r", kind: KindPower, edges: SetOf(Right), cw: VccB},
	VccB: {name: "vcc_b", kind: KindPower, edges: SetOf(Bottom), cw: VccL},
	VccL: {name: "vcc_l", kind: KindPower, edges: SetOf(Left), cw: VccT},

	GndLTR: {name: "gnd_ltr", kind: KindGround, edges: SetOf(Left, Top, Right), cw: GndTRB},
	GndTRB: {name: "gnd_trb", kind: KindGround, edges: SetOf(Top, Right, Bottom), cw: GndRBL},
	GndRBL: {name: "gnd_rbl", kind: KindGround, edges: SetOf(Right, Bottom, Left), cw: GndBLT},
	GndBLT: {name: "gnd_blt", kind: KindGround, edges: SetOf(Bottom, Left, Top), cw: GndLTR},

	Sw1BL: {name: "sw1_bl", kind: KindSwitch, edges: SetOf(Bottom, Left), cw: Sw1LT, position: 1},
	Sw1LT: {name: "sw1_lt", kind: KindSwitch, edges: SetOf(Left, Top), cw: Sw1TR, position: 1},
	Sw1TR: {name: "sw1_tr", kind: KindSwitch, edges: SetOf(Top, Right), cw: Sw1RB, position: 1},
	Sw1RB: {name: "sw1_rb", kind: KindSwitch, edges: SetOf(Right, Bottom), cw: Sw1BL, position: 1},

	RLedABCR: {name: "rled_ab_cr", kind: KindLED, cw: RLedALCB, led: LED{Red, Bottom, Right}},
	RLedALCB: {name: "rled_al_cb", kind: KindLED, cw: RLedATCL, led: LED{Red, Left, Bottom}},
	RLedATCL: {name: "rled_at_cl", kind: KindLED, cw: RLedARCT, led: LED{Red, Top, Left}},
	RLedARCT: {name: "rled_ar_ct", kind: KindLED, cw: RLedABCR, led: LED{Red, Right, Top}},

	Sw2BT: {name: "sw2_bt", kind: KindSwitch, edges: SetOf(Bottom, Top), cw: Sw2LR, position: 2},
	Sw2LR: {name: "sw2_lr", kind: KindSwitch, edges: SetOf(Left, Right), cw: Sw2TB, position: 2},
	Sw2TB: {name: "sw2_tb", kind: KindSwitch, edges: SetOf(Top, Bottom), cw: Sw2RL, position: 2},
	Sw2RL: {name: "sw2_rl", kind: KindSwitch, edges: SetOf(Right, Left), cw: Sw2BT, position: 2},

	YLedALCR: {name: "yled_al_cr", kind: KindLED, cw: YLedATCB, led: LED{Yellow, Left, Right}},
	YLedATCB: {name: "yled_at_cb", kind: KindLED, cw: YLedARCL, led: LED{Yellow, Top, Bottom}},
	YLedARCL: {name: "yled_ar_cl", kind: KindLED, cw: YLedABCT, led: LED{Yellow, Right, Left}},
	YLedABCT: {name: "yled_ab_ct", kind: KindLED, cw: YLedALCR, led: LED{Yellow, Bottom, Top}},

	Sw3BR: {name: "sw3_br", kind: KindSwitch, edges: SetOf(Bottom, Right), cw: Sw3LB, position: 3},
	Sw3LB: {name: "sw3_lb", kind: KindSwitch, edges: SetOf(Left, Bottom), cw: Sw3TL, position: 3},
	Sw3TL: {name: "sw3_tl", kind: KindSwitch, edges: SetOf(Top, Left), cw: Sw3RT, position: 3},
	Sw3RT: {name: "sw3_rt", kind: KindSwitch, edges: SetOf(Right, Top), cw: Sw3BR, position: 3},

	GLedABCL: {name: "gled_ab_cl", kind: KindLED, cw: GLedALCT, led: LED{Green, Bottom, Left}},
	GLedALCT: {name: "gled_al_ct", kind: KindLED, cw: GLedATCR, led: LED{Green, Left, Top}},
	GLedATCR: {name: "gled_at_cr", kind: KindLED, cw: GLedARCB, led: LED{Green, Top, Right}},
	GLedARCB: {name: "gled_ar_cb", kind: KindLED, cw: GLedABCL, led: LED{Green, Right, Bottom}},

	StraightLR: {name: "straight_lr", kind: KindStraight, edges: SetOf(Left, Right), cw: StraightTB},
	StraightTB: {name: "straight_tb", kind: KindStraight, edges: SetOf(Top, Bottom), cw: StraightLR},

	DoubleCornerTLBR: {name: "dbl_corner_tl_br", kind: KindDoubleCorner, edges: AllEdges, cw: DoubleCornerTRBL,
		paths: [2]EdgeSet{SetOf(Top, Left), SetOf(Bottom, Right)}},
	DoubleCornerTRBL: {name: "dbl_corner_tr_bl", kind: KindDoubleCorner, edges: AllEdges, cw: DoubleCornerTLBR,
		paths: [2]EdgeSet{SetOf(Top, Right), SetOf(Bottom, Left)}},

	CornerBL: {name: "corner_bl", kind: KindCorner, edges: SetOf(Bottom, Left), cw: CornerTL},
	CornerTL: {name: "corner_tl", kind: KindCorner, edges: SetOf(Top, Left), cw: CornerTR},
	CornerTR: {name: "corner_tr", kind: KindCorner, edges: SetOf(Top, Right), cw: CornerBR},
	CornerBR: {name: "corner_br", kind: KindCorner, edges: SetOf(Bottom, Right), cw: CornerBL},

	TeeRBL: {name: "tpiece_rbl", kind: KindTee, edges: SetOf(Right, Bottom, Left), cw: TeeBLT},
	TeeBLT: {name: "tpiece_blt", kind: KindTee, edges: SetOf(Bottom, Left, Top), cw: TeeLTR},
	TeeLTR: {name: "tpiece_ltr", kind: KindTee, edges: SetOf(Left, Top, Right), cw: TeeTRB},
	TeeTRB: {name: "tpiece_trb", kind: KindTee, edges: SetOf(Top, Right, Bottom), cw: TeeRBL},

	Bridge1: {name: "bridge1_tb_lr", kind: KindBridge, edges: AllEdges, cw: Bridge2,
		paths: [2]EdgeSet{SetOf(Top, Bottom), SetOf(Left, Right)}},
	Bridge2: {name: "bridge2_tb_lr", kind: KindBridge, edges: AllEdges, cw: Bridge1,
		paths: [2]EdgeSet{SetOf(Top, Bottom), SetOf(Left, Right)}},

	Blocker: {name: "blocker", kind: KindBlocker, cw: Blocker},

	VccU:          {name: "vcc_u", kind: KindUnknown, cw: VccU, resolve: VccT},
	GndU:          {name: "gnd_u", kind: KindUnknown, cw: GndU, resolve: GndLTR},
	Sw1U:          {name: "sw1_u", kind: KindUnknown, cw: Sw1U, resolve: Sw1BL},
	RLedU:         {name: "rled_u", kind: KindUnknown, cw: RLedU, resolve: RLedABCR},
	Sw2U:          {name: "sw2_u", kind: KindUnknown, cw: Sw2U, resolve: Sw2BT},
	YLedU:         {name: "yled_u", kind: KindUnknown, cw: YLedU, resolve: YLedABCT},
	Sw3U:          {name: "sw3_u", kind: KindUnknown, cw: Sw3U, resolve: Sw3BR},
	GLedU:         {name: "gled_u", kind: KindUnknown, cw: GLedU, resolve: GLedABCL},
	StraightU:     {name: "straight_u", kind: KindUnknown, cw: StraightU, resolve: StraightLR},
	DoubleCornerU: {name: "dbl_corner_u", kind: KindUnknown, cw: DoubleCornerU, resolve: DoubleCornerTLBR},
	CornerU:       {name: "corner_u", kind: KindUnknown, cw: CornerU, resolve: CornerBL},
	TeeU:          {name: "tpiece_u", kind: KindUnknown, cw: TeeU, resolve: TeeRBL},
	BridgeU:       {name: "bridge_u", kind: KindUnknown, cw: BridgeU, resolve: Bridge1},
}

var (
	ccw    [Count]Type
	byName = make(map[string]Type, Count)
)

func init() {
	for i := range table {
		t := Type(i)
		ccw[table[t].cw] = t
		byName[table[t].name] = t
		if table[t].kind == KindLED {
			led := table[t].led
			table[t].edges = SetOf(led.Anode, led.Cathode)
		}
		switch table[t].kind {
		case KindSwitch, KindStraight, KindCorner:
			table[t].paths[0] = table[t].edges
		}
	}
	byName["."] = Blank
}

// Valid reports whether t is a known piece identifier.
func (t Type) Valid() bool {
	return int(t) < Count
}

// Placeable reports whether t is a concrete piece that may sit on the board.
func (t Type) Placeable() bool {
	return int(t) < Placeable
}

// Unknown reports whether t is a placeholder with no chosen rotation.
func (t Type) Unknown() bool {
	return t.Valid() && !t.Placeable()
}

// Kind returns the family t belongs to.
func (t Type) Kind() Kind {
	if !t.Valid() {
		return KindUnknown
	}
	return table[t].kind
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", t)
	}
	return table[t].name
}

// Parse looks up a piece by its lower-case name. "." is accepted for Blank.
func Parse(name string) (Type, error) {
	t, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Blank, fmt.Errorf("piece: unknown piece %q", name)
	}
	return t, nil
}

// All returns every piece type in identifier order.
func All() []Type {
	out := make([]Type, Count)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// IsLED reports whether t is an LED, returning its terminals.
func (t Type) IsLED() (LED, bool) {
	if t.Kind() != KindLED {
		return LED{}, false
	}
	return table[t].led, true
}

// SwitchPosition returns 1, 2 or 3 for switch pieces and 0 otherwise.
func (t Type) SwitchPosition() int {
	if t.Kind() != KindSwitch {
		return 0
	}
	return table[t].position
}
