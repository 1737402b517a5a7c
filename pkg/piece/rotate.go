package piece

// RotateClockwise turns t a quarter turn clockwise. Placeholders, blanks and
// blockers map to themselves; invalid identifiers become Blank.
func RotateClockwise(t Type) Type {
	if !t.Valid() {
		return Blank
	}
	return table[t].cw
}

// RotateCounterClockwise is the inverse of RotateClockwise.
func RotateCounterClockwise(t Type) Type {
	if !t.Valid() {
		return Blank
	}
	return ccw[t]
}

// Rotate turns t clockwise or counter-clockwise.
func Rotate(t Type, clockwise bool) Type {
	if clockwise {
		return RotateClockwise(t)
	}
	return RotateCounterClockwise(t)
}

// Resolve maps a placeholder to its default orientation. Concrete pieces are
// returned as-is and invalid identifiers become Blank.
func Resolve(t Type) Type {
	if !t.Valid() {
		return Blank
	}
	if !t.Unknown() {
		return t
	}
	return table[t].resolve
}

// switchBase holds the first identifier of each switch group, indexed by
// position minus one. Orientation offsets are shared between the groups.
var switchBase = [3]Type{Sw1BL, Sw2BT, Sw3BR}

// ChangeSwitch advances a switch to its next position (1 to 2, 2 to 3, 3 to
// 1) keeping the orientation. Other pieces are returned unchanged.
func ChangeSwitch(t Type) Type {
	pos := t.SwitchPosition()
	if pos == 0 {
		return t
	}
	offset := t - switchBase[pos-1]
	return switchBase[pos%3] + offset
}
