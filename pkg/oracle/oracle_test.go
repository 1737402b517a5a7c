package oracle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	assert.Len(t, tbl, 283)
	assert.NoError(t, tbl.Validate())
	assert.Same(t, &Default()[0], &tbl[0], "table should be parsed once")
}

func TestGenerateMatchesEmbedded(t *testing.T) {
	assert.Len(t, Seeds, 97)
	assert.Equal(t, Default(), Generate(Seeds))
}

func TestLookup(t *testing.T) {
	tbl := Default()

	tests := []struct {
		key  netlist.Key
		want LEDs
	}{
		{0x04080000, RedOn},
		{0x01020000, YellowOn},
		{0x00408000, GreenOn},
		{0x00000000, AllOff},
		{0x07FFFFFF, AllOff},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.Lookup(tt.key))
		})
	}
	assert.True(t, tbl.Contains(0x04080000))
	assert.False(t, tbl.Contains(0))
}

func TestEntry(t *testing.T) {
	e := NewEntry(0x04080000, RedOn)
	assert.Equal(t, Entry(0x24080000), e)
	assert.Equal(t, netlist.Key(0x04080000), e.Key())
	assert.Equal(t, RedOn, e.LEDs())
	assert.Equal(t, "0x24080000", e.String())

	// out-of-range bits are masked
	assert.Equal(t, Entry(0x24080000), NewEntry(0xFC080000, RedOn|0x08))
}

func TestSwapColors(t *testing.T) {
	red := NewEntry(0x04080000, RedOn)

	yellow := red.SwapColors(piece.Red, piece.Yellow)
	assert.Equal(t, Entry(0x41020000), yellow)

	green := red.SwapColors(piece.Red, piece.Green)
	assert.Equal(t, Entry(0x80408000), green)

	assert.Equal(t, red, yellow.SwapColors(piece.Yellow, piece.Red))
	assert.Equal(t, red, red.SwapColors(piece.Yellow, piece.Green))
}

func TestVariants(t *testing.T) {
	v := Variants(NewEntry(0x04080000, RedOn))
	assert.Equal(t, NewEntry(0x04080000, RedOn), v[0])

	seen := map[LEDs]bool{}
	for _, e := range v {
		seen[e.LEDs()] = true
		assert.Equal(t, 1, countBits(e.LEDs()))
	}
	assert.Len(t, seen, 3)
}

func countBits(l LEDs) int {
	n := 0
	for ; l != 0; l &= l - 1 {
		n++
	}
	return n
}

func TestGenerateFirstWins(t *testing.T) {
	a := NewEntry(0x04080000, RedOn)
	b := NewEntry(0x04080000, AllOn)
	tbl := Generate([]Entry{a, b})
	assert.Equal(t, RedOn, tbl.Lookup(0x04080000))
	assert.NoError(t, tbl.Validate())
}

func TestLEDs(t *testing.T) {
	assert.Equal(t, "off", AllOff.String())
	assert.Equal(t, "red", RedOn.String())
	assert.Equal(t, "red+green", (RedOn | GreenOn).String())
	assert.Equal(t, "invalid", LEDs(0xFF).String())

	assert.Equal(t, YellowOn|GreenOn, (RedOn | GreenOn).Swap(piece.Red, piece.Yellow))
	assert.Equal(t, AllOn, AllOn.Swap(piece.Red, piece.Green))
	assert.True(t, GreenOn.On(piece.Green))
	assert.False(t, GreenOn.On(piece.Red))
}

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader("# header\n0x41020001,\n\n// note\n0x24080000\n"))
	require.NoError(t, err)
	assert.Equal(t, Table{0x41020001, 0x24080000}, tbl)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("0x24080000,\n0x41020000,\n"))
	assert.ErrorIs(t, err, ErrUnsorted)

	_, err = Parse(strings.NewReader("0x24080000,\n0x44080000,\n"))
	assert.ErrorIs(t, err, ErrUnsorted, "duplicate keys")

	_, err = Parse(strings.NewReader("0x24080000,\nbogus,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Write(&buf))
	assert.Equal(t, asset, buf.String())

	back, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default(), back)
}
