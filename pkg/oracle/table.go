package oracle

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// ErrUnsorted is returned when table keys are not strictly ascending.
var ErrUnsorted = errors.New("oracle: keys not strictly ascending")

const ledShift = 29

// Entry packs a netlist key in its low 27 bits and the lit LEDs in its top
// three bits.
type Entry uint32

// NewEntry combines a key and an LED vector.
func NewEntry(k netlist.Key, leds LEDs) Entry {
	return Entry(uint32(k&netlist.KeyMask) | uint32(leds&AllOn)<<ledShift)
}

// Key returns the netlist part of e.
func (e Entry) Key() netlist.Key {
	return netlist.Key(e) & netlist.KeyMask
}

// LEDs returns the LED part of e.
func (e Entry) LEDs() LEDs {
	return LEDs(uint32(e) >> ledShift)
}

// SwapColors exchanges two LED colors in both the netlist and the LED
// vector.
func (e Entry) SwapColors(a, b piece.Color) Entry {
	m := netlist.SwapColors(netlist.Unpack(e.Key()), a, b)
	return NewEntry(m.Pack(), e.LEDs().Swap(a, b))
}

func (e Entry) String() string {
	return fmt.Sprintf("0x%08x", uint32(e))
}

// Table is a sorted, duplicate-free list of entries.
type Table []Entry

// Lookup returns the LEDs lit for key k, or AllOff when k is not in the
// table.
func (t Table) Lookup(k netlist.Key) LEDs {
	i := sort.Search(len(t), func(i int) bool { return t[i].Key() >= k })
	if i < len(t) && t[i].Key() == k {
		return t[i].LEDs()
	}
	return AllOff
}

// Contains reports whether k has an entry.
func (t Table) Contains(k netlist.Key) bool {
	i := sort.Search(len(t), func(i int) bool { return t[i].Key() >= k })
	return i < len(t) && t[i].Key() == k
}

// Validate checks that keys are strictly ascending.
func (t Table) Validate() error {
	for i := 1; i < len(t); i++ {
		if t[i-1].Key() >= t[i].Key() {
			return fmt.Errorf("%w: entry %d (%s) after %s", ErrUnsorted, i, t[i], t[i-1])
		}
	}
	return nil
}

// Parse reads a table asset: one hexadecimal entry per line, optionally
// followed by a comma. Blank lines and lines starting with "#" or "//" are
// skipped.
func Parse(r io.Reader) (Table, error) {
	var t Table
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//") {
			continue
		}
		text = strings.TrimSuffix(text, ",")
		v, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("oracle: line %d: %w", line, err)
		}
		t = append(t, Entry(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("oracle: read: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Write renders t in the format Parse reads.
func (t Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range t {
		if _, err := fmt.Fprintf(bw, "%s,\n", e); err != nil {
			return err
		}
	}
	return bw.Flush()
}

//go:embed netlists.inc
var asset string

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// Default returns the embedded table. It is parsed once and shared; callers
// must not modify it.
func Default() Table {
	defaultOnce.Do(func() {
		t, err := Parse(strings.NewReader(asset))
		if err != nil {
			panic(fmt.Sprintf("oracle: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}
