package oracle

import (
	"github.com/zyedidia/generic/avl"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

// Variants returns e followed by its five color permutations. The first
// entry inserted for a key wins, so the order matters when two permutations
// pack to the same key.
func Variants(e Entry) [6]Entry {
	yrg := e.SwapColors(piece.Red, piece.Yellow)
	gyr := e.SwapColors(piece.Red, piece.Green)
	rgy := e.SwapColors(piece.Yellow, piece.Green)
	return [6]Entry{
		e,
		yrg,
		gyr,
		rgy,
		rgy.SwapColors(piece.Red, piece.Green),
		yrg.SwapColors(piece.Red, piece.Green),
	}
}

// Generate expands seeds into a sorted table. Seeds are processed in order
// and the first entry seen for a key is kept.
func Generate(seeds []Entry) Table {
	tree := avl.New[netlist.Key, Entry](func(a, b netlist.Key) bool { return a < b })
	for _, s := range seeds {
		for _, v := range Variants(s) {
			if _, ok := tree.Get(v.Key()); ok {
				continue
			}
			tree.Put(v.Key(), v)
		}
	}

	t := make(Table, 0, tree.Size())
	tree.Each(func(_ netlist.Key, e Entry) {
		t = append(t, e)
	})
	return t
}
