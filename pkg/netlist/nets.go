package netlist

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Net is a set of terminals that share one conductive path.
type Net struct {
	ID    int    `json:"id"`
	Nodes []Node `json:"nodes"`
}

// MarshalJSON writes node names rather than numbers.
func (n *Net) MarshalJSON() ([]byte, error) {
	names := make([]string, len(n.Nodes))
	for i, node := range n.Nodes {
		names[i] = node.String()
	}
	return json.Marshal(struct {
		ID    int      `json:"id"`
		Nodes []string `json:"nodes"`
	}{n.ID, names})
}

// Nets groups terminals into nets using union-find over the pairs of a
// Matrix.
type Nets struct {
	parent [NodeCount]Node
	rank   [NodeCount]int

	// Groups holds nets of two or more nodes, ordered by their lowest node.
	Groups []*Net
	short  bool
	key    Key
}

// NewNets builds the nets of m.
func NewNets(m Matrix) *Nets {
	ns := &Nets{short: m.ShortCircuit(), key: m.Pack()}
	for i := range ns.parent {
		ns.parent[i] = Node(i)
	}
	for a := 0; a < NodeCount; a++ {
		for b := a + 1; b < NodeCount; b++ {
			if m[a][b] || m[b][a] {
				ns.Connect(Node(a), Node(b))
			}
		}
	}
	ns.finalize()
	return ns
}

// Connect merges the nets of a and b.
func (ns *Nets) Connect(a, b Node) {
	rootA := ns.Find(a)
	rootB := ns.Find(b)
	if rootA == rootB {
		return
	}

	// Union by rank
	switch {
	case ns.rank[rootA] < ns.rank[rootB]:
		ns.parent[rootA] = rootB
	case ns.rank[rootA] > ns.rank[rootB]:
		ns.parent[rootB] = rootA
	default:
		ns.parent[rootB] = rootA
		ns.rank[rootA]++
	}
}

// Find returns the representative node of n's net, compressing the path on
// the way.
func (ns *Nets) Find(n Node) Node {
	root := n
	for ns.parent[root] != root {
		root = ns.parent[root]
	}
	for n != root {
		next := ns.parent[n]
		ns.parent[n] = root
		n = next
	}
	return root
}

// SameNet reports whether a and b are electrically joined, directly or
// through other terminals.
func (ns *Nets) SameNet(a, b Node) bool {
	return ns.Find(a) == ns.Find(b)
}

func (ns *Nets) finalize() {
	groups := make(map[Node][]Node)
	for i := 0; i < NodeCount; i++ {
		root := ns.Find(Node(i))
		groups[root] = append(groups[root], Node(i))
	}

	ns.Groups = ns.Groups[:0]
	for _, nodes := range groups {
		if len(nodes) < 2 {
			continue
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
		ns.Groups = append(ns.Groups, &Net{Nodes: nodes})
	}
	sort.Slice(ns.Groups, func(i, j int) bool {
		return ns.Groups[i].Nodes[0] < ns.Groups[j].Nodes[0]
	})
	for i, net := range ns.Groups {
		net.ID = i
	}
}

// Count returns the number of multi-node nets.
func (ns *Nets) Count() int {
	return len(ns.Groups)
}

// ExportJSON renders the nets, the packed key and the short flag as JSON.
func (ns *Nets) ExportJSON() ([]byte, error) {
	output := struct {
		Version  string `json:"version"`
		Key      string `json:"key"`
		Short    bool   `json:"short_circuit"`
		NetCount int    `json:"net_count"`
		Nets     []*Net `json:"nets"`
	}{
		Version:  "1.0",
		Key:      ns.key.String(),
		Short:    ns.short,
		NetCount: ns.Count(),
		Nets:     ns.Groups,
	}
	if output.Nets == nil {
		output.Nets = []*Net{}
	}
	return json.MarshalIndent(output, "", "  ")
}

// nodeComponent names the board part a terminal belongs to and its pin.
var nodeComponent = [NodeCount]struct{ ref, pin string }{
	VV:  {"VCC1", "+"},
	GND: {"GND1", "-"},
	RA:  {"D1", "A"},
	RC:  {"D1", "K"},
	YA:  {"D2", "A"},
	YC:  {"D2", "K"},
	GA:  {"D3", "A"},
	GC:  {"D3", "K"},
}

// ExportKiCad renders the nets in a simplified KiCad netlist format.
func (ns *Nets) ExportKiCad() string {
	var b strings.Builder
	b.WriteString("(export (version D)\n")
	b.WriteString("  (design\n")
	fmt.Fprintf(&b, "    (source \"circuit netlist %s\")\n", ns.key)
	b.WriteString("  )\n")
	b.WriteString("  (components\n")
	seen := make(map[string]bool)
	for _, net := range ns.Groups {
		for _, n := range net.Nodes {
			ref := nodeComponent[n].ref
			if seen[ref] {
				continue
			}
			seen[ref] = true
			fmt.Fprintf(&b, "    (comp (ref %s))\n", ref)
		}
	}
	b.WriteString("  )\n")
	b.WriteString("  (nets\n")
	for _, net := range ns.Groups {
		fmt.Fprintf(&b, "    (net (code %d) (name Net-%d)\n", net.ID, net.ID)
		for _, n := range net.Nodes {
			fmt.Fprintf(&b, "      (node (ref %s) (pin %s))\n", nodeComponent[n].ref, nodeComponent[n].pin)
		}
		b.WriteString("    )\n")
	}
	b.WriteString("  )\n")
	b.WriteString(")\n")
	return b.String()
}
