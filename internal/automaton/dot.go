package automaton

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ExportDOT prints a Graphviz rendering of a to w. Labels of parallel edges
// are merged into one edge.
func ExportDOT(w io.Writer, a *Automaton) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("    rankdir=LR;\n")

	for s := 0; s < a.NumStates; s++ {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    q%d [shape=%s];\n", s, shape)

		labels := map[int][]string{}
		for to := range a.epsilonTargets(s) {
			labels[to] = append(labels[to], "ε")
		}
		for i, sym := range a.Alphabet {
			for to := range a.Targets(s, i) {
				labels[to] = append(labels[to], string(sym))
			}
		}
		targets := make([]int, 0, len(labels))
		for to := range labels {
			targets = append(targets, to)
		}
		sort.Ints(targets)
		for _, to := range targets {
			fmt.Fprintf(&b, "    q%d -> q%d [label=%s];\n", s, to, strconv.Quote(strings.Join(labels[to], ",")))
		}
	}
	if a.NumStates > 0 {
		b.WriteString("    _start [shape=point]; _start -> q0;\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
