package automaton

import "fmt"

// Determinize runs the subset construction from state 0. Only subsets reachable
// from the start are built; empty subsets are left out, so a missing move
// means rejection. Every transition set of the result has at most one element.
func Determinize(a *Automaton) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("determinize: %w", err)
	}
	alpha := append(Alphabet(nil), a.Alphabet...)
	if a.NumStates == 0 {
		return New(0, alpha), nil
	}

	closures := Closures(a)
	key := func(set StateSet) string { return set.String() }

	initSet := closures[0].Clone()
	ids := map[string]int{key(initSet): 0}
	subsets := []StateSet{initSet}
	type edge struct{ from, sym, to int }
	var edges []edge

	for queue := []int{0}; len(queue) > 0; queue = queue[1:] {
		cur := queue[0]
		for i := range alpha {
			move := NewStateSet()
			for q := range subsets[cur] {
				move.Union(a.Targets(q, i))
			}
			if len(move) == 0 {
				continue
			}
			clo := closureOf(closures, move)
			k := key(clo)
			id, seen := ids[k]
			if !seen {
				id = len(subsets)
				ids[k] = id
				subsets = append(subsets, clo)
				queue = append(queue, id)
			}
			edges = append(edges, edge{cur, i, id})
		}
	}

	d := New(len(subsets), alpha)
	for id, set := range subsets {
		if set.Intersects(a.Accepting) {
			d.Accepting.Add(id)
		}
	}
	for _, e := range edges {
		d.Transitions[e.from][e.sym].Add(e.to)
	}
	return d, nil
}
