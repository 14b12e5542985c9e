package automaton

// ShortestWitness returns a shortest word accepted by the epsilon-free
// automaton a, found by breadth-first search from state 0. The second result
// is false when the language is empty.
func ShortestWitness(a *Automaton) (string, bool) {
	if a.NumStates == 0 {
		return "", false
	}
	type node struct {
		state int
		word  []rune
	}
	visited := map[int]bool{0: true}
	q := []node{{state: 0}}
	for len(q) > 0 {
		cur := q[0]
		q = q[1:]
		if a.IsAccepting(cur.state) {
			return string(cur.word), true
		}
		for i, sym := range a.Alphabet {
			for _, to := range a.Targets(cur.state, i).Sorted() {
				if visited[to] {
					continue
				}
				visited[to] = true
				w := append(append([]rune{}, cur.word...), sym)
				q = append(q, node{to, w})
			}
		}
	}
	return "", false
}

// Reachable returns the states reachable from 0 through symbol and epsilon
// moves. It only reports; RemoveEpsilons never prunes.
func Reachable(a *Automaton) StateSet {
	seen := NewStateSet()
	if a.NumStates == 0 {
		return seen
	}
	seen.Add(0)
	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit := func(set StateSet) {
			for to := range set {
				if !seen.Has(to) {
					seen.Add(to)
					stack = append(stack, to)
				}
			}
		}
		visit(a.epsilonTargets(cur))
		for i := range a.Alphabet {
			visit(a.Targets(cur, i))
		}
	}
	return seen
}
