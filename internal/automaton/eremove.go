package automaton

import "fmt"

// RemoveEpsilons builds an epsilon-free automaton accepting the same language
// as a. State count and alphabet are kept; nothing is pruned or renamed, so
// states unreachable from 0 survive. A move from s on c in the result stands
// for "drift along epsilons from s, then take one c move".
//
// a is not modified.
func RemoveEpsilons(a *Automaton) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("remove epsilons: %w", err)
	}

	// every closure is needed before the first row is built
	closures := Closures(a)

	out := New(a.NumStates, append(Alphabet(nil), a.Alphabet...))
	for s := 0; s < a.NumStates; s++ {
		clo := closures[s]
		if !clo.Has(s) {
			panic(fmt.Sprintf("automaton: closure of %d misses itself: %s", s, clo))
		}
		for i := range a.Alphabet {
			merged := out.Transitions[s][i]
			for q := range clo {
				merged.Union(a.Targets(q, i))
			}
		}
		if clo.Intersects(a.Accepting) {
			out.Accepting.Add(s)
		}
	}
	return out, nil
}
