package automaton

import "container/list"

// Closure returns every state reachable from s through zero or more epsilon
// moves, s included. Epsilon cycles are fine: each state is pushed at most once.
func Closure(a *Automaton, s int) StateSet {
	a.checkState(s)
	set := NewStateSet(s)
	stack := list.New()
	stack.PushBack(s)
	for stack.Len() > 0 {
		cur := stack.Remove(stack.Back()).(int)
		for to := range a.epsilonTargets(cur) {
			if !set.Has(to) {
				set.Add(to)
				stack.PushBack(to)
			}
		}
	}
	return set
}

// Closures precomputes Closure for every state of a.
func Closures(a *Automaton) []StateSet {
	out := make([]StateSet, a.NumStates)
	for s := range out {
		out[s] = Closure(a, s)
	}
	return out
}

// closureOf unions the precomputed closures of every state in set.
func closureOf(closures []StateSet, set StateSet) StateSet {
	res := NewStateSet()
	for s := range set {
		res.Union(closures[s])
	}
	return res
}
