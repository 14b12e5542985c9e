// Package automaton holds the finite-automaton model shared by the epsilon
// removal and simulation pipelines.
//
// State 0 is always the start state. An Automaton is built once and then only
// read; operations that change it (RemoveEpsilons, Determinize) return a new
// value.
package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// StateSet is an unordered set of state ids.
type StateSet map[int]struct{}

func NewStateSet(ids ...int) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s StateSet) Add(id int) { s[id] = struct{}{} }

func (s StateSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s StateSet) Len() int { return len(s) }

// Union adds every element of o to s.
func (s StateSet) Union(o StateSet) {
	for id := range o {
		s[id] = struct{}{}
	}
}

func (s StateSet) Intersects(o StateSet) bool {
	small, big := s, o
	if len(small) > len(big) {
		small, big = big, small
	}
	for id := range small {
		if big.Has(id) {
			return true
		}
	}
	return false
}

func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	c.Union(s)
	return c
}

// Sorted returns the ids in ascending order.
func (s StateSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s StateSet) String() string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ------------------------------------------------------------------- Automaton

type Automaton struct {
	NumStates int
	Alphabet  Alphabet
	Accepting StateSet

	// Epsilon[s] holds the targets of single epsilon moves out of s.
	Epsilon []StateSet
	// Transitions[s][i] holds the targets of s on Alphabet[i].
	Transitions [][]StateSet
}

// New returns an automaton with numStates states, no accepting states and
// every transition cell present but empty.
func New(numStates int, alpha Alphabet) *Automaton {
	a := &Automaton{
		NumStates:   numStates,
		Alphabet:    alpha,
		Accepting:   NewStateSet(),
		Epsilon:     make([]StateSet, numStates),
		Transitions: make([][]StateSet, numStates),
	}
	for s := 0; s < numStates; s++ {
		a.Epsilon[s] = NewStateSet()
		a.Transitions[s] = make([]StateSet, len(alpha))
		for i := range alpha {
			a.Transitions[s][i] = NewStateSet()
		}
	}
	return a
}

// AddTransition records from --sym--> to. It panics if sym is not in the
// alphabet; loaders check symbols before calling it.
func (a *Automaton) AddTransition(from int, sym rune, to int) {
	i, ok := a.Alphabet.Index(sym)
	if !ok {
		panic(fmt.Sprintf("automaton: symbol %q not in alphabet %s", sym, a.Alphabet))
	}
	a.cell(from, i).Add(to)
}

func (a *Automaton) AddEpsilon(from, to int) {
	if a.Epsilon[from] == nil {
		a.Epsilon[from] = NewStateSet()
	}
	a.Epsilon[from].Add(to)
}

func (a *Automaton) cell(s, i int) StateSet {
	if a.Transitions[s] == nil {
		a.Transitions[s] = make([]StateSet, len(a.Alphabet))
	}
	if a.Transitions[s][i] == nil {
		a.Transitions[s][i] = NewStateSet()
	}
	return a.Transitions[s][i]
}

// Targets returns the states reachable from s on symbol index i. A missing
// cell reads as the empty set.
func (a *Automaton) Targets(s, i int) StateSet {
	if s >= len(a.Transitions) || i >= len(a.Transitions[s]) {
		return nil
	}
	return a.Transitions[s][i]
}

// Next is Targets keyed by symbol. Unknown symbols yield the empty set.
func (a *Automaton) Next(s int, sym rune) StateSet {
	i, ok := a.Alphabet.Index(sym)
	if !ok {
		return nil
	}
	return a.Targets(s, i)
}

func (a *Automaton) epsilonTargets(s int) StateSet {
	if s >= len(a.Epsilon) {
		return nil
	}
	return a.Epsilon[s]
}

func (a *Automaton) IsAccepting(s int) bool { return a.Accepting.Has(s) }

// HasEpsilons reports whether any state still carries an epsilon move.
func (a *Automaton) HasEpsilons() bool {
	for _, eps := range a.Epsilon {
		if len(eps) > 0 {
			return true
		}
	}
	return false
}

// Validate checks that every state id lies in [0, NumStates) and that the
// transition table has no more columns than the alphabet.
func (a *Automaton) Validate() error {
	if a.NumStates < 0 {
		return fmt.Errorf("negative state count %d", a.NumStates)
	}
	if err := a.Alphabet.Validate(); err != nil {
		return err
	}
	check := func(where string, set StateSet) error {
		for id := range set {
			if id < 0 || id >= a.NumStates {
				return fmt.Errorf("%s: state %d: %w", where, id, ErrStateOutOfRange)
			}
		}
		return nil
	}
	if err := check("accepting states", a.Accepting); err != nil {
		return err
	}
	if len(a.Epsilon) > a.NumStates || len(a.Transitions) > a.NumStates {
		return fmt.Errorf("transition table has more rows than %d states: %w", a.NumStates, ErrStateOutOfRange)
	}
	for s, eps := range a.Epsilon {
		if err := check(fmt.Sprintf("state %d epsilon moves", s), eps); err != nil {
			return err
		}
	}
	for s, row := range a.Transitions {
		if len(row) > len(a.Alphabet) {
			return fmt.Errorf("state %d has %d symbol columns for alphabet of %d: %w",
				s, len(row), len(a.Alphabet), ErrSymbolOutOfRange)
		}
		for i, set := range row {
			if err := check(fmt.Sprintf("state %d on %q", s, a.Alphabet[i]), set); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Automaton) checkState(s int) {
	if s < 0 || s >= a.NumStates {
		panic(fmt.Sprintf("automaton: state %d outside [0,%d)", s, a.NumStates))
	}
}
