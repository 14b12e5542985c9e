package automaton

import (
	"fmt"
	"io"
)

// Runner walks an epsilon-free automaton one symbol at a time, keeping the
// frontier of states consistent with the input consumed so far.
//
// Epsilon moves are not followed. Run RemoveEpsilons first on automata that
// have them, otherwise the runner under-accepts.
type Runner struct {
	a        *Automaton
	frontier StateSet
	consumed int
}

// NewRunner positions a runner on the start state. An automaton with no
// states starts with an empty frontier.
func NewRunner(a *Automaton) *Runner {
	r := &Runner{a: a, frontier: NewStateSet()}
	if a.NumStates > 0 {
		r.frontier.Add(0)
	}
	return r
}

// Step consumes sym. It returns false once the frontier is empty; further
// steps are no-ops.
func (r *Runner) Step(sym rune) bool {
	if len(r.frontier) == 0 {
		return false
	}
	next := NewStateSet()
	if i, ok := r.a.Alphabet.Index(sym); ok {
		for s := range r.frontier {
			next.Union(r.a.Targets(s, i))
		}
	}
	r.frontier = next
	r.consumed++
	return len(next) > 0
}

// Frontier returns a copy of the current frontier.
func (r *Runner) Frontier() StateSet { return r.frontier.Clone() }

// Accepting reports whether the frontier meets the accepting set.
func (r *Runner) Accepting() bool { return r.frontier.Intersects(r.a.Accepting) }

// Consumed is the number of symbols stepped so far.
func (r *Runner) Consumed() int { return r.consumed }

func (r *Runner) String() string {
	return fmt.Sprintf("after %d: %s", r.consumed, r.frontier)
}

// Accepts reports whether a accepts input. Rejection is reported as soon as
// the frontier empties; the rest of the input is not read.
func Accepts(a *Automaton, input string) bool {
	r := NewRunner(a)
	for _, sym := range input {
		if !r.Step(sym) {
			return false
		}
	}
	return r.Accepting()
}

// Trace behaves like Accepts and writes the frontier after every step to w.
func Trace(w io.Writer, a *Automaton, input string) bool {
	r := NewRunner(a)
	fmt.Fprintln(w, r)
	for _, sym := range input {
		ok := r.Step(sym)
		fmt.Fprintf(w, "%q %s\n", sym, r)
		if !ok {
			fmt.Fprintln(w, "frontier empty")
			return false
		}
	}
	return r.Accepting()
}
