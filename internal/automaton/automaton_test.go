package automaton

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

// ------------------------------------------------------------------- helpers

type move struct {
	from int
	sym  rune
	to   int
}

func build(t testing.TB, n int, alpha string, accepting []int, eps [][2]int, moves []move) *Automaton {
	t.Helper()
	a := New(n, Alphabet(alpha))
	for _, s := range accepting {
		a.Accepting.Add(s)
	}
	for _, e := range eps {
		a.AddEpsilon(e[0], e[1])
	}
	for _, m := range moves {
		a.AddTransition(m.from, m.sym, m.to)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return a
}

// acceptsFollowingEpsilons resolves epsilons at every step; it is the
// reference the converted automata are checked against.
func acceptsFollowingEpsilons(a *Automaton, input string) bool {
	closures := Closures(a)
	cur := closureOf(closures, NewStateSet(0))
	for _, sym := range input {
		next := NewStateSet()
		for s := range cur {
			next.Union(a.Next(s, sym))
		}
		cur = closureOf(closures, next)
	}
	return cur.Intersects(a.Accepting)
}

func words(alpha string, maxLen int) []string {
	out := []string{""}
	layer := []string{""}
	for l := 0; l < maxLen; l++ {
		var next []string
		for _, w := range layer {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

func mustRemove(t *testing.T, a *Automaton) *Automaton {
	t.Helper()
	nfa, err := RemoveEpsilons(a)
	if err != nil {
		t.Fatalf("remove epsilons: %v", err)
	}
	return nfa
}

func wantSet(t *testing.T, what string, got StateSet, want ...int) {
	t.Helper()
	if !got.Equal(NewStateSet(want...)) {
		t.Fatalf("%s: got %s want %s", what, got, NewStateSet(want...))
	}
}

// fixtures with epsilon moves, all over {a,b}
func epsilonFixtures(t *testing.T) map[string]*Automaton {
	return map[string]*Automaton{
		// a*b*
		"astar-bstar": build(t, 2, "ab", []int{1}, [][2]int{{0, 1}},
			[]move{{0, 'a', 0}, {1, 'b', 1}}),
		// (a|ab)*
		"a-or-ab-star": build(t, 5, "ab", []int{4}, [][2]int{{0, 1}, {0, 4}, {2, 0}, {3, 0}},
			[]move{{1, 'a', 2}, {2, 'b', 3}}),
		// epsilon cycle 0→1→2→0 with an a-loop on 2
		"cycle": build(t, 3, "ab", []int{1}, [][2]int{{0, 1}, {1, 2}, {2, 0}},
			[]move{{2, 'a', 2}}),
		// a(εε)accept, then b back to start
		"chain": build(t, 4, "ab", []int{3}, [][2]int{{1, 2}, {2, 3}},
			[]move{{0, 'a', 1}, {3, 'b', 0}}),
		// unreachable state 3 reaches acceptance only by itself
		"orphan": build(t, 4, "ab", []int{2, 3}, [][2]int{{0, 1}, {3, 3}},
			[]move{{1, 'b', 2}, {2, 'a', 1}, {3, 'a', 0}}),
	}
}

// ------------------------------------------------------------------- closure

func TestClosureSingleton(t *testing.T) {
	a := build(t, 2, "a", nil, nil, []move{{0, 'a', 1}})
	wantSet(t, "closure(0)", Closure(a, 0), 0)
	wantSet(t, "closure(1)", Closure(a, 1), 1)
}

func TestClosureSelfInclusionAndIdempotence(t *testing.T) {
	for name, a := range epsilonFixtures(t) {
		closures := Closures(a)
		for s, clo := range closures {
			if !clo.Has(s) {
				t.Fatalf("%s: closure(%d)=%s misses %d", name, s, clo, s)
			}
			if again := closureOf(closures, clo); !again.Equal(clo) {
				t.Fatalf("%s: closure(%d) not idempotent: %s vs %s", name, s, clo, again)
			}
		}
	}
}

func TestClosureCycle(t *testing.T) {
	a := build(t, 2, "a", []int{1}, [][2]int{{0, 1}, {1, 0}}, nil)
	wantSet(t, "closure(0)", Closure(a, 0), 0, 1)
	wantSet(t, "closure(1)", Closure(a, 1), 0, 1)
}

func TestClosureLongChain(t *testing.T) {
	const n = 100_000
	a := New(n, MustLetters(1))
	for s := 0; s < n; s++ {
		a.AddEpsilon(s, (s+1)%n)
	}
	if got := Closure(a, 0).Len(); got != n {
		t.Fatalf("closure(0) has %d states want %d", got, n)
	}
	if got := Closure(a, n-1).Len(); got != n {
		t.Fatalf("closure(%d) has %d states want %d", n-1, got, n)
	}
}

func TestClosureOutOfRangePanics(t *testing.T) {
	a := New(1, MustLetters(1))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for state 5")
		}
	}()
	Closure(a, 5)
}

// ------------------------------------------------------------------- remove epsilons

func TestRemoveEpsilonsScenario(t *testing.T) {
	a := build(t, 2, "a", []int{1}, [][2]int{{0, 1}}, nil)
	nfa := mustRemove(t, a)

	wantSet(t, "accepting", nfa.Accepting, 0, 1)
	for s := 0; s < 2; s++ {
		wantSet(t, "a-move", nfa.Transitions[s][0])
	}
	if !Accepts(nfa, "") {
		t.Fatal("empty input should be accepted")
	}
	if Accepts(nfa, "a") {
		t.Fatal(`"a" should be rejected`)
	}
}

func TestRemoveEpsilonsMergesMoves(t *testing.T) {
	a := epsilonFixtures(t)["a-or-ab-star"]
	nfa := mustRemove(t, a)

	// closure(0) = {0,1,4}; 1 --a--> 2
	wantSet(t, "0 on a", nfa.Transitions[0][0], 2)
	// closure(2) = {0,1,2,4}; a from 1, b from 2
	wantSet(t, "2 on a", nfa.Transitions[2][0], 2)
	wantSet(t, "2 on b", nfa.Transitions[2][1], 3)
	wantSet(t, "accepting", nfa.Accepting, 0, 2, 3, 4)
}

func TestRemoveEpsilonsShape(t *testing.T) {
	for name, a := range epsilonFixtures(t) {
		before := dot(t, a)
		nfa := mustRemove(t, a)
		if nfa.NumStates != a.NumStates {
			t.Fatalf("%s: states %d want %d", name, nfa.NumStates, a.NumStates)
		}
		if string(nfa.Alphabet) != string(a.Alphabet) {
			t.Fatalf("%s: alphabet %s want %s", name, nfa.Alphabet, a.Alphabet)
		}
		if nfa.HasEpsilons() {
			t.Fatalf("%s: epsilon moves left", name)
		}
		if after := dot(t, a); after != before {
			t.Fatalf("%s: input mutated", name)
		}
	}
}

func TestRemoveEpsilonsLanguageEquivalence(t *testing.T) {
	for name, a := range epsilonFixtures(t) {
		nfa := mustRemove(t, a)
		for _, w := range words("ab", 6) {
			want := acceptsFollowingEpsilons(a, w)
			if got := Accepts(nfa, w); got != want {
				t.Fatalf("%s on %q: converted %v want %v", name, w, got, want)
			}
		}
	}
}

func TestRemoveEpsilonsNoPruning(t *testing.T) {
	a := epsilonFixtures(t)["orphan"]
	nfa := mustRemove(t, a)
	if Reachable(nfa).Has(3) {
		t.Fatal("state 3 should be unreachable")
	}
	if !nfa.IsAccepting(3) || !nfa.Transitions[3][0].Has(0) {
		t.Fatalf("unreachable state 3 lost its data: %v", nfa.Transitions[3])
	}
}

func TestRemoveEpsilonsRejectsBadState(t *testing.T) {
	a := New(2, MustLetters(1))
	a.AddEpsilon(0, 7)
	if _, err := RemoveEpsilons(a); !errors.Is(err, ErrStateOutOfRange) {
		t.Fatalf("want ErrStateOutOfRange got %v", err)
	}
}

// ------------------------------------------------------------------- simulate

// same table as the hand-written NFA used to cross-check the simulator
func sampleNFA(t testing.TB) *Automaton {
	return build(t, 8, "ab", []int{0, 1, 3, 4, 7}, nil, []move{
		{0, 'a', 2}, {0, 'a', 5},
		{1, 'a', 2},
		{2, 'b', 3},
		{3, 'a', 2},
		{4, 'a', 5},
		{5, 'b', 6},
		{6, 'a', 7},
		{7, 'a', 5},
	})
}

func TestAcceptsSample(t *testing.T) {
	nfa := sampleNFA(t)
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"a", false},
		{"ab", true},
		{"aba", true},
		{"abab", true},
		{"ababab", true},
		{"abababa", false},
		{"abaabaaba", true},
		{"abaab", false},
		{"b", false},
		{"bb", false},
	}
	for _, c := range cases {
		if got := Accepts(nfa, c.in); got != c.want {
			t.Fatalf("%q: got %v want %v", c.in, got, c.want)
		}
	}
}

func TestAcceptsSelfLoopScenario(t *testing.T) {
	nfa := build(t, 2, "a", []int{1}, nil, []move{{0, 'a', 0}, {0, 'a', 1}})
	if Accepts(nfa, "") {
		t.Fatal("empty input: state 0 is not accepting")
	}
	if !Accepts(nfa, "a") {
		t.Fatal(`"a": frontier {0,1} meets accepting`)
	}
	// from {0,1}: 0 --a--> {0,1}, 1 has no move
	if !Accepts(nfa, "aa") {
		t.Fatal(`"aa": frontier stays {0,1}`)
	}
	if Accepts(nfa, "ab") {
		t.Fatal(`"ab": b is not in the alphabet`)
	}
}

func TestAcceptsShortCircuit(t *testing.T) {
	nfa := sampleNFA(t)
	for _, dead := range []string{"b", "abb", "abaaa"} {
		r := NewRunner(nfa)
		stoppedAt := -1
		for i, sym := range dead {
			if !r.Step(sym) {
				stoppedAt = i
				break
			}
		}
		if stoppedAt < 0 {
			t.Fatalf("%q: frontier should empty", dead)
		}
		if f := r.Frontier(); f.Len() != 0 {
			t.Fatalf("%q: frontier %s after dead prefix", dead, f)
		}
		if r.Step('a') || r.Consumed() != stoppedAt+1 {
			t.Fatalf("%q: runner kept moving after empty frontier (%s)", dead, r)
		}
		for _, suffix := range words("ab", 3) {
			if Accepts(nfa, dead+suffix) {
				t.Fatalf("%q+%q accepted after dead prefix", dead, suffix)
			}
		}
	}
}

func TestAcceptsIgnoresEpsilons(t *testing.T) {
	a := build(t, 2, "a", []int{1}, [][2]int{{0, 1}}, nil)
	if Accepts(a, "") {
		t.Fatal("simulator must not follow epsilon moves")
	}
}

func TestAcceptsNoStates(t *testing.T) {
	a := New(0, MustLetters(2))
	if Accepts(a, "") || Accepts(a, "ab") {
		t.Fatal("automaton without states accepts nothing")
	}
}

func TestAcceptsConcurrent(t *testing.T) {
	nfa := sampleNFA(t)
	ws := words("ab", 5)
	want := make([]bool, len(ws))
	for i, w := range ws {
		want[i] = Accepts(nfa, w)
	}
	var wg sync.WaitGroup
	errs := make(chan string, len(ws))
	for i, w := range ws {
		wg.Add(1)
		go func(i int, w string) {
			defer wg.Done()
			if Accepts(nfa, w) != want[i] {
				errs <- w
			}
		}(i, w)
	}
	wg.Wait()
	close(errs)
	for w := range errs {
		t.Fatalf("concurrent run disagrees on %q", w)
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	if !Trace(&buf, sampleNFA(t), "ab") {
		t.Fatal(`"ab" should be accepted`)
	}
	want := "after 0: {0}\n'a' after 1: {2,5}\n'b' after 2: {3,6}\n"
	if buf.String() != want {
		t.Fatalf("trace:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if Trace(&buf, sampleNFA(t), "bab") {
		t.Fatal(`"bab" should be rejected`)
	}
	if !strings.HasSuffix(buf.String(), "frontier empty\n") {
		t.Fatalf("trace should stop on empty frontier:\n%s", buf.String())
	}
}

func TestRunnerFrontier(t *testing.T) {
	r := NewRunner(sampleNFA(t))
	if !r.Frontier().Equal(NewStateSet(0)) {
		t.Fatalf("start frontier %s", r.Frontier())
	}
	r.Step('a')
	f := r.Frontier()
	if !f.Equal(NewStateSet(2, 5)) {
		t.Fatalf("after 'a': %s", f)
	}
	f.Add(7)
	if r.Frontier().Has(7) {
		t.Fatal("Frontier must return a copy")
	}
}

// ------------------------------------------------------------------- determinize

func TestDeterminizeEquivalence(t *testing.T) {
	fixtures := epsilonFixtures(t)
	fixtures["sample"] = sampleNFA(t)
	for name, a := range fixtures {
		d, err := Determinize(a)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for s := 0; s < d.NumStates; s++ {
			for i := range d.Alphabet {
				if d.Targets(s, i).Len() > 1 {
					t.Fatalf("%s: state %d not deterministic on %q", name, s, d.Alphabet[i])
				}
			}
		}
		for _, w := range words("ab", 6) {
			if got, want := Accepts(d, w), acceptsFollowingEpsilons(a, w); got != want {
				t.Fatalf("%s on %q: dfa %v want %v", name, w, got, want)
			}
		}
	}
}

// ------------------------------------------------------------------- witness, dot

func TestShortestWitness(t *testing.T) {
	if w, ok := ShortestWitness(sampleNFA(t)); !ok || w != "" {
		t.Fatalf("sample: got %q %v", w, ok)
	}
	chain := mustRemove(t, epsilonFixtures(t)["chain"])
	if w, ok := ShortestWitness(chain); !ok || w != "a" {
		t.Fatalf("chain: got %q %v", w, ok)
	}
	ab := build(t, 3, "ab", []int{2}, nil, []move{{0, 'a', 1}, {1, 'b', 2}, {0, 'b', 0}})
	if w, ok := ShortestWitness(ab); !ok || w != "ab" {
		t.Fatalf("ab: got %q %v", w, ok)
	}
	empty := build(t, 2, "a", nil, nil, []move{{0, 'a', 1}})
	if _, ok := ShortestWitness(empty); ok {
		t.Fatal("no accepting states means no witness")
	}
}

func dot(t *testing.T, a *Automaton) string {
	t.Helper()
	var buf bytes.Buffer
	if err := ExportDOT(&buf, a); err != nil {
		t.Fatalf("dot: %v", err)
	}
	return buf.String()
}

func TestExportDOT(t *testing.T) {
	out := dot(t, build(t, 2, "ab", []int{1}, [][2]int{{0, 1}}, []move{{0, 'a', 1}, {1, 'b', 1}}))
	for _, want := range []string{
		"q0 [shape=circle];",
		"q1 [shape=doublecircle];",
		`q0 -> q1 [label="ε,a"];`,
		`q1 -> q1 [label="b"];`,
		"_start -> q0;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestExportDOTEscapesLabels(t *testing.T) {
	a := New(2, Alphabet(`"\`))
	a.AddTransition(0, '"', 1)
	a.AddTransition(0, '\\', 1)
	if out := dot(t, a); !strings.Contains(out, `q0 -> q1 [label="\",\\"];`) {
		t.Fatalf("labels not escaped:\n%s", out)
	}
}

// ------------------------------------------------------------------- validate

func TestValidate(t *testing.T) {
	a := New(2, MustLetters(1))
	a.Accepting.Add(2)
	if err := a.Validate(); !errors.Is(err, ErrStateOutOfRange) {
		t.Fatalf("accepting 2: want ErrStateOutOfRange got %v", err)
	}
	if _, err := Letters(27); !errors.Is(err, ErrAlphabetTooLarge) {
		t.Fatalf("27 letters: want ErrAlphabetTooLarge got %v", err)
	}
	if err := Alphabet("aba").Validate(); !errors.Is(err, ErrSymbolOutOfRange) {
		t.Fatalf("repeated symbol: want ErrSymbolOutOfRange got %v", err)
	}
}

// ------------------------------------------------------------------- bench

func BenchmarkAcceptsLongInput(b *testing.B) {
	nfa := sampleNFA(b)
	in := "a" + strings.Repeat("ba", 500_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Accepts(nfa, in)
	}
}
