package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"nfakit/internal/automaton"
)

// Text layout:
//
//	Number of states: 3
//	Alphabet size: 2
//	Accepting states: 2
//	{1} {} {}
//	{} {1,2} {0}
//	{} {} {}
//
// Labels before ':' are optional. Blank lines are dropped by the lexer, so an
// empty unlabelled accepting line is the same as no accepting line at all.
// Each state row holds the epsilon set and then one set per symbol, in
// alphabet order.
type textDocument struct {
	States    *countLine  `parser:"@@"`
	Alphabet  *countLine  `parser:"@@"`
	Accepting *acceptLine `parser:"@@?"`
	Rows      []*textRow  `parser:"@@*"`
}

type countLine struct {
	Pos   lexer.Position
	Label []string `parser:"(@Ident+ ':')?"`
	Value int      `parser:"@Int EOL"`
}

type acceptLine struct {
	Pos    lexer.Position
	Label  []string `parser:"(@Ident+ ':')?"`
	States []int    `parser:"@Int* EOL"`
}

type textRow struct {
	Pos  lexer.Position
	Sets []*stateList `parser:"@@+ EOL"`
}

// empty items are skipped, so "{1,,2,}" reads as {1,2}
type stateList struct {
	States []int `parser:"'{' ( @Int | ',' )* '}'"`
}

var textParser = participle.MustBuild[textDocument](
	participle.Lexer(mustTextLexer()),
)

// ParseText reads an automaton in the text layout. name is used in error
// positions only.
func ParseText(name string, r io.Reader) (*automaton.Automaton, error) {
	doc, err := textParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return doc.automaton()
}

func (doc *textDocument) automaton() (*automaton.Automaton, error) {
	n := doc.States.Value
	alpha, err := automaton.Letters(doc.Alphabet.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, doc.Alphabet.Pos, err)
	}
	if len(doc.Rows) != n {
		return nil, fmt.Errorf("%w: %s: %d state rows for %d states", ErrMalformed, doc.States.Pos, len(doc.Rows), n)
	}

	a := automaton.New(n, alpha)
	if doc.Accepting != nil {
		for _, id := range doc.Accepting.States {
			if err := checkState(doc.Accepting.Pos.String(), id, n); err != nil {
				return nil, err
			}
			a.Accepting.Add(id)
		}
	}
	for s, row := range doc.Rows {
		if len(row.Sets) != len(alpha)+1 {
			return nil, fmt.Errorf("%w: %s: state %d has %d sets, want %d (epsilon + %d symbols): %w",
				ErrMalformed, row.Pos, s, len(row.Sets), len(alpha)+1, len(alpha), automaton.ErrSymbolOutOfRange)
		}
		for _, to := range row.Sets[0].States {
			if err := checkState(row.Pos.String(), to, n); err != nil {
				return nil, err
			}
			a.AddEpsilon(s, to)
		}
		for i, set := range row.Sets[1:] {
			for _, to := range set.States {
				if err := checkState(row.Pos.String(), to, n); err != nil {
					return nil, err
				}
				a.AddTransition(s, alpha[i], to)
			}
		}
	}
	return a, nil
}

func checkState(where string, id, n int) error {
	if id < 0 || id >= n {
		return fmt.Errorf("%w: %s: state %d outside [0,%d): %w", ErrMalformed, where, id, n, automaton.ErrStateOutOfRange)
	}
	return nil
}

// WriteText writes a in the text layout, sets sorted ascending.
func WriteText(w io.Writer, a *automaton.Automaton) error {
	if !isLetters(a.Alphabet) {
		return fmt.Errorf("text layout needs symbols a, b, c...; got %s: %w", a.Alphabet, ErrUnsupported)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Number of states: %d\n", a.NumStates)
	fmt.Fprintf(&b, "Alphabet size: %d\n", len(a.Alphabet))
	b.WriteString("Accepting states:")
	for _, s := range a.Accepting.Sorted() {
		fmt.Fprintf(&b, " %d", s)
	}
	b.WriteString("\n")

	for s := 0; s < a.NumStates; s++ {
		var eps automaton.StateSet
		if s < len(a.Epsilon) {
			eps = a.Epsilon[s]
		}
		b.WriteString(eps.String())
		for i := range a.Alphabet {
			b.WriteString(" ")
			b.WriteString(a.Targets(s, i).String())
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func isLetters(alpha automaton.Alphabet) bool {
	for i, r := range alpha {
		if r != rune('a'+i) {
			return false
		}
	}
	return len(alpha) <= automaton.MaxLetters
}
