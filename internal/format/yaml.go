package format

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"nfakit/internal/automaton"
)

type yamlDocument struct {
	States       int       `yaml:"states"`
	AlphabetSize int       `yaml:"alphabet_size"`
	Alphabet     string    `yaml:"alphabet,omitempty"` // defaults to a, b, c...
	Accepting    []int     `yaml:"accepting"`
	Rows         []yamlRow `yaml:"rows"`
}

type yamlRow struct {
	Epsilon []int            `yaml:"epsilon,omitempty"`
	On      map[string][]int `yaml:"on,omitempty"`
}

// ParseYAML reads an automaton from a YAML document. Unknown keys are errors.
func ParseYAML(name string, r io.Reader) (*automaton.Automaton, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc yamlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, name)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	a, err := doc.automaton()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	return a, nil
}

func (doc *yamlDocument) alphabet() (automaton.Alphabet, error) {
	if doc.Alphabet == "" {
		return automaton.Letters(doc.AlphabetSize)
	}
	alpha := automaton.Alphabet(doc.Alphabet)
	if len(alpha) != doc.AlphabetSize {
		return nil, fmt.Errorf("alphabet %q has %d symbols, alphabet_size says %d: %w",
			doc.Alphabet, len(alpha), doc.AlphabetSize, automaton.ErrSymbolOutOfRange)
	}
	return alpha, alpha.Validate()
}

func (doc *yamlDocument) automaton() (*automaton.Automaton, error) {
	n := doc.States
	if n < 0 {
		return nil, fmt.Errorf("negative state count %d", n)
	}
	alpha, err := doc.alphabet()
	if err != nil {
		return nil, err
	}
	if len(doc.Rows) != n {
		return nil, fmt.Errorf("%d rows for %d states", len(doc.Rows), n)
	}

	check := func(where string, id int) error {
		if id < 0 || id >= n {
			return fmt.Errorf("%s: state %d outside [0,%d): %w", where, id, n, automaton.ErrStateOutOfRange)
		}
		return nil
	}

	a := automaton.New(n, alpha)
	for _, id := range doc.Accepting {
		if err := check("accepting", id); err != nil {
			return nil, err
		}
		a.Accepting.Add(id)
	}
	for s, row := range doc.Rows {
		where := fmt.Sprintf("rows[%d]", s)
		for _, to := range row.Epsilon {
			if err := check(where+".epsilon", to); err != nil {
				return nil, err
			}
			a.AddEpsilon(s, to)
		}
		for key, targets := range row.On {
			sym, size := utf8.DecodeRuneInString(key)
			if size != len(key) {
				return nil, fmt.Errorf("%s.on: key %q is not a single symbol: %w", where, key, automaton.ErrSymbolOutOfRange)
			}
			if _, ok := alpha.Index(sym); !ok {
				return nil, fmt.Errorf("%s.on: %q not in alphabet %s: %w", where, key, alpha, automaton.ErrSymbolOutOfRange)
			}
			for _, to := range targets {
				if err := check(where+".on."+key, to); err != nil {
					return nil, err
				}
				a.AddTransition(s, sym, to)
			}
		}
	}
	return a, nil
}

// WriteYAML writes a as a YAML document. Empty sets are left out.
func WriteYAML(w io.Writer, a *automaton.Automaton) error {
	doc := yamlDocument{
		States:       a.NumStates,
		AlphabetSize: len(a.Alphabet),
		Accepting:    a.Accepting.Sorted(),
		Rows:         make([]yamlRow, a.NumStates),
	}
	if !isLetters(a.Alphabet) {
		doc.Alphabet = string(a.Alphabet)
	}
	for s := range doc.Rows {
		row := &doc.Rows[s]
		if s < len(a.Epsilon) && len(a.Epsilon[s]) > 0 {
			row.Epsilon = a.Epsilon[s].Sorted()
		}
		for i, sym := range a.Alphabet {
			targets := a.Targets(s, i)
			if len(targets) == 0 {
				continue
			}
			if row.On == nil {
				row.On = map[string][]int{}
			}
			row.On[string(sym)] = targets.Sorted()
		}
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
