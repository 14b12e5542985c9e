package automaton

import "fmt"

// MaxLetters is the largest alphabet Letters can build.
const MaxLetters = 26

// Alphabet is an ordered list of input symbols. A symbol's position is its
// column in the transition table.
type Alphabet []rune

// Letters returns the first n lowercase letters starting at 'a'.
func Letters(n int) (Alphabet, error) {
	if n < 0 {
		return nil, fmt.Errorf("alphabet size %d: %w", n, ErrSymbolOutOfRange)
	}
	if n > MaxLetters {
		return nil, fmt.Errorf("alphabet size %d exceeds %d: %w", n, MaxLetters, ErrAlphabetTooLarge)
	}
	alpha := make(Alphabet, n)
	for i := range alpha {
		alpha[i] = rune('a' + i)
	}
	return alpha, nil
}

// MustLetters is Letters for sizes known to be valid.
func MustLetters(n int) Alphabet {
	alpha, err := Letters(n)
	if err != nil {
		panic(err)
	}
	return alpha
}

// Index returns the column of sym.
func (al Alphabet) Index(sym rune) (int, bool) {
	for i, r := range al {
		if r == sym {
			return i, true
		}
	}
	return -1, false
}

// Validate rejects repeated symbols.
func (al Alphabet) Validate() error {
	seen := make(map[rune]struct{}, len(al))
	for _, r := range al {
		if _, dup := seen[r]; dup {
			return fmt.Errorf("symbol %q listed twice: %w", r, ErrSymbolOutOfRange)
		}
		seen[r] = struct{}{}
	}
	return nil
}

func (al Alphabet) String() string { return fmt.Sprintf("%q", string(al)) }
