package automaton

import "errors"

var (
	ErrStateOutOfRange  = errors.New("state id out of range")
	ErrSymbolOutOfRange = errors.New("symbol outside alphabet")
	ErrAlphabetTooLarge = errors.New("alphabet too large")
)
