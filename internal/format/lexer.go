package format

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokEOL lexer.TokenType = iota + 1
	tokInt
	tokIdent
	tokPunct
)

// textLexer tokenizes the automaton description for the participle grammar.
// Runs of newlines become a single EOL; blanks and '#' comments are dropped.
type textLexer struct {
	lm *lexmachine.Lexer
}

var _ lexer.Definition = (*textLexer)(nil)

func newTextLexer() (*textLexer, error) {
	lm := lexmachine.NewLexer()
	lm.Add([]byte(`[ \t]+`), skip)
	lm.Add([]byte(`#[^\n]*`), skip)
	lm.Add([]byte(`[\r\n]+`), tokAction(tokEOL))
	lm.Add([]byte(`[0-9]+`), tokAction(tokInt))
	lm.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), tokAction(tokIdent))
	lm.Add([]byte(`[{},:]`), tokAction(tokPunct))
	if err := lm.Compile(); err != nil {
		return nil, err
	}
	return &textLexer{lm: lm}, nil
}

func mustTextLexer() *textLexer {
	l, err := newTextLexer()
	if err != nil {
		panic(err)
	}
	return l
}

func (l *textLexer) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":   lexer.EOF,
		"EOL":   tokEOL,
		"Int":   tokInt,
		"Ident": tokIdent,
		"Punct": tokPunct,
	}
}

func (l *textLexer) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return l.LexBytes(filename, data)
}

func (l *textLexer) LexBytes(filename string, data []byte) (lexer.Lexer, error) {
	scanner, err := l.lm.Scanner(data)
	if err != nil {
		return nil, err
	}
	return &tokenStream{filename: filename, scanner: scanner, end: len(data)}, nil
}

type tokenStream struct {
	filename string
	scanner  *lexmachine.Scanner
	end      int
	last     lexer.TokenType
	done     bool
}

func (ts *tokenStream) Next() (lexer.Token, error) {
	for {
		if ts.done {
			return lexer.EOFToken(ts.eofPos()), nil
		}
		tok, err, eof := ts.scanner.Next()
		if err != nil {
			return lexer.Token{}, fmt.Errorf("%s: %w", ts.filename, err)
		}
		if eof {
			ts.done = true
			// the last line may lack its newline
			if ts.last != 0 && ts.last != tokEOL {
				ts.last = tokEOL
				return lexer.Token{Type: tokEOL, Value: "\n", Pos: ts.eofPos()}, nil
			}
			continue
		}
		t, ok := tok.(lexer.Token)
		if !ok {
			continue
		}
		if t.Type == tokEOL && (ts.last == 0 || ts.last == tokEOL) {
			continue
		}
		t.Pos.Filename = ts.filename
		ts.last = t.Type
		return t, nil
	}
}

func (ts *tokenStream) eofPos() lexer.Position {
	return lexer.Position{Filename: ts.filename, Offset: ts.end}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(typ lexer.TokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lexer.Token{
			Type:  typ,
			Value: string(m.Bytes),
			Pos: lexer.Position{
				Offset: m.TC,
				Line:   m.StartLine,
				Column: m.StartColumn,
			},
		}, nil
	}
}
