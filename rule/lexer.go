package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Lexical token categories of rule notation. Everything that is not an
// arrow, a context slash or whitespace is a word; words carry their own
// inner syntax (quantifier suffixes, negation, choices, …) which the
// parser unpacks.
const (
	tokArrow = iota + 1
	tokSlash
	tokWord
)

type lexeme struct {
	typ  int
	text string
}

// skip is a lexmachine action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// emit wraps a scanned match into a token of the given category.
func emit(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

var lexerOnce struct {
	sync.Once
	lexer *lexmachine.Lexer
	err   error
}

// ruleLexer compiles the rule DFA once per process. Arrow patterns come
// before the word pattern so that equal-length matches resolve to the
// arrow.
func ruleLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer := lexmachine.NewLexer()
		lexer.Add([]byte(`( |\t|\r|\n)+`), skip)
		lexer.Add([]byte(`->`), emit(tokArrow))
		lexer.Add([]byte(`>`), emit(tokArrow))
		lexer.Add([]byte(`→`), emit(tokArrow))
		lexer.Add([]byte(`/`), emit(tokSlash))
		lexer.Add([]byte(`[^ \t\r\n/>]+`), emit(tokWord))
		if err := lexer.Compile(); err != nil {
			tracer().Errorf("error compiling rule DFA: %v", err)
			lexerOnce.err = err
			return
		}
		lexerOnce.lexer = lexer
	})
	return lexerOnce.lexer, lexerOnce.err
}

// lexRule scans rule text into arrow/slash/word lexemes.
func lexRule(input string) ([]lexeme, error) {
	lexer, err := ruleLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var out []lexeme
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				scanner.TC = ui.FailTC
				tracer().Debugf("skipping unconsumed input at %d", ui.FailTC)
				continue
			}
			return nil, err
		}
		token := tok.(*lexmachine.Token)
		out = append(out, lexeme{typ: token.Type, text: string(token.Lexeme)})
	}
	return out, nil
}
