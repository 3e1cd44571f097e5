package pae

import "strings"

type symbol struct {
	c   byte
	pos int
}

// Lexer turns the data string into tokens. Doubled symbols (qq, xx, bb)
// are merged into one internal marker followed by a void token that keeps
// the second input symbol and its position.
type Lexer struct {
	input   []symbol
	pos     int
	pending *Token
	done    bool
}

var doubled = map[byte]byte{
	'q': 'Q',
	'x': 'X',
	'b': 'Y',
}

func NewLexer(data string) *Lexer {
	l := &Lexer{}
	for i := 0; i < len(data); i++ {
		c := data[i]
		if strings.IndexByte(internalChars, c) >= 0 {
			continue
		}
		l.input = append(l.input, symbol{c: c, pos: i})
	}
	return l
}

func (l *Lexer) peek() (symbol, bool) {
	if l.pos >= len(l.input) {
		return symbol{}, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) peekN(n int) (symbol, bool) {
	if l.pos+n >= len(l.input) {
		return symbol{}, false
	}
	return l.input[l.pos+n], true
}

// NextToken returns the next token. Once the input is exhausted it
// returns the end sentinel, then nil.
func (l *Lexer) NextToken() *Token {
	if l.pending != nil {
		tok := l.pending
		l.pending = nil
		return tok
	}
	s, ok := l.peek()
	if !ok {
		if l.done {
			return nil
		}
		l.done = true
		return newToken(containerEnd, -1)
	}
	l.pos++
	marker, isDoubled := doubled[s.c]
	if next, ok := l.peekN(0); isDoubled && ok && next.c == s.c {
		l.pos++
		tok := newToken(marker, s.pos)
		tok.Input = s.c
		l.pending = &Token{Char: void, Input: next.c, Position: next.pos}
		return tok
	}
	return newToken(s.c, s.pos)
}

// Tokenize returns every token up to and including the end sentinel.
func (l *Lexer) Tokenize() []*Token {
	var tokens []*Token
	for {
		tok := l.NextToken()
		if tok == nil {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
