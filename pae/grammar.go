package pae

import (
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// bodyGrammar describes the fixed sub-grammars of the incipit code: the
// bodies following the clef, meter and barline markers. Key signatures
// and notes are context dependent and are parsed by the passes directly.
const bodyGrammar = `
Body       = Barline | MeterSig | Mensur | Clef .

Barline    = "://:" | "://" | "//:" | "//" | "/" .

MeterSig   = Number [ "/" Number ] | "c" [ "3" [ "/" "2" ] ] | "c/" .

Mensur     = Number [ "/" Number ] | Sign [ Mark ] [ Mark ] [ Number ] [ "/" [ Number ] ] .
Sign       = "c" | "o" .
Mark       = "." | "/" .

Clef       = Shape ( "-" | "+" ) Line .
Shape      = "G" | "C" | "F" | "g" .
Line       = "1" … "5" .

Number     = Digit { Digit } .
Digit      = "0" … "9" .
`

var bodies = mustLoadGrammar("body.ebnf", bodyGrammar, "Body")

// Grammar matches strings against the productions of an EBNF grammar.
type Grammar struct {
	grammar ebnf.Grammar
}

// LoadGrammar parses and verifies an EBNF grammar starting at start.
func LoadGrammar(filename, src, start string) (*Grammar, error) {
	grammar, err := ebnf.Parse(filename, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return &Grammar{grammar: grammar}, nil
}

func mustLoadGrammar(filename, src, start string) *Grammar {
	g, err := LoadGrammar(filename, src, start)
	if err != nil {
		panic(err)
	}
	return g
}

// Match reports whether the whole of input is derived by production.
func (g *Grammar) Match(production, input string) bool {
	m := &matcher{
		grammar:  g.grammar,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	return m.matchName(production, 0) == len(input)
}

type memoKey struct {
	name   string
	offset int
}

// matcher is a greedy, non-backtracking recognizer. Match lengths are
// -1 when an expression does not match, so that empty options and
// repetitions can be told apart from failures.
type matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func (m *matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return m.matchToken(e.String, offset)

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

func (m *matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	// Left recursion never matches.
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}
	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = n
	return n
}

func (m *matcher) matchToken(s string, offset int) int {
	if strings.HasPrefix(m.input[offset:], s) {
		return len(s)
	}
	return -1
}

func (m *matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) || len(begin) != 1 || len(end) != 1 {
		return -1
	}
	if c := m.input[offset]; c >= begin[0] && c <= end[0] {
		return 1
	}
	return -1
}
