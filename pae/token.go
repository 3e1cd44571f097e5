package pae

import (
	"strings"

	"github.com/dhamidi/incipit/mei"
)

// Internal symbols. The lexer strips them from the input so they can
// never collide with user data.
const (
	containerEnd = '~'
	void         = '_'
)

const (
	internalChars = "QXY" + string(containerEnd) + string(void)
	octaveUp      = '\''
	octaveDown    = ','
	keySigStart   = '$'
	keySigChars   = "xnb[]ABCDEFG"
	clefStart     = '%'
	clefChars     = "GCFg-+12345"
	meterStart    = '@'
	meterChars    = "/o.c0123456789"
	graceChars    = "qg"
	noteNames     = "ABCDEFG"
	durationChars = "0123456789."
	accidChars    = "xbnXY"
	measureChars  = ":/"
)

// Token is one addressable unit of the lexed input.
//
// Char is the symbol still available to the passes; it is cleared once a
// pass consumes it. Input is the symbol as it appeared in the input and is
// never changed. A token owns at most one node; a container end token
// instead refers to the node of its opening token without owning it.
type Token struct {
	Char     byte
	Input    byte
	Position int
	IsError  bool

	node   mei.Node
	closes mei.Node
}

func newToken(c byte, position int) *Token {
	return &Token{Char: c, Input: c, Position: position}
}

// Node returns the node owned by the token, or nil.
func (t *Token) Node() mei.Node { return t.node }

// Closes returns the container closed by the token, or nil.
func (t *Token) Closes() mei.Node { return t.closes }

// Object returns the owned node or, for container ends, the closed one.
func (t *Token) Object() mei.Node {
	if t.node != nil {
		return t.node
	}
	return t.closes
}

func (t *Token) IsVoid() bool         { return t.Char == void }
func (t *Token) IsSpace() bool        { return t.Char == ' ' }
func (t *Token) IsContainerEnd() bool { return t.closes != nil && t.Char == containerEnd }
func (t *Token) IsEnd() bool          { return t.Object() == nil && t.Char == containerEnd }

// Is reports whether the token owns a node of one of the given kinds.
func (t *Token) Is(kinds ...mei.Kind) bool {
	return t.node != nil && t.node.Kind().Is(kinds...)
}

// In reports whether the current symbol is one of chars.
func (t *Token) In(chars string) bool {
	return t.Char != 0 && strings.IndexByte(chars, t.Char) >= 0
}

// Was reports whether the input symbol is one of chars.
func (t *Token) Was(chars string) bool {
	return t.Input != 0 && strings.IndexByte(chars, t.Input) >= 0
}

// Name returns the kind of the token object, for messages.
func (t *Token) Name() string {
	if o := t.Object(); o != nil {
		return strings.ToLower(o.Kind().String())
	}
	return "?"
}

func (t *Token) consume() {
	t.Char = 0
}

func (t *Token) own(n mei.Node) {
	t.node = n
}

func (t *Token) close(n mei.Node) {
	t.Char = containerEnd
	t.closes = n
}

// take hands the owned node over to the caller and clears the slot.
func (t *Token) take() mei.Node {
	n := t.node
	t.node = nil
	t.closes = nil
	return n
}
