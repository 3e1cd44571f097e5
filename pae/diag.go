package pae

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrNoData        = errors.New("no data key in the input")
	ErrInvalidRecord = errors.New("cannot parse the input record")
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a problem reported against one token. Position is the
// offset in the data string, or -1 for synthetic tokens.
type Diagnostic struct {
	Message  string
	Position int
	Symbol   byte
	Severity Severity
}

func (d Diagnostic) Location() string {
	if d.Position < 0 {
		return "(unknown position)"
	}
	return fmt.Sprintf("(character %d)", d.Position)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("PAE: %s %s", d.Message, d.Location())
}

// Error is returned by strict imports for the first diagnostic raised.
type Error struct {
	Diagnostic Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// report records a diagnostic against tok. In strict mode it returns an
// *Error the caller must propagate; in lenient mode it returns nil and the
// caller substitutes a default.
func (p *Parser) report(tok *Token, format string, args ...any) error {
	tok.IsError = true
	d := Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Position: tok.Position,
		Symbol:   tok.Input,
		Severity: SeverityWarning,
	}
	if p.strict {
		d.Severity = SeverityError
	}
	p.diagnostics = append(p.diagnostics, d)

	if p.strict {
		p.log.Errorf("%s", d)
		return &Error{Diagnostic: d}
	}
	p.log.Warningf("%s", d)
	return nil
}
