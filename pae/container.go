package pae

import (
	"slices"

	"github.com/dhamidi/incipit/mei"
)

// container describes a bracketed layer element: its open and close
// symbols, how to build it and how to name it in messages.
type container struct {
	open, close byte
	name        string
	build       func(*mei.Factory) mei.Node
	// inner is called for tokens inside an open container; it may report.
	inner func(p *Parser, tok *Token) error
}

var (
	beamContainer = container{
		open:  '{',
		close: '}',
		name:  "beam",
		build: func(f *mei.Factory) mei.Node { return f.NewBeam() },
	}
	graceGrpContainer = container{
		open:  'Q',
		close: 'r',
		name:  "grace group",
		build: func(f *mei.Factory) mei.Node { return f.NewGraceGrp() },
		inner: func(p *Parser, tok *Token) error {
			if !tok.In(graceChars) {
				return nil
			}
			if err := p.report(tok, "Grace within a grace group is not supported"); err != nil {
				return err
			}
			tok.consume()
			return nil
		},
	}
)

func (p *Parser) convertBeam() error {
	return p.convertContainer(beamContainer)
}

func (p *Parser) convertGraceGrp() error {
	return p.convertContainer(graceGrpContainer)
}

// convertContainer pairs open and close symbols. Nesting is not
// supported. A container still open at a measure boundary or at the end
// gets a synthetic closing token right before it.
func (p *Parser) convertContainer(c container) error {
	var open mei.Node

	for i := 0; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		if tok.IsVoid() {
			continue
		}
		switch {
		case tok.Char == c.open:
			tok.consume()
			if open != nil {
				if err := p.report(tok, "Nested %ss are not supported", c.name); err != nil {
					return err
				}
				continue
			}
			open = c.build(p.factory)
			tok.own(open)
		case tok.Char == c.close:
			tok.consume()
			if open == nil {
				if err := p.report(tok, "Irrelevant closing %s", c.name); err != nil {
					return err
				}
				continue
			}
			tok.close(open)
			open = nil
		case tok.IsEnd() || tok.Is(mei.KindMeasure):
			if open == nil {
				continue
			}
			if err := p.report(tok, "Unclosed %s at the end of a measure", c.name); err != nil {
				return err
			}
			end := &Token{Position: -1}
			end.close(open)
			p.tokens = slices.Insert(p.tokens, i, end)
			i++
			open = nil
		case open != nil && c.inner != nil:
			if err := c.inner(p, tok); err != nil {
				return err
			}
		}
	}
	return nil
}

// convertGrace marks the note following g (acciaccatura) or q
// (appoggiatura) as a grace note. Octave marks, accidentals and
// durations may come in between.
func (p *Parser) convertGrace() error {
	var graceTok *Token
	acciaccatura := false

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.In(graceChars) {
			if graceTok != nil {
				if err := p.report(tok, "Invalid %c after an unresolved %c", tok.Char, graceTok.Input); err != nil {
					return err
				}
			}
			acciaccatura = tok.Char == 'g'
			graceTok = tok
			tok.consume()
			continue
		}
		if graceTok == nil {
			continue
		}
		if tok.Was(accidChars) || tok.Was(string([]byte{octaveUp, octaveDown})) {
			continue
		}
		if tok.In(durationChars) {
			if acciaccatura {
				if err := p.report(tok, "Extraneous duration for acciaccatura g"); err != nil {
					return err
				}
			}
			continue
		}
		if note, ok := tok.node.(*mei.Note); ok {
			if acciaccatura {
				note.Dur = mei.Dur8
				note.Grace = mei.GraceUnacc
			} else {
				note.Grace = mei.GraceAcc
			}
			note.StemDir = mei.StemUp
		} else if err := p.report(tok, "Grace q or g not followed by a note"); err != nil {
			return err
		}
		graceTok = nil
		acciaccatura = false
	}
	return nil
}
