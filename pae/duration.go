package pae

import (
	"github.com/dhamidi/incipit/mei"
)

type rhythm struct {
	dur  byte
	dots int
}

var cmnDurations = map[byte]mei.Duration{
	'0': mei.DurLong,
	'1': mei.Dur1,
	'2': mei.Dur2,
	'3': mei.Dur32,
	'4': mei.Dur4,
	'5': mei.Dur64,
	'6': mei.Dur16,
	'7': mei.Dur128,
	'8': mei.Dur8,
	'9': mei.DurBreve,
}

var mensuralDurations = map[byte]mei.Duration{
	'0': mei.DurLonga,
	'1': mei.DurSemibrevis,
	'2': mei.DurMinima,
	'4': mei.DurSemiminima,
	'6': mei.DurSemifusa,
	'8': mei.DurFusa,
	'9': mei.DurBrevis,
}

// convertDuration reads rhythmic patterns. A run of duration symbols
// replaces the current pattern, which then cycles over the following
// notes and rests. Numbers after ';' belong to tuplets and are left
// alone.
func (p *Parser) convertDuration() error {
	var pattern []rhythm
	next := 0
	reading := false
	tuplet := false

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.Char == ';' {
			tuplet = true
			reading = false
			continue
		}
		if tuplet && tok.In("0123456789") {
			continue
		}
		tuplet = false

		if tok.In(durationChars) {
			if !reading {
				pattern = pattern[:0]
				next = 0
				reading = true
			}
			if tok.Char == '.' {
				if len(pattern) == 0 {
					if err := p.report(tok, "Dot without a duration"); err != nil {
						return err
					}
				} else {
					pattern[len(pattern)-1].dots++
				}
			} else {
				pattern = append(pattern, rhythm{dur: tok.Char})
			}
			tok.consume()
			continue
		}
		reading = false

		if len(pattern) == 0 {
			continue
		}
		switch n := tok.node.(type) {
		case *mei.Note:
			if n.Grace == mei.GraceUnacc {
				continue
			}
			dur, err := p.duration(pattern[next], tok)
			if err != nil {
				return err
			}
			n.Dur, n.Dots = dur, pattern[next].dots
		case *mei.Rest:
			dur, err := p.duration(pattern[next], tok)
			if err != nil {
				return err
			}
			n.Dur, n.Dots = dur, pattern[next].dots
		default:
			continue
		}
		next = (next + 1) % len(pattern)
	}
	return nil
}

func (p *Parser) duration(r rhythm, tok *Token) (mei.Duration, error) {
	if !p.mensural {
		return cmnDurations[r.dur], nil
	}
	if dur, ok := mensuralDurations[r.dur]; ok {
		return dur, nil
	}
	if err := p.report(tok, "Unsupported mensural duration %c", r.dur); err != nil {
		return mei.DurNone, err
	}
	return mei.DurBrevis, nil
}

// convertTie turns '+' after a note into a tie to the next note. The
// '+' may follow a trill, a closing fermata of the note or the end of
// the beam or grace group holding it.
func (p *Parser) convertTie() error {
	var last mei.Node
	var open *mei.Tie
	var openTok *Token

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.Char == 0 && tok.node == nil {
			continue
		}
		if tok.Is(mei.KindNote) {
			if open != nil {
				open.End = tok.node
				open, openTok = nil, nil
			}
			last = tok.node
			continue
		}
		if tok.Char == '+' {
			tok.consume()
			if last == nil {
				if err := p.report(tok, "Invalid + not after a note"); err != nil {
					return err
				}
				continue
			}
			open = p.factory.NewTie(last, nil)
			openTok = tok
			tok.own(open)
			last = nil
			continue
		}
		if tok.Is(mei.KindTrill, mei.KindFermata) || tok.IsContainerEnd() {
			continue
		}
		last = nil
	}

	if open != nil {
		openTok.take()
		p.release(open)
		if err := p.report(openTok, "Missing note to end the tie"); err != nil {
			return err
		}
	}
	return nil
}
