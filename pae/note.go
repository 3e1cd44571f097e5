package pae

import (
	"github.com/dhamidi/incipit/mei"
)

func (p *Parser) convertPitch() error {
	for _, tok := range p.tokens {
		if tok.IsVoid() || !tok.In(noteNames) {
			continue
		}
		tok.own(p.factory.NewNote(mei.PitchFromLetter(tok.Char)))
		tok.consume()
	}
	return nil
}

// convertOctave applies the rolling octave to every note. A run of
// apostrophes starts at octave 4 and a run of commas at octave 3, each
// repetition moving one octave further. Notes also get a provisional
// eighth duration.
func (p *Parser) convertOctave() error {
	oct := 4
	var reading byte

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		switch tok.Char {
		case octaveUp:
			if reading != octaveUp {
				oct = 4
				reading = octaveUp
			} else {
				oct++
			}
			tok.consume()
		case octaveDown:
			if reading != octaveDown {
				oct = 3
				reading = octaveDown
			} else {
				oct--
			}
			tok.consume()
		default:
			reading = 0
		}

		if note, ok := tok.node.(*mei.Note); ok {
			note.Oct = oct
			note.Dur = mei.Dur8
		}
	}
	return nil
}

// convertTrill attaches t to the preceding note, looking through a
// closing fermata or a tie.
func (p *Parser) convertTrill() error {
	var note mei.Node

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.Is(mei.KindNote) {
			note = tok.node
			continue
		}
		if tok.Char == 't' {
			tok.consume()
			if note != nil {
				tok.own(p.factory.NewTrill(note))
			} else if err := p.report(tok, "Invalid t not after a note"); err != nil {
				return err
			}
			note = nil
			continue
		}
		if note != nil && (tok.Char == ')' || tok.Char == '+') {
			continue
		}
		note = nil
	}
	return nil
}

// convertFermata reads "(" target ")". The same parentheses delimit
// tuplets, so an opening parenthesis not directly followed by a note,
// rest or measure rest is left alone without a diagnostic.
func (p *Parser) convertFermata() error {
	var fermataTok *Token
	var target mei.Node

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.Char == '(' {
			if fermataTok != nil {
				if err := p.report(tok, "Invalid ( after a ("); err != nil {
					return err
				}
			}
			fermataTok = tok
			target = nil
			continue
		}
		if fermataTok == nil {
			continue
		}
		if target == nil {
			// Rests are built later by convertRest; a fermata needs one now.
			if tok.Char == '-' {
				tok.own(p.newRest())
				tok.consume()
			}
			if tok.Is(mei.KindMRest, mei.KindNote, mei.KindRest) {
				target = tok.node
				continue
			}
			fermataTok = nil
			continue
		}
		switch {
		case tok.Char == ')':
			fermataTok.own(p.factory.NewFermata(target))
			fermataTok.consume()
			tok.consume()
			fermataTok = nil
			target = nil
		case target.Kind() == mei.KindNote && tok.Is(mei.KindTrill):
			continue
		case target.Kind() == mei.KindMRest && tok.Was("0123456789"):
			// Guidelines allow a single = in a fermata, but (=1) is common.
			if err := p.report(tok, "Fermata on measure rest with extraneous %c", tok.Input); err != nil {
				return err
			}
		default:
			fermataTok = nil
			target = nil
		}
	}
	return nil
}

var accidentals = map[byte]mei.Accidental{
	'x': mei.AccidSharp,
	'b': mei.AccidFlat,
	'n': mei.AccidNatural,
	'X': mei.AccidDoubleSharp,
	'Y': mei.AccidDoubleFlat,
}

// convertAccidental attaches an accidental to the following note,
// possibly through a fermata. Within a measure, later notes of the same
// pitch name carry the accidental as a gestural one.
func (p *Parser) convertAccidental() error {
	accid := mei.AccidNone
	current := map[mei.Pitch]mei.Accidental{}

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.In(accidChars) {
			accid = accidentals[tok.Char]
			tok.consume()
			continue
		}
		note, isNote := tok.node.(*mei.Note)
		if accid != mei.AccidNone {
			switch {
			case isNote:
				if err := mei.Attach(note, p.factory.NewAccid(accid)); err != nil {
					return err
				}
				if accid == mei.AccidNatural {
					delete(current, note.Pname)
				} else {
					current[note.Pname] = accid
				}
				accid = mei.AccidNone
				continue
			case tok.Is(mei.KindFermata):
				continue
			default:
				if err := p.report(tok, "Missing note after an accidental"); err != nil {
					return err
				}
				accid = mei.AccidNone
			}
		}
		if tok.Is(mei.KindMeasure) {
			clear(current)
			continue
		}
		if isNote {
			if a, ok := current[note.Pname]; ok {
				note.AccidGes = a
			}
		}
	}
	return nil
}

func (p *Parser) convertRest() error {
	for _, tok := range p.tokens {
		if tok.IsVoid() || tok.Char != '-' {
			continue
		}
		tok.own(p.newRest())
		tok.consume()
	}
	return nil
}

func (p *Parser) newRest() *mei.Rest {
	rest := p.factory.NewRest()
	rest.Dur = mei.Dur8
	return rest
}
