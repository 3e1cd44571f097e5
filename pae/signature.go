package pae

import (
	"strconv"
	"strings"

	"github.com/dhamidi/incipit/mei"
)

// convertBody recognizes a start marker followed by a run of body
// symbols terminated by a space. build receives the start token, which
// must own the new node, the body and the terminating token.
func (p *Parser) convertBody(start byte, chars, what string, build func(start *Token, body string, end *Token) error) error {
	var startTok *Token
	var body []byte

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if startTok != nil {
			if tok.In(chars) {
				body = append(body, tok.Char)
				tok.consume()
				continue
			}
			if !tok.IsSpace() {
				if err := p.report(tok, "Missing ' ' after a %s change", what); err != nil {
					return err
				}
			}
			startTok.consume()
			if err := build(startTok, string(body), tok); err != nil {
				return err
			}
			startTok = nil
		}
		if tok.Char == start {
			startTok = tok
			body = body[:0]
		}
	}
	return nil
}

func (p *Parser) convertKeySig() error {
	return p.convertBody(keySigStart, keySigChars, "key signature", func(start *Token, body string, end *Token) error {
		keySig := p.factory.NewKeySig()
		start.own(keySig)
		return p.parseKeySig(keySig, body, end)
	})
}

func (p *Parser) convertClef() error {
	return p.convertBody(clefStart, clefChars, "clef", func(start *Token, body string, end *Token) error {
		clef := p.factory.NewClef()
		start.own(clef)
		return p.parseClef(clef, body, end)
	})
}

func (p *Parser) convertMeterSigOrMensur() error {
	return p.convertBody(meterStart, meterChars, "meter signature", func(start *Token, body string, end *Token) error {
		if p.mensural {
			mensur := p.factory.NewMensur()
			start.own(mensur)
			return p.parseMensur(mensur, body, end)
		}
		meterSig := p.factory.NewMeterSig()
		start.own(meterSig)
		return p.parseMeterSig(meterSig, body, end)
	})
}

// convertRecord parses the clef, keysig and timesig record values into
// the initial score definition.
func (p *Parser) convertRecord(doc *mei.Doc, rec Record) error {
	if value, ok := rec[KeyClef]; ok && value != "" {
		clef := p.factory.NewClef()
		if err := p.parseClef(clef, value, &Token{Input: clefStart, Position: -1}); err != nil {
			p.release(clef)
			return err
		}
		if err := mei.Attach(doc.ScoreDef, clef); err != nil {
			return err
		}
	}
	if value, ok := rec[KeyKeySig]; ok && value != "" {
		keySig := p.factory.NewKeySig()
		if err := p.parseKeySig(keySig, value, &Token{Input: keySigStart, Position: -1}); err != nil {
			p.release(keySig)
			return err
		}
		if err := mei.Attach(doc.ScoreDef, keySig); err != nil {
			return err
		}
	}
	if value, ok := rec[KeyTimeSig]; ok && value != "" {
		tok := &Token{Input: meterStart, Position: -1}
		var n mei.Node
		var err error
		if p.mensural {
			mensur := p.factory.NewMensur()
			n, err = mensur, p.parseMensur(mensur, value, tok)
		} else {
			meterSig := p.factory.NewMeterSig()
			n, err = meterSig, p.parseMeterSig(meterSig, value, tok)
		}
		if err != nil {
			p.release(n)
			return err
		}
		if err := mei.Attach(doc.ScoreDef, n); err != nil {
			return err
		}
	}
	return nil
}

// parseKeySig reads a run of b/x/n, note letters and brackets. Any
// bracket turns the signature into individual, possibly enclosed,
// key accidentals.
func (p *Parser) parseKeySig(keySig *mei.KeySig, body string, tok *Token) error {
	count := 0
	accid := mei.AccidNone
	enclosed := false
	hasEnclosed := false
	cancel := false
	var enclosure [7]bool

	for i := 0; i < len(body); i++ {
		switch c := body[i]; c {
		case 'b':
			count = 0
			accid = mei.AccidFlat
		case 'x':
			count = 0
			accid = mei.AccidSharp
		case 'n':
			count = 0
			cancel = true
		case '[':
			enclosed = true
			hasEnclosed = true
		case ']':
			enclosed = false
		case 'A', 'B', 'C', 'D', 'E', 'F', 'G':
			if count < len(enclosure) {
				enclosure[count] = enclosed
				count++
			}
		default:
			if err := p.report(tok, "Unsupported key signature symbol '%c'", c); err != nil {
				return err
			}
		}
	}

	keySig.ShowChange = cancel
	if accid == mei.AccidNone {
		keySig.Count = 0
		keySig.Accid = mei.AccidNatural
		return nil
	}
	if !hasEnclosed {
		keySig.Count = count
		keySig.Accid = accid
		return nil
	}
	order := mei.SharpOrder
	if accid == mei.AccidFlat {
		order = mei.FlatOrder
	}
	for i := 0; i < count; i++ {
		keyAccid := p.factory.NewKeyAccid(order[i], accid)
		keyAccid.Enclosed = enclosure[i]
		if err := mei.Attach(keySig, keyAccid); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseClef(clef *mei.Clef, body string, tok *Token) error {
	if !bodies.Match("Clef", body) {
		msg := "Clef content cannot be parsed (G-2 in non pedantic mode)"
		if len(body) >= 3 {
			msg = "Undefined clef '" + body + "' (G-2 in non pedantic mode)"
		}
		if err := p.report(tok, "%s", msg); err != nil {
			return err
		}
		clef.Shape = mei.ClefG
		clef.Line = 2
		return nil
	}

	clef.Line = int(body[2] - '0')
	clef.Mensural = body[1] == '+'
	switch body[0] {
	case 'G':
		clef.Shape = mei.ClefG
	case 'C':
		clef.Shape = mei.ClefC
	case 'F':
		clef.Shape = mei.ClefF
	case 'g':
		clef.Shape = mei.ClefG
		clef.Dis = 8
		clef.DisBelow = true
	}
	return nil
}

func (p *Parser) parseMeterSig(meterSig *mei.MeterSig, body string, tok *Token) error {
	if body == "" || !bodies.Match("MeterSig", body) {
		msg := "MeterSig content cannot be parsed (4/4 in non pedantic mode)"
		if body != "" {
			msg = "Unsupported time signature " + body + " (4/4 in non pedantic mode)"
		}
		if err := p.report(tok, "%s", msg); err != nil {
			return err
		}
		meterSig.Count = 4
		meterSig.Unit = 4
		return nil
	}

	switch body {
	case "c":
		meterSig.Sym = mei.MeterSymCommon
	case "c/":
		meterSig.Sym = mei.MeterSymCut
	case "c3":
		meterSig.Sym = mei.MeterSymCommon
		meterSig.Count = 3
	case "c3/2":
		meterSig.Sym = mei.MeterSymCommon
		meterSig.Count = 3
		meterSig.Unit = 2
	default:
		count, unit, hasUnit := strings.Cut(body, "/")
		meterSig.Count, _ = strconv.Atoi(count)
		if hasUnit {
			meterSig.Unit, _ = strconv.Atoi(unit)
		} else {
			meterSig.Unit = 1
			meterSig.Numeric = true
		}
	}
	return nil
}

func (p *Parser) parseMensur(mensur *mei.Mensur, body string, tok *Token) error {
	if body == "" || !bodies.Match("Mensur", body) {
		msg := "Mensur content cannot be parsed (O in non pedantic mode)"
		if body != "" {
			msg = "Unsupported time signature: " + body + " (O in non pedantic mode)"
		}
		if err := p.report(tok, "%s", msg); err != nil {
			return err
		}
		mensur.Sign = mei.MensurSignO
		return nil
	}

	rest := body
	switch rest[0] {
	case 'c':
		mensur.Sign = mei.MensurSignC
		rest = rest[1:]
	case 'o':
		mensur.Sign = mei.MensurSignO
		rest = rest[1:]
	}
	if mensur.Sign != mei.MensurSignNone {
		// Dot and slash may come in either order.
		for i := 0; i < 2 && rest != "" && (rest[0] == '.' || rest[0] == '/'); i++ {
			if rest[0] == '.' {
				mensur.Dot = true
			} else {
				mensur.Slash = 1
			}
			rest = rest[1:]
		}
	}
	num, numBase, _ := strings.Cut(rest, "/")
	if num != "" {
		mensur.Num, _ = strconv.Atoi(num)
		if numBase != "" {
			mensur.NumBase, _ = strconv.Atoi(numBase)
		}
	}
	return nil
}
