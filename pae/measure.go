package pae

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/incipit/mei"
)

// convertMeasure turns barline runs into the right barline of the
// current measure and opens a new measure on the first barline token,
// unless the data ends there.
func (p *Parser) convertMeasure() error {
	var current *mei.Measure
	var measureTok *Token
	var body []byte

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if m, ok := tok.node.(*mei.Measure); ok {
			current = m
		}
		if tok.In(measureChars) {
			if measureTok == nil {
				measureTok = tok
			}
			body = append(body, tok.Char)
			tok.consume()
			continue
		}
		if measureTok == nil {
			continue
		}
		if err := p.parseMeasure(current, string(body), tok); err != nil {
			return err
		}
		if !tok.IsEnd() {
			current = p.newMeasure()
			measureTok.own(current)
		}
		measureTok = nil
		body = body[:0]
	}
	return nil
}

func (p *Parser) parseMeasure(measure *mei.Measure, body string, tok *Token) error {
	if !bodies.Match("Barline", body) {
		if err := p.report(tok, "Unsupported barline: %s", body); err != nil {
			return err
		}
		measure.Right = mei.BarSingle
		return nil
	}
	switch body {
	case "/":
		measure.Right = mei.BarSingle
	case "//":
		measure.Right = mei.BarDbl
	case "://":
		measure.Right = mei.BarRptEnd
	case "//:":
		measure.Right = mei.BarRptStart
	case "://:":
		measure.Right = mei.BarRptBoth
	}
	return nil
}

// convertMRestOrMultiRest reads '=' with an optional count: one measure
// rest for no count or 1, a multi-measure rest otherwise.
func (p *Parser) convertMRestOrMultiRest() error {
	var restTok *Token
	var digits []byte

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.Char == '=' {
			if restTok != nil {
				if err := p.report(tok, "Invalid = after a ="); err != nil {
					return err
				}
			}
			restTok = tok
			digits = digits[:0]
			tok.consume()
			continue
		}
		if restTok == nil {
			continue
		}
		if tok.Char != 0 && unicode.IsDigit(rune(tok.Char)) {
			digits = append(digits, tok.Char)
			tok.consume()
			continue
		}
		count := string(digits)
		if strings.HasPrefix(count, "0") {
			if err := p.report(tok, "Invalid (multi) measure rest number starting with 0"); err != nil {
				return err
			}
			count = strings.TrimLeft(count, "0")
		}
		if count == "" || count == "1" {
			restTok.own(p.factory.NewMRest())
		} else {
			n, _ := strconv.Atoi(count)
			restTok.own(p.factory.NewMultiRest(n))
		}
		restTok = nil
	}
	return nil
}
