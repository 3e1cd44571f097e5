package pae

import (
	"fmt"
	"strings"

	"github.com/dhamidi/incipit/mei"
)

// assembler builds the document from the resolved tokens.
type assembler struct {
	p   *Parser
	doc *mei.Doc

	measure *mei.Measure
	stack   []mei.Node
	// scoreDefChange collects the signature changes of the current
	// measure. It is inserted before the measure when first needed.
	scoreDefChange *mei.ScoreDef
}

func (p *Parser) assemble(doc *mei.Doc) error {
	a := &assembler{p: p, doc: doc}

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		if tok.IsEnd() {
			if len(a.stack) > 1 {
				p.log.Debugf("%d containers left open at the end", len(a.stack)-1)
			}
			continue
		}
		if tok.IsContainerEnd() {
			closed := tok.Closes()
			tok.take()
			a.pop(closed)
			continue
		}
		if tok.node == nil {
			if tok.Char != 0 && !tok.IsSpace() {
				p.log.Debugf("Remaining unprocessed char '%c' (character %d)", tok.Char, tok.Position)
			}
			continue
		}
		if err := a.add(tok); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembler) add(tok *Token) error {
	n := tok.node
	switch {
	case n.IsMeasure():
		return a.openMeasure(tok.take().(*mei.Measure))
	case a.measure == nil:
		// Unreachable as the stream starts with a measure token.
		return fmt.Errorf("%s before the first measure", n.Kind())
	case n.Kind().Is(mei.KindKeySig, mei.KindMeterSig, mei.KindMensur):
		return a.addScoreDef(tok)
	case n.Kind() == mei.KindClef && a.atMeasureStart():
		return a.addScoreDef(tok)
	case n.IsLayerElement():
		return a.addLayerElement(tok)
	case n.IsControlElement():
		return a.attach(tok, a.measure)
	}
	a.p.log.Debugf("Unexpected %s in the token stream", n.Kind())
	a.p.release(tok.take())
	return nil
}

func (a *assembler) openMeasure(m *mei.Measure) error {
	if err := mei.Attach(a.doc.Section, m); err != nil {
		return err
	}
	staff := a.p.factory.NewStaff(1)
	layer := a.p.factory.NewLayer(1)
	if err := mei.Attach(m, staff); err != nil {
		return err
	}
	if err := mei.Attach(staff, layer); err != nil {
		return err
	}
	if len(a.stack) > 1 {
		a.p.log.Debugf("%d containers left open in measure %d", len(a.stack)-1, a.measure.N)
	}
	a.measure = m
	a.stack = append(a.stack[:0], layer)
	a.scoreDefChange = nil
	return nil
}

// atMeasureStart reports whether nothing was added to the layer yet.
func (a *assembler) atMeasureStart() bool {
	return len(a.stack) == 1 && len(a.stack[0].Children()) == 0
}

func (a *assembler) addScoreDef(tok *Token) error {
	kind := tok.node.Kind()
	if a.scoreDefChange == nil {
		sd := a.p.factory.NewScoreDef()
		if err := mei.InsertBefore(a.doc.Section, a.measure, sd); err != nil {
			a.p.release(sd)
			return err
		}
		a.scoreDefChange = sd
	} else if len(mei.ChildrenOf(a.scoreDefChange, kind)) > 0 {
		err := a.p.report(tok, "Duplicate %s change in measure %d", tok.Name(), a.measure.N)
		a.p.release(tok.take())
		return err
	}
	return a.attach(tok, a.scoreDefChange)
}

func (a *assembler) addLayerElement(tok *Token) error {
	n := tok.node
	if err := a.attach(tok, a.stack[len(a.stack)-1]); err != nil {
		return err
	}
	if n.Kind().Is(mei.KindBeam, mei.KindGraceGrp) && !mei.IsReleased(n) {
		a.stack = append(a.stack, n)
	}
	return nil
}

// attach hands the token node over to parent. A refused node is
// released; it only happens when the hierarchy check was bypassed.
func (a *assembler) attach(tok *Token, parent mei.Node) error {
	n := tok.take()
	if err := mei.Attach(parent, n); err != nil {
		a.p.release(n)
		if rerr := a.p.report(tok, "%s", err); rerr != nil {
			return rerr
		}
	}
	return nil
}

func (a *assembler) pop(n mei.Node) {
	for i := len(a.stack) - 1; i > 0; i-- {
		if a.stack[i] == n {
			a.stack = a.stack[:i]
			return
		}
	}
	a.p.log.Debugf("Closing %s that is not open", n.Kind())
}

// TokenTable renders tokens as rows of current symbol, input symbol,
// node kind and an error mark.
func TokenTable(tokens []*Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%4d %s %s %-10s", tok.Position, printable(tok.Char), printable(tok.Input), tokenKind(tok))
		if tok.IsError {
			sb.WriteString(" <")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printable(c byte) string {
	if c == 0 {
		return " "
	}
	return string(c)
}

func tokenKind(tok *Token) string {
	switch {
	case tok.node != nil:
		return tok.node.Kind().String()
	case tok.closes != nil:
		return "/" + tok.closes.Kind().String()
	}
	return ""
}
