package pae

import (
	"slices"

	"github.com/dhamidi/incipit/mei"
)

// checkHierarchy verifies that every layer element can be placed in the
// container open at its position. Offending elements are removed and the
// check starts over until the stream is consistent. In strict mode the
// first violation is returned.
func (p *Parser) checkHierarchy() error {
	layerTok := &Token{Char: void, Position: -1, node: &mei.Layer{}}

	// Every repair removes a node, so the loop ends.
	for limit := len(p.tokens) + 1; limit > 0; limit-- {
		valid, err := p.checkHierarchyOnce(layerTok)
		if err != nil {
			return err
		}
		if valid {
			return nil
		}
	}
	p.log.Debugf("hierarchy check did not settle after %d passes", len(p.tokens)+1)
	return nil
}

func (p *Parser) checkHierarchyOnce(layerTok *Token) (bool, error) {
	stack := []*Token{layerTok}
	valid := true

	for _, tok := range p.tokens {
		if tok.IsVoid() {
			continue
		}
		obj := tok.Object()
		if obj == nil {
			continue
		}
		if obj.IsMeasure() {
			stack = append(stack[:0], layerTok)
		}
		if !obj.IsLayerElement() {
			continue
		}
		// Added to a score definition change instead.
		if obj.Kind().Is(mei.KindKeySig, mei.KindMeterSig, mei.KindMensur) {
			continue
		}

		top := stack[len(stack)-1]
		if !tok.IsContainerEnd() && !top.Object().Accepts(obj) {
			if err := p.report(tok, "Invalid %s within %s", tok.Name(), top.Name()); err != nil {
				return false, err
			}
			valid = false
			p.repair(obj)
			continue
		}

		if !obj.Kind().Is(mei.KindBeam, mei.KindGraceGrp) {
			continue
		}
		if !tok.IsContainerEnd() {
			stack = append(stack, tok)
			continue
		}
		if top.Object() == obj {
			stack = stack[:len(stack)-1]
			continue
		}

		if err := p.report(tok, "Staggered %s / %s opening and closing tags", tok.Name(), top.Name()); err != nil {
			return false, err
		}
		valid = false
		if top == layerTok {
			p.repair(obj)
			continue
		}
		p.repair(top.Object())
		stack = stack[:len(stack)-1]
		stack = slices.DeleteFunc(stack, func(t *Token) bool { return t.Object() == obj })
	}
	return valid, nil
}

func (p *Parser) repair(n mei.Node) {
	p.repairs++
	p.removeNode(n)
}
