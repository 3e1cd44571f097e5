package mei

import (
	"errors"
	"fmt"
)

var (
	ErrReleased    = errors.New("node already released")
	ErrNotAccepted = errors.New("child not accepted")
	ErrNotChild    = errors.New("reference is not a child")
)

// Node is an element of the document tree. Parsers only rely on the
// kind, the layer/control/measure classification and Accepts.
type Node interface {
	Kind() Kind
	ID() string
	Parent() Node
	Children() []Node

	IsLayerElement() bool
	IsControlElement() bool
	IsMeasure() bool

	// Accepts reports whether child may be attached below this node.
	Accepts(child Node) bool

	node() *element
}

// Referrer is implemented by control elements pointing at layer elements.
type Referrer interface {
	Node
	Refs() []Node
}

type element struct {
	id       string
	parent   Node
	children []Node
	released bool
}

func (e *element) ID() string             { return e.id }
func (e *element) Parent() Node           { return e.parent }
func (e *element) Children() []Node       { return e.children }
func (e *element) IsLayerElement() bool   { return false }
func (e *element) IsControlElement() bool { return false }
func (e *element) IsMeasure() bool        { return false }
func (e *element) Accepts(Node) bool      { return false }
func (e *element) node() *element         { return e }

type layerElement struct {
	element
}

func (e *layerElement) IsLayerElement() bool { return true }

type controlElement struct {
	element
}

func (e *controlElement) IsControlElement() bool { return true }

// Attach appends child to parent after checking parent.Accepts(child).
func Attach(parent, child Node) error {
	if !parent.Accepts(child) {
		return fmt.Errorf("%w: %s in %s", ErrNotAccepted, child.Kind(), parent.Kind())
	}
	if child.node().released {
		return fmt.Errorf("attach %s: %w", child.Kind(), ErrReleased)
	}
	Detach(child)
	p := parent.node()
	p.children = append(p.children, child)
	child.node().parent = parent
	return nil
}

// InsertBefore inserts child into parent right before ref.
func InsertBefore(parent, ref, child Node) error {
	if !parent.Accepts(child) {
		return fmt.Errorf("%w: %s in %s", ErrNotAccepted, child.Kind(), parent.Kind())
	}
	p := parent.node()
	for i, c := range p.children {
		if c != ref {
			continue
		}
		Detach(child)
		p.children = append(p.children, nil)
		copy(p.children[i+1:], p.children[i:])
		p.children[i] = child
		child.node().parent = parent
		return nil
	}
	return fmt.Errorf("insert %s before %s: %w", child.Kind(), ref.Kind(), ErrNotChild)
}

// Detach removes n from its parent, if any.
func Detach(n Node) {
	e := n.node()
	if e.parent == nil {
		return
	}
	p := e.parent.node()
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// IsReleased reports whether n was released through its factory.
func IsReleased(n Node) bool {
	return n.node().released
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}

// FindDescendant returns the first descendant of n with the given kind.
func FindDescendant(n Node, kind Kind) Node {
	var found Node
	Walk(n, func(c Node, depth int) bool {
		if found != nil {
			return false
		}
		if depth > 0 && c.Kind() == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

// ChildrenOf returns the children of n with the given kind.
func ChildrenOf(n Node, kind Kind) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}
