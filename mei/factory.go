package mei

import (
	"fmt"

	"github.com/google/uuid"
)

// Factory builds document nodes and keeps count of the nodes it has
// handed out and released. Every node must be released at most once.
type Factory struct {
	newID    func(Kind) string
	created  int
	released int
}

type FactoryOption func(*Factory)

// WithIDGenerator replaces the uuid-based id scheme.
func WithIDGenerator(fn func(Kind) string) FactoryOption {
	return func(f *Factory) {
		f.newID = fn
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		newID: func(k Kind) string {
			return fmt.Sprintf("%s-%s", k, uuid.NewString())
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Created returns the number of nodes built so far.
func (f *Factory) Created() int { return f.created }

// Released returns the number of nodes released so far.
func (f *Factory) Released() int { return f.released }

// Live returns the number of nodes built and not yet released.
func (f *Factory) Live() int { return f.created - f.released }

// Release detaches n from its parent and releases it with all its
// descendants. Releasing the same node twice returns ErrReleased.
func (f *Factory) Release(n Node) error {
	e := n.node()
	if e.released {
		return fmt.Errorf("release %s %s: %w", n.Kind(), e.id, ErrReleased)
	}
	Detach(n)
	f.releaseTree(n)
	return nil
}

func (f *Factory) releaseTree(n Node) {
	e := n.node()
	if e.released {
		return
	}
	e.released = true
	f.released++
	for _, c := range e.children {
		f.releaseTree(c)
	}
	e.children = nil
	e.parent = nil
}

func (f *Factory) register(n Node) {
	n.node().id = f.newID(n.Kind())
	f.created++
}

func (f *Factory) NewScore() *Score {
	n := &Score{}
	f.register(n)
	return n
}

func (f *Factory) NewScoreDef() *ScoreDef {
	n := &ScoreDef{}
	f.register(n)
	return n
}

func (f *Factory) NewStaffDef(number, lines int) *StaffDef {
	n := &StaffDef{N: number, Lines: lines}
	f.register(n)
	return n
}

func (f *Factory) NewSection() *Section {
	n := &Section{}
	f.register(n)
	return n
}

// NewMeasure returns a measure with an invisible right barline, the
// default for incipits.
func (f *Factory) NewMeasure(number int) *Measure {
	n := &Measure{N: number, Right: BarInvis}
	f.register(n)
	return n
}

func (f *Factory) NewStaff(number int) *Staff {
	n := &Staff{N: number}
	f.register(n)
	return n
}

func (f *Factory) NewLayer(number int) *Layer {
	n := &Layer{N: number}
	f.register(n)
	return n
}

func (f *Factory) NewNote(pname Pitch) *Note {
	n := &Note{Pname: pname}
	f.register(n)
	return n
}

func (f *Factory) NewRest() *Rest {
	n := &Rest{}
	f.register(n)
	return n
}

func (f *Factory) NewMRest() *MRest {
	n := &MRest{}
	f.register(n)
	return n
}

func (f *Factory) NewMultiRest(num int) *MultiRest {
	n := &MultiRest{Num: num}
	f.register(n)
	return n
}

func (f *Factory) NewBeam() *Beam {
	n := &Beam{}
	f.register(n)
	return n
}

func (f *Factory) NewGraceGrp() *GraceGrp {
	n := &GraceGrp{}
	f.register(n)
	return n
}

func (f *Factory) NewAccid(accid Accidental) *Accid {
	n := &Accid{Accid: accid}
	f.register(n)
	return n
}

func (f *Factory) NewClef() *Clef {
	n := &Clef{}
	f.register(n)
	return n
}

func (f *Factory) NewKeySig() *KeySig {
	n := &KeySig{}
	f.register(n)
	return n
}

func (f *Factory) NewKeyAccid(pname Pitch, accid Accidental) *KeyAccid {
	n := &KeyAccid{Pname: pname, Accid: accid}
	f.register(n)
	return n
}

func (f *Factory) NewMeterSig() *MeterSig {
	n := &MeterSig{}
	f.register(n)
	return n
}

func (f *Factory) NewMensur() *Mensur {
	n := &Mensur{}
	f.register(n)
	return n
}

func (f *Factory) NewFermata(start Node) *Fermata {
	n := &Fermata{Start: start}
	f.register(n)
	return n
}

func (f *Factory) NewTrill(start Node) *Trill {
	n := &Trill{Start: start}
	f.register(n)
	return n
}

func (f *Factory) NewTie(start, end Node) *Tie {
	n := &Tie{Start: start, End: end}
	f.register(n)
	return n
}
