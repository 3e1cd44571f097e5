package mei

// Structure

type Score struct{ element }

func (*Score) Kind() Kind { return KindScore }
func (*Score) Accepts(c Node) bool {
	return c.Kind().Is(KindScoreDef, KindSection)
}

// ScoreDef holds the initial score definition or a change inserted
// before a measure.
type ScoreDef struct{ element }

func (*ScoreDef) Kind() Kind { return KindScoreDef }
func (*ScoreDef) Accepts(c Node) bool {
	return c.Kind().Is(KindStaffDef, KindClef, KindKeySig, KindMeterSig, KindMensur)
}

type StaffDef struct {
	element
	N     int
	Lines int
}

func (*StaffDef) Kind() Kind { return KindStaffDef }

type Section struct{ element }

func (*Section) Kind() Kind { return KindSection }
func (*Section) Accepts(c Node) bool {
	return c.Kind().Is(KindMeasure, KindScoreDef)
}

type Measure struct {
	element
	N     int
	Right BarRendition
}

func (*Measure) Kind() Kind      { return KindMeasure }
func (*Measure) IsMeasure() bool { return true }
func (*Measure) Accepts(c Node) bool {
	return c.Kind() == KindStaff || c.IsControlElement()
}

type Staff struct {
	element
	N int
}

func (*Staff) Kind() Kind { return KindStaff }
func (*Staff) Accepts(c Node) bool {
	return c.Kind() == KindLayer
}

type Layer struct {
	element
	N int
}

func (*Layer) Kind() Kind { return KindLayer }
func (*Layer) Accepts(c Node) bool {
	return c.Kind().Is(KindNote, KindRest, KindMRest, KindMultiRest, KindBeam, KindGraceGrp,
		KindClef, KindKeySig, KindMeterSig, KindMensur)
}

// Layer elements

type Note struct {
	layerElement
	Pname    Pitch
	Oct      int
	Dur      Duration
	Dots     int
	Grace    Grace
	StemDir  StemDir
	AccidGes Accidental
}

func (*Note) Kind() Kind { return KindNote }
func (*Note) Accepts(c Node) bool {
	return c.Kind() == KindAccid
}

// Accid returns the written accidental child, if any.
func (n *Note) Accid() *Accid {
	for _, c := range n.children {
		if a, ok := c.(*Accid); ok {
			return a
		}
	}
	return nil
}

type Rest struct {
	layerElement
	Dur  Duration
	Dots int
}

func (*Rest) Kind() Kind { return KindRest }

type MRest struct{ layerElement }

func (*MRest) Kind() Kind { return KindMRest }

type MultiRest struct {
	layerElement
	Num int
}

func (*MultiRest) Kind() Kind { return KindMultiRest }

type Beam struct{ layerElement }

func (*Beam) Kind() Kind { return KindBeam }
func (*Beam) Accepts(c Node) bool {
	return c.Kind().Is(KindNote, KindRest, KindBeam, KindGraceGrp, KindClef)
}

type GraceGrp struct{ layerElement }

func (*GraceGrp) Kind() Kind { return KindGraceGrp }
func (*GraceGrp) Accepts(c Node) bool {
	return c.Kind().Is(KindNote, KindBeam)
}

type Accid struct {
	layerElement
	Accid Accidental
}

func (*Accid) Kind() Kind { return KindAccid }

type Clef struct {
	layerElement
	Shape    ClefShape
	Line     int
	Dis      int
	DisBelow bool
	Mensural bool
}

func (*Clef) Kind() Kind { return KindClef }

// KeySig carries either a plain signature (Count, Accid) or, when some
// accidentals are enclosed, one KeyAccid child per accidental.
type KeySig struct {
	layerElement
	Count      int
	Accid      Accidental
	ShowChange bool
}

func (*KeySig) Kind() Kind { return KindKeySig }
func (*KeySig) Accepts(c Node) bool {
	return c.Kind() == KindKeyAccid
}

type KeyAccid struct {
	layerElement
	Pname    Pitch
	Accid    Accidental
	Enclosed bool
}

func (*KeyAccid) Kind() Kind { return KindKeyAccid }

type MeterSig struct {
	layerElement
	Count   int
	Unit    int
	Sym     MeterSym
	Numeric bool
}

func (*MeterSig) Kind() Kind { return KindMeterSig }

type Mensur struct {
	layerElement
	Sign    MensurSign
	Dot     bool
	Slash   int
	Num     int
	NumBase int
}

func (*Mensur) Kind() Kind { return KindMensur }

// Control elements

type Fermata struct {
	controlElement
	Start Node
}

func (*Fermata) Kind() Kind        { return KindFermata }
func (f *Fermata) Refs() []Node    { return []Node{f.Start} }
func (f *Fermata) StartID() string { return refID(f.Start) }

type Trill struct {
	controlElement
	Start Node
}

func (*Trill) Kind() Kind        { return KindTrill }
func (t *Trill) Refs() []Node    { return []Node{t.Start} }
func (t *Trill) StartID() string { return refID(t.Start) }

type Tie struct {
	controlElement
	Start Node
	End   Node
}

func (*Tie) Kind() Kind        { return KindTie }
func (t *Tie) Refs() []Node    { return []Node{t.Start, t.End} }
func (t *Tie) StartID() string { return refID(t.Start) }
func (t *Tie) EndID() string   { return refID(t.End) }

func refID(n Node) string {
	if n == nil {
		return ""
	}
	return "#" + n.ID()
}
