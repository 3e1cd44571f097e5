package mei

type Pitch int

const (
	PitchNone Pitch = iota
	PitchC
	PitchD
	PitchE
	PitchF
	PitchG
	PitchA
	PitchB
)

var pitchNames = [...]string{"", "c", "d", "e", "f", "g", "a", "b"}

func (p Pitch) String() string {
	if p < 0 || int(p) >= len(pitchNames) {
		return ""
	}
	return pitchNames[p]
}

// PitchFromLetter maps an uppercase note letter to its pitch name.
func PitchFromLetter(c byte) Pitch {
	switch c {
	case 'C':
		return PitchC
	case 'D':
		return PitchD
	case 'E':
		return PitchE
	case 'F':
		return PitchF
	case 'G':
		return PitchG
	case 'A':
		return PitchA
	case 'B':
		return PitchB
	}
	return PitchNone
}

// Pitch names in key signature order.
var (
	SharpOrder = [7]Pitch{PitchF, PitchC, PitchG, PitchD, PitchA, PitchE, PitchB}
	FlatOrder  = [7]Pitch{PitchB, PitchE, PitchA, PitchD, PitchG, PitchC, PitchF}
)

type Duration int

const (
	DurNone Duration = iota
	DurLong
	DurBreve
	Dur1
	Dur2
	Dur4
	Dur8
	Dur16
	Dur32
	Dur64
	Dur128

	// Mensural values
	DurLonga
	DurBrevis
	DurSemibrevis
	DurMinima
	DurSemiminima
	DurFusa
	DurSemifusa
)

var durationNames = [...]string{
	"", "long", "breve", "1", "2", "4", "8", "16", "32", "64", "128",
	"longa", "brevis", "semibrevis", "minima", "semiminima", "fusa", "semifusa",
}

func (d Duration) String() string {
	if d < 0 || int(d) >= len(durationNames) {
		return ""
	}
	return durationNames[d]
}

type Accidental int

const (
	AccidNone Accidental = iota
	AccidSharp
	AccidFlat
	AccidNatural
	AccidDoubleSharp
	AccidDoubleFlat
)

var accidentalNames = [...]string{"", "s", "f", "n", "x", "ff"}

func (a Accidental) String() string {
	if a < 0 || int(a) >= len(accidentalNames) {
		return ""
	}
	return accidentalNames[a]
}

type BarRendition int

const (
	BarNone BarRendition = iota
	BarInvis
	BarSingle
	BarDbl
	BarRptEnd
	BarRptStart
	BarRptBoth
)

var barRenditionNames = [...]string{"", "invis", "single", "dbl", "rptend", "rptstart", "rptboth"}

func (b BarRendition) String() string {
	if b < 0 || int(b) >= len(barRenditionNames) {
		return ""
	}
	return barRenditionNames[b]
}

type ClefShape int

const (
	ClefNone ClefShape = iota
	ClefG
	ClefC
	ClefF
)

var clefShapeNames = [...]string{"", "G", "C", "F"}

func (s ClefShape) String() string {
	if s < 0 || int(s) >= len(clefShapeNames) {
		return ""
	}
	return clefShapeNames[s]
}

type MeterSym int

const (
	MeterSymNone MeterSym = iota
	MeterSymCommon
	MeterSymCut
)

var meterSymNames = [...]string{"", "common", "cut"}

func (s MeterSym) String() string {
	if s < 0 || int(s) >= len(meterSymNames) {
		return ""
	}
	return meterSymNames[s]
}

type MensurSign int

const (
	MensurSignNone MensurSign = iota
	MensurSignC
	MensurSignO
)

var mensurSignNames = [...]string{"", "C", "O"}

func (s MensurSign) String() string {
	if s < 0 || int(s) >= len(mensurSignNames) {
		return ""
	}
	return mensurSignNames[s]
}

type Grace int

const (
	GraceNone Grace = iota
	GraceAcc
	GraceUnacc
)

var graceNames = [...]string{"", "acc", "unacc"}

func (g Grace) String() string {
	if g < 0 || int(g) >= len(graceNames) {
		return ""
	}
	return graceNames[g]
}

type StemDir int

const (
	StemNone StemDir = iota
	StemUp
	StemDown
)

var stemDirNames = [...]string{"", "up", "down"}

func (s StemDir) String() string {
	if s < 0 || int(s) >= len(stemDirNames) {
		return ""
	}
	return stemDirNames[s]
}
