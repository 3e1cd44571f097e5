package format

import (
	"strconv"

	"github.com/dhamidi/incipit/mei"
)

type Encoder interface {
	Encode(doc *mei.Doc) error
}

// Attr is one MEI attribute of a node.
type Attr struct {
	Name  string
	Value string
}

// Attrs returns the non-empty attributes of n using MEI attribute names.
func Attrs(n mei.Node) []Attr {
	var a attrs
	switch n := n.(type) {
	case *mei.StaffDef:
		a.addInt("n", n.N)
		a.addInt("lines", n.Lines)
	case *mei.Measure:
		a.addInt("n", n.N)
		a.add("right", n.Right.String())
	case *mei.Staff:
		a.addInt("n", n.N)
	case *mei.Layer:
		a.addInt("n", n.N)
	case *mei.Note:
		a.add("pname", n.Pname.String())
		a.addInt("oct", n.Oct)
		a.add("dur", n.Dur.String())
		a.addInt("dots", n.Dots)
		a.add("grace", n.Grace.String())
		a.add("stem.dir", n.StemDir.String())
		a.add("accid.ges", n.AccidGes.String())
	case *mei.Rest:
		a.add("dur", n.Dur.String())
		a.addInt("dots", n.Dots)
	case *mei.MultiRest:
		a.addInt("num", n.Num)
	case *mei.Accid:
		a.add("accid", n.Accid.String())
	case *mei.Clef:
		a.add("shape", n.Shape.String())
		a.addInt("line", n.Line)
		a.addInt("dis", n.Dis)
		if n.DisBelow {
			a.add("dis.place", "below")
		}
		if n.Mensural {
			a.add("type", "mensural")
		}
	case *mei.KeySig:
		if len(n.Children()) == 0 {
			a.add("sig", keySig(n))
		}
		a.addBool("sig.showchange", n.ShowChange)
	case *mei.KeyAccid:
		a.add("pname", n.Pname.String())
		a.add("accid", n.Accid.String())
		if n.Enclosed {
			a.add("enclose", "brack")
		}
	case *mei.MeterSig:
		a.addInt("count", n.Count)
		a.addInt("unit", n.Unit)
		a.add("sym", n.Sym.String())
		if n.Numeric {
			a.add("form", "num")
		}
	case *mei.Mensur:
		a.add("sign", n.Sign.String())
		a.addBool("dot", n.Dot)
		a.addInt("slash", n.Slash)
		a.addInt("num", n.Num)
		a.addInt("numbase", n.NumBase)
	case *mei.Fermata:
		a.add("startid", n.StartID())
	case *mei.Trill:
		a.add("startid", n.StartID())
	case *mei.Tie:
		a.add("startid", n.StartID())
		a.add("endid", n.EndID())
	}
	return a
}

func keySig(k *mei.KeySig) string {
	if k.Count == 0 {
		return "0"
	}
	return strconv.Itoa(k.Count) + k.Accid.String()
}

type attrs []Attr

func (a *attrs) add(name, value string) {
	if value != "" {
		*a = append(*a, Attr{Name: name, Value: value})
	}
}

func (a *attrs) addInt(name string, value int) {
	if value != 0 {
		a.add(name, strconv.Itoa(value))
	}
}

func (a *attrs) addBool(name string, value bool) {
	if value {
		a.add(name, "true")
	}
}
