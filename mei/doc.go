// Package mei is a minimal MEI-shaped document model: typed nodes, a
// factory that accounts for node ownership, and the child acceptance
// rules the importers rely on.
package mei

// Doc is an imported document: a score holding the initial score
// definition and one section with the measures.
type Doc struct {
	Key      string
	Score    *Score
	ScoreDef *ScoreDef
	StaffDef *StaffDef
	Section  *Section
}

// NewDoc builds the empty score skeleton with a single five-line staff.
func NewDoc(f *Factory) *Doc {
	d := &Doc{
		Score:    f.NewScore(),
		ScoreDef: f.NewScoreDef(),
		StaffDef: f.NewStaffDef(1, 5),
		Section:  f.NewSection(),
	}
	mustAttach(d.ScoreDef, d.StaffDef)
	mustAttach(d.Score, d.ScoreDef)
	mustAttach(d.Score, d.Section)
	return d
}

func mustAttach(parent, child Node) {
	if err := Attach(parent, child); err != nil {
		panic(err)
	}
}

// Measures returns the measures of the section in order.
func (d *Doc) Measures() []*Measure {
	var out []*Measure
	for _, c := range d.Section.Children() {
		if m, ok := c.(*Measure); ok {
			out = append(out, m)
		}
	}
	return out
}

// LayerOf returns the single layer of measure m, or nil.
func LayerOf(m *Measure) *Layer {
	for _, s := range m.Children() {
		if s.Kind() != KindStaff {
			continue
		}
		for _, l := range s.Children() {
			if layer, ok := l.(*Layer); ok {
				return layer
			}
		}
	}
	return nil
}
