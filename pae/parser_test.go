package pae

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/incipit/mei"
)

func newTestFactory() *mei.Factory {
	n := 0
	return mei.NewFactory(mei.WithIDGenerator(func(k mei.Kind) string {
		n++
		return fmt.Sprintf("%s-%d", k, n)
	}))
}

func mustParse(t *testing.T, rec Record, opts ...Option) (*Result, *Parser) {
	t.Helper()
	p := New(append([]Option{WithFactory(newTestFactory())}, opts...)...)
	result, err := p.Parse(rec)
	if err != nil {
		t.Fatalf("parse %q: %v", rec[KeyData], err)
	}
	return result, p
}

// outline renders the section without ids.
func outline(doc *mei.Doc) string {
	var sb strings.Builder
	mei.Walk(doc.Section, func(n mei.Node, depth int) bool {
		sb.WriteString(strings.Repeat(" ", depth))
		sb.WriteString(n.Kind().String())
		switch n := n.(type) {
		case *mei.Note:
			fmt.Fprintf(&sb, " %s%d %s", n.Pname, n.Oct, n.Dur)
		case *mei.Measure:
			fmt.Fprintf(&sb, " %s", n.Right)
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

func countNodes(doc *mei.Doc) int {
	count := 0
	mei.Walk(doc.Score, func(mei.Node, int) bool {
		count++
		return true
	})
	return count
}

func layerChildren(t *testing.T, doc *mei.Doc, measure int) []mei.Node {
	t.Helper()
	measures := doc.Measures()
	if measure >= len(measures) {
		t.Fatalf("got %d measures, want more than %d", len(measures), measure)
	}
	layer := mei.LayerOf(measures[measure])
	if layer == nil {
		t.Fatalf("measure %d has no layer", measure)
	}
	return layer.Children()
}

func TestParseNotesWithDurations(t *testing.T) {
	result, _ := mustParse(t, NewRecord("4C2D/"))

	measures := result.Doc.Measures()
	if len(measures) != 1 {
		t.Fatalf("got %d measures, want 1", len(measures))
	}
	if measures[0].Right != mei.BarSingle {
		t.Errorf("got barline %s, want single", measures[0].Right)
	}

	children := layerChildren(t, result.Doc, 0)
	if len(children) != 2 {
		t.Fatalf("got %d layer children, want 2", len(children))
	}
	want := []struct {
		pname mei.Pitch
		dur   mei.Duration
	}{
		{mei.PitchC, mei.Dur4},
		{mei.PitchD, mei.Dur2},
	}
	for i, w := range want {
		note, ok := children[i].(*mei.Note)
		if !ok {
			t.Fatalf("child %d: got %s, want note", i, children[i].Kind())
		}
		if note.Pname != w.pname || note.Dur != w.dur || note.Oct != 4 {
			t.Errorf("child %d: got %s%d %s, want %s4 %s", i, note.Pname, note.Oct, note.Dur, w.pname, w.dur)
		}
	}
	if result.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestParseScoreDefChange(t *testing.T) {
	// $xFC names two sharps (F and C); the key signature counts the
	// letters after the accidental, as for every other signature.
	result, _ := mustParse(t, NewRecord("%G-2 $xFC @4/4 =1"))

	section := result.Doc.Section.Children()
	if len(section) != 2 {
		t.Fatalf("got %d section children, want 2", len(section))
	}
	scoreDef, ok := section[0].(*mei.ScoreDef)
	if !ok {
		t.Fatalf("got %s before the measure, want scoreDef", section[0].Kind())
	}
	if section[1].Kind() != mei.KindMeasure {
		t.Fatalf("got %s, want measure", section[1].Kind())
	}

	changes := scoreDef.Children()
	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3", len(changes))
	}
	clef, ok := changes[0].(*mei.Clef)
	if !ok || clef.Shape != mei.ClefG || clef.Line != 2 {
		t.Errorf("got %v, want clef G-2", changes[0])
	}
	keySig, ok := changes[1].(*mei.KeySig)
	if !ok || keySig.Accid != mei.AccidSharp || keySig.Count != 2 {
		t.Errorf("got %v, want a sharp key signature with F and C", changes[1])
	}
	meterSig, ok := changes[2].(*mei.MeterSig)
	if !ok || meterSig.Count != 4 || meterSig.Unit != 4 {
		t.Errorf("got %v, want meter 4/4", changes[2])
	}

	children := layerChildren(t, result.Doc, 0)
	if len(children) != 1 || children[0].Kind() != mei.KindMRest {
		t.Errorf("got %v, want a single measure rest", children)
	}
	if result.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestParseBeam(t *testing.T) {
	result, _ := mustParse(t, NewRecord("{AB}"))

	children := layerChildren(t, result.Doc, 0)
	if len(children) != 1 {
		t.Fatalf("got %d layer children, want 1", len(children))
	}
	beam, ok := children[0].(*mei.Beam)
	if !ok {
		t.Fatalf("got %s, want beam", children[0].Kind())
	}
	notes := beam.Children()
	if len(notes) != 2 {
		t.Fatalf("got %d beamed notes, want 2", len(notes))
	}
	for i, pname := range []mei.Pitch{mei.PitchA, mei.PitchB} {
		note := notes[i].(*mei.Note)
		if note.Pname != pname || note.Oct != 4 || note.Dur != mei.Dur8 {
			t.Errorf("note %d: got %s%d %s, want %s4 8", i, note.Pname, note.Oct, note.Dur, pname)
		}
	}
}

func TestParseUnclosedBeam(t *testing.T) {
	t.Run("lenient", func(t *testing.T) {
		result, _ := mustParse(t, NewRecord("{AB"))
		if len(result.Diagnostics) != 1 {
			t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
		}
		if d := result.Diagnostics[0]; d.Severity != SeverityWarning {
			t.Errorf("got severity %s, want warning", d.Severity)
		}
		children := layerChildren(t, result.Doc, 0)
		if len(children) != 1 || len(children[0].Children()) != 2 {
			t.Errorf("got %v, want a beam with two notes", children)
		}
	})

	t.Run("strict", func(t *testing.T) {
		f := newTestFactory()
		_, err := New(WithStrict(), WithFactory(f)).Parse(NewRecord("{AB"))
		var perr *Error
		if !errors.As(err, &perr) {
			t.Fatalf("got %v, want *Error", err)
		}
		if perr.Diagnostic.Severity != SeverityError {
			t.Errorf("got severity %s, want error", perr.Diagnostic.Severity)
		}
		if f.Live() != 0 {
			t.Errorf("got %d live nodes after a failed import, want 0", f.Live())
		}
	})
}

func TestParseFermataOnMeasureRest(t *testing.T) {
	t.Run("lenient", func(t *testing.T) {
		result, _ := mustParse(t, NewRecord("(=1)"))
		if len(result.Diagnostics) != 1 {
			t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
		}
		if d := result.Diagnostics[0]; d.Symbol != '1' || d.Position != 2 {
			t.Errorf("got diagnostic at %q (%d), want '1' (2)", d.Symbol, d.Position)
		}

		measure := result.Doc.Measures()[0]
		fermatas := mei.ChildrenOf(measure, mei.KindFermata)
		if len(fermatas) != 1 {
			t.Fatalf("got %d fermatas, want 1", len(fermatas))
		}
		children := layerChildren(t, result.Doc, 0)
		if len(children) != 1 || children[0].Kind() != mei.KindMRest {
			t.Fatalf("got %v, want a measure rest", children)
		}
		if start := fermatas[0].(*mei.Fermata).Start; start != children[0] {
			t.Errorf("fermata starts at %v, want the measure rest", start)
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, err := Import(`{"data": "(=1)"}`, WithStrict())
		if err == nil {
			t.Fatal("got no error, want a strict failure")
		}
	})
}

func TestParseRecordScoreDef(t *testing.T) {
	result, err := Import("@clef:G-2\n@keysig:bB\n@timesig:c\n@key:1.1.1\n@data:4C", WithFactory(newTestFactory()))
	if err != nil {
		t.Fatal(err)
	}
	if result.Doc.Key != "1.1.1" {
		t.Errorf("got key %q, want 1.1.1", result.Doc.Key)
	}
	var kinds []string
	for _, c := range result.Doc.ScoreDef.Children() {
		kinds = append(kinds, c.Kind().String())
	}
	if got, want := strings.Join(kinds, " "), "staffDef clef keySig meterSig"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseNoData(t *testing.T) {
	_, err := New().Parse(Record{KeyClef: "G-2"})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("got %v, want ErrNoData", err)
	}
}

func TestParseModeSymmetry(t *testing.T) {
	inputs := []string{
		"4C2D/",
		"%G-2 $xFC @4/4 =1",
		"{AB}",
		"'4C''8D,E//",
		"xC4-qqABr gC{8DE}/(C)t",
		"@c 4C+C/=3/",
		"",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			lenient, _ := mustParse(t, NewRecord(input))
			strict, _ := mustParse(t, NewRecord(input), WithStrict())
			if got, want := outline(strict.Doc), outline(lenient.Doc); got != want {
				t.Errorf("strict:\n%s\nlenient:\n%s", got, want)
			}
			if len(lenient.Diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %v", lenient.Diagnostics)
			}
		})
	}
}

func TestParseOwnership(t *testing.T) {
	inputs := []string{
		"4C2D/",
		"{AB",
		"(=1)",
		"qqA-r",
		"{qqA}B r",
		"qq(-)r",
		"C+",
		"xC4-qqABr gC{8DE}/(C)t",
		"@c @3/4 4C",
		"}r=0/",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			result, p := mustParse(t, NewRecord(input))
			f := p.Factory()
			if got, want := f.Live(), countNodes(result.Doc); got != want {
				t.Errorf("got %d live nodes, want %d in the document", got, want)
			}
			for i, tok := range p.Tokens() {
				if tok.Object() != nil {
					t.Errorf("token %d still refers to %s", i, tok.Object().Kind())
				}
			}
			if err := f.Release(result.Doc.Score); err != nil {
				t.Fatal(err)
			}
			if f.Live() != 0 {
				t.Errorf("got %d live nodes after release, want 0", f.Live())
			}
		})
	}
}

func TestParseStrictReleasesEverything(t *testing.T) {
	inputs := []string{
		"{AB",
		"(=1)",
		"qqA-r",
		"C+",
		"%X @",
		"4C:/D",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			f := newTestFactory()
			p := New(WithStrict(), WithFactory(f))
			if _, err := p.Parse(NewRecord(input)); err == nil {
				t.Fatal("got no error, want a strict failure")
			}
			if len(p.Diagnostics()) != 1 {
				t.Errorf("got %d diagnostics, want exactly the failing one", len(p.Diagnostics()))
			}
			if f.Live() != 0 {
				t.Errorf("got %d live nodes, want 0", f.Live())
			}
		})
	}
}

func TestHierarchyRepairs(t *testing.T) {
	tests := []struct {
		input   string
		repairs int
		want    string
	}{
		{
			input:   "qqA-r",
			repairs: 1,
			want:    "section\n measure invis\n  staff\n   layer\n    graceGrp\n     note a4 8\n",
		},
		{
			input:   "{qqA}B r",
			repairs: 1,
			want:    "section\n measure invis\n  staff\n   layer\n    beam\n     note a4 8\n    note b4 8\n",
		},
		{
			input:   "qq(-)r",
			repairs: 1,
			want:    "section\n measure invis\n  staff\n   layer\n    graceGrp\n",
		},
		{
			input:   "{AB}",
			repairs: 0,
			want:    "section\n measure invis\n  staff\n   layer\n    beam\n     note a4 8\n     note b4 8\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, _ := mustParse(t, NewRecord(tt.input))
			if result.Repairs != tt.repairs {
				t.Errorf("got %d repairs, want %d", result.Repairs, tt.repairs)
			}
			if got := outline(result.Doc); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestContainerRepairs(t *testing.T) {
	type diag struct {
		message  string
		position int
	}
	tests := []struct {
		input   string
		diags   []diag
		repairs int
		want    string
	}{
		{
			input: "{AB/CD}",
			diags: []diag{
				{"Unclosed beam at the end of a measure", 3},
				{"Irrelevant closing beam", 6},
			},
			want: "section\n measure single\n  staff\n   layer\n    beam\n     note a4 8\n     note b4 8\n" +
				" measure invis\n  staff\n   layer\n    note c4 8\n    note d4 8\n",
		},
		{
			input: "{A{B}C}",
			diags: []diag{
				{"Nested beams are not supported", 2},
				{"Irrelevant closing beam", 6},
			},
			want: "section\n measure invis\n  staff\n   layer\n    beam\n     note a4 8\n     note b4 8\n    note c4 8\n",
		},
		{
			input: "A}B",
			diags: []diag{{"Irrelevant closing beam", 1}},
			want:  "section\n measure invis\n  staff\n   layer\n    note a4 8\n    note b4 8\n",
		},
		{
			input:   "{AqqB}r",
			diags:   []diag{{"Staggered beam / gracegrp opening and closing tags", 5}},
			repairs: 1,
			want:    "section\n measure invis\n  staff\n   layer\n    beam\n     note a4 8\n     note b4 8\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, p := mustParse(t, NewRecord(tt.input))

			var got []diag
			for _, d := range result.Diagnostics {
				if d.Severity != SeverityWarning {
					t.Errorf("got severity %s for %q, want warning", d.Severity, d.Message)
				}
				got = append(got, diag{d.Message, d.Position})
			}
			if len(got) != len(tt.diags) {
				t.Fatalf("got diagnostics %v, want %v", got, tt.diags)
			}
			for i := range got {
				if got[i] != tt.diags[i] {
					t.Errorf("diagnostic %d: got %v, want %v", i, got[i], tt.diags[i])
				}
			}

			if result.Repairs != tt.repairs {
				t.Errorf("got %d repairs, want %d", result.Repairs, tt.repairs)
			}
			if out := outline(result.Doc); out != tt.want {
				t.Errorf("got\n%s\nwant\n%s", out, tt.want)
			}
			if live, want := p.Factory().Live(), countNodes(result.Doc); live != want {
				t.Errorf("got %d live nodes, want %d", live, want)
			}

			if _, err := New(WithStrict(), WithFactory(newTestFactory())).Parse(NewRecord(tt.input)); err == nil {
				t.Error("strict import succeeded, want the first diagnostic")
			}
		})
	}
}

// A character cleared by one pass is never matched again, and the node
// its token owns at that point stays with it through the later passes.
func TestPassesKeepConsumedTokens(t *testing.T) {
	inputs := []string{
		"%C-1 $bBE @3/4 xC4-qqABr gC{8DE}/(C)t",
		"'{8AB}+{CD} =2 // 2.G;3 ,,F",
		"{AqqB}r ((=1) }",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p := New(WithFactory(newTestFactory()))
			p.reset()
			p.tokens = append([]*Token{p.newMeasureToken(-1)}, NewLexer(input).Tokenize()...)

			consumed := map[*Token]mei.Node{}
			for _, ps := range passes {
				if err := ps.run(p); err != nil {
					t.Fatalf("%s: %v", ps.name, err)
				}
				for tok, n := range consumed {
					if tok.Char != 0 || tok.node != n {
						t.Errorf("%s: token at %d changed after it was consumed", ps.name, tok.Position)
					}
				}
				for _, tok := range p.tokens {
					if _, seen := consumed[tok]; !seen && tok.Char == 0 {
						consumed[tok] = tok.node
					}
				}
			}
			if len(consumed) == 0 {
				t.Error("no token was consumed")
			}
		})
	}
}

func TestParseResolvedTokens(t *testing.T) {
	_, p := mustParse(t, NewRecord("{A"))
	table := p.Resolved()
	for _, want := range []string{"beam", "note", "/beam", "measure", " <"} {
		if !strings.Contains(table, want) {
			t.Errorf("token table does not contain %q:\n%s", want, table)
		}
	}
}
