package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/incipit/mei"
	"github.com/dhamidi/incipit/pae"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, data string) *mei.Doc {
	t.Helper()
	n := 0
	f := mei.NewFactory(mei.WithIDGenerator(func(k mei.Kind) string {
		n++
		return fmt.Sprintf("%s-%d", k, n)
	}))
	result, err := pae.New(pae.WithFactory(f)).Parse(pae.Record{
		pae.KeyKey:  "1.1.1",
		pae.KeyClef: "G-2",
		pae.KeyData: data,
	})
	if err != nil {
		t.Fatal(err)
	}
	return result.Doc
}

func TestAttrs(t *testing.T) {
	f := mei.NewFactory()
	note := f.NewNote(mei.PitchC)
	note.Oct = 4
	note.Dur = mei.Dur8
	note.Dots = 1
	note.Grace = mei.GraceAcc

	keySig := f.NewKeySig()
	keySig.Count = 2
	keySig.Accid = mei.AccidFlat

	tests := []struct {
		node mei.Node
		want string
	}{
		{note, "pname=c oct=4 dur=8 dots=1 grace=acc"},
		{keySig, "sig=2f"},
		{f.NewKeySig(), "sig=0"},
		{f.NewMultiRest(4), "num=4"},
		{f.NewBeam(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.node.Kind().String(), func(t *testing.T) {
			var parts []string
			for _, a := range Attrs(tt.node) {
				parts = append(parts, a.Name+"="+a.Value)
			}
			if got := strings.Join(parts, " "); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	doc := parse(t, "4C+C/")

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}

	var got treeDoc
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Key != "1.1.1" {
		t.Errorf("got key %q, want 1.1.1", got.Key)
	}
	if got.Score.Kind != "score" || len(got.Score.Children) != 2 {
		t.Fatalf("got %+v, want a score with scoreDef and section", got.Score)
	}

	measure := got.Score.Children[1].Children[0]
	if measure.Kind != "measure" || measure.Attrs["right"] != "single" {
		t.Errorf("got %+v, want a measure with a single barline", measure)
	}
	var tie *treeNode
	for _, c := range measure.Children {
		if c.Kind == "tie" {
			tie = c
		}
	}
	if tie == nil {
		t.Fatalf("no tie in %+v", measure)
	}
	layer := measure.Children[0].Children[0]
	if tie.Attrs["startid"] != "#"+layer.Children[0].ID || tie.Attrs["endid"] != "#"+layer.Children[1].ID {
		t.Errorf("got tie %v, want it to join %s and %s", tie.Attrs, layer.Children[0].ID, layer.Children[1].ID)
	}
}

func TestYAMLEncoder(t *testing.T) {
	doc := parse(t, "4C")

	var buf bytes.Buffer
	if err := NewYAMLEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}
	var got treeDoc
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	clef := got.Score.Children[0].Children[1]
	if clef.Kind != "clef" || clef.Attrs["shape"] != "G" || clef.Attrs["line"] != "2" {
		t.Errorf("got %+v, want clef G-2", clef)
	}
}

func TestLineEncoder(t *testing.T) {
	doc := parse(t, "{8AB}")

	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}
	want := `key 1.1.1
score
  scoreDef
    staffDef n=1 lines=5
    clef shape=G line=2
  section
    measure n=1 right=invis
      staff n=1
        layer n=1
          beam
            note pname=a oct=4 dur=8
            note pname=b oct=4 dur=8
`
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
