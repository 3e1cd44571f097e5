package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/incipit/mei"
)

// LineEncoder writes one line per node, indented by depth, with the
// attributes as name=value pairs. IDs are left out.
type LineEncoder struct {
	w   io.Writer
	doc *mei.Doc
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *mei.Doc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.doc.Key != "" {
		fmt.Fprintf(&sb, "key %s\n", e.doc.Key)
	}
	sb.WriteString(Line(e.doc.Score))
	return []byte(sb.String()), nil
}

// Line returns the outline of a single node and its descendants.
func Line(n mei.Node) string {
	var sb strings.Builder
	mei.Walk(n, func(n mei.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.Kind().String())
		for _, a := range Attrs(n) {
			fmt.Fprintf(&sb, " %s=%s", a.Name, a.Value)
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
