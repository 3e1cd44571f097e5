package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/incipit/mei"
)

type JSONEncoder struct {
	w   io.Writer
	doc *mei.Doc
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *mei.Doc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(docToTree(e.doc), "", "  ")
}

type treeDoc struct {
	Key   string    `json:"key,omitempty" yaml:"key,omitempty"`
	Score *treeNode `json:"score" yaml:"score"`
}

type treeNode struct {
	Kind     string            `json:"kind" yaml:"kind"`
	ID       string            `json:"id" yaml:"id"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*treeNode       `json:"children,omitempty" yaml:"children,omitempty"`
}

func docToTree(doc *mei.Doc) *treeDoc {
	return &treeDoc{
		Key:   doc.Key,
		Score: nodeToTree(doc.Score),
	}
}

func nodeToTree(n mei.Node) *treeNode {
	tn := &treeNode{
		Kind: n.Kind().String(),
		ID:   n.ID(),
	}

	if attrs := Attrs(n); len(attrs) > 0 {
		tn.Attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			tn.Attrs[a.Name] = a.Value
		}
	}

	if children := n.Children(); len(children) > 0 {
		tn.Children = make([]*treeNode, len(children))
		for i, child := range children {
			tn.Children[i] = nodeToTree(child)
		}
	}

	return tn
}
