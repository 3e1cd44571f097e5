package format

import (
	"io"

	"github.com/dhamidi/incipit/mei"
	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w   io.Writer
	doc *mei.Doc
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(doc *mei.Doc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(docToTree(e.doc))
}
