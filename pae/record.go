package pae

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record keys understood by the importer.
const (
	KeyClef    = "clef"
	KeyKey     = "key"
	KeyKeySig  = "keysig"
	KeyTimeSig = "timesig"
	KeyData    = "data"
)

var recordKeys = []string{KeyClef, KeyKey, KeyKeySig, KeyTimeSig, KeyData}

// Record is the key/value set of one incipit. Only data is required.
type Record map[string]string

// NewRecord returns a record holding only data.
func NewRecord(data string) Record {
	return Record{KeyData: data}
}

// Data returns the data string and whether it was given.
func (r Record) Data() (string, bool) {
	data, ok := r[KeyData]
	return data, ok
}

// IsMensural reports whether the clef record asks for mensural notation.
func (r Record) IsMensural() bool {
	return strings.Contains(r[KeyClef], "+")
}

// ParseRecord reads a JSON object when input starts with '{' and
// line-oriented "@key: value" text otherwise.
func ParseRecord(input string) (Record, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	if input[0] == '{' {
		return parseJSONRecord(input)
	}
	return parseAtRecord(input), nil
}

func parseJSONRecord(input string) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	rec := Record{}
	for _, key := range recordKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a string", ErrInvalidRecord, key)
		}
		rec[key] = s
	}
	return rec, nil
}

// parseAtRecord accepts "@key: value", "@key:value", "@key :value" and
// "@ key : value", one per line. Reading stops at "@end".
func parseAtRecord(input string) Record {
	rec := Record{}
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "@") {
			continue
		}
		key, value, _ := strings.Cut(line[1:], ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "end":
			return rec
		case KeyClef, KeyKey, KeyKeySig, KeyTimeSig, KeyData:
			rec[key] = value
		default:
			log.Warningf("Unknown row '%s' in incipit data", line)
		}
	}
	return rec
}

type yamlRecord struct {
	Clef    *string `yaml:"clef"`
	Key     *string `yaml:"key"`
	KeySig  *string `yaml:"keysig"`
	TimeSig *string `yaml:"timesig"`
	Data    *string `yaml:"data"`
}

// ParseRecordYAML reads a YAML mapping with the record keys. Data values
// starting with YAML indicators such as '{' or a quote must be quoted.
func ParseRecordYAML(input []byte) (Record, error) {
	if len(strings.TrimSpace(string(input))) == 0 {
		return nil, ErrEmptyInput
	}
	var y yamlRecord
	if err := yaml.Unmarshal(input, &y); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	rec := Record{}
	for key, v := range map[string]*string{
		KeyClef:    y.Clef,
		KeyKey:     y.Key,
		KeyKeySig:  y.KeySig,
		KeyTimeSig: y.TimeSig,
		KeyData:    y.Data,
	} {
		if v != nil {
			rec[key] = *v
		}
	}
	return rec, nil
}

// ReadRecord parses the content of an incipit file. YAML is chosen by
// extension; content that is neither a JSON object nor "@key: value"
// lines is taken as bare data, so "{AB}" or "@c 4C" stay data.
func ReadRecord(name string, content []byte) (Record, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ParseRecordYAML(content)
	}
	input := strings.TrimSpace(string(content))
	if input == "" {
		return nil, ErrEmptyInput
	}
	if (input[0] == '{' && json.Valid([]byte(input))) || IsAtRecord(input) {
		return ParseRecord(input)
	}
	return NewRecord(input), nil
}

// IsAtRecord reports whether a line of input starts with a known
// "@key:" row.
func IsAtRecord(input string) bool {
	for line := range strings.Lines(input) {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "@")
		if !ok {
			continue
		}
		key, _, found := strings.Cut(rest, ":")
		if found && (slices.Contains(recordKeys, strings.TrimSpace(key)) || strings.TrimSpace(key) == "end") {
			return true
		}
	}
	return false
}
